package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/payroll_analyzer/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Serve reports over Telegram",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.GetConfig()
		if cfg.TgToken == "" {
			return errors.New("TG_TOKEN is not set")
		}
		src, loader, err := setup(ctx)
		if err != nil {
			return err
		}
		api, err := tgbotapi.NewBotAPI(cfg.TgToken)
		if err != nil {
			return err
		}
		logger.Info("authorized", zap.String("account", api.Self.UserName))

		b := &telegramBot{
			api:       api,
			src:       src,
			loader:    loader,
			log:       logger,
			fileURL:   api.GetFileDirectURL,
			uploadDir: filepath.Join(outputDir, "uploads"),
			now:       time.Now,
		}
		go cleanOutput(ctx, outputDir, 2*time.Hour)
		return b.run(ctx, api)
	},
}

func (b *telegramBot) run(ctx context.Context, api *tgbotapi.BotAPI) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := api.GetUpdatesChan(u)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if update.Message.Document != nil {
				go b.handleDocument(ctx, update.Message)
			} else if update.Message.Text != "" {
				go b.handleText(ctx, update.Message)
			}
		}
	}
}

// cleanOutput drops charts and uploads older than maxAge once a minute.
func cleanOutput(ctx context.Context, dir string, maxAge time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := removeOldFiles(dir, now.Add(-maxAge), logger); err != nil {
				logger.Debug("clean output", zap.Error(err))
			}
		}
	}
}
