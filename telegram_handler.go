package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/payroll_analyzer/cache"
	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/pivolan/payroll_analyzer/payroll"
	"github.com/pivolan/payroll_analyzer/report"
	"github.com/pivolan/payroll_analyzer/source"
	"go.uber.org/zap"
)

const helpText = `Payroll adjustment analyzer.

/report key=value ... - totals, top adjustments and charts for a selection
/catalog - values available for every filter
Send a CSV file (csv, gz, zip or lz4) to append it to the transactions sheet.

Filter keys: agency, gender, reason, analyst, month, uploaded_by,
lane (LRD or USD), bank, band (e.g. 1000-2000), from and to (YYYY-MM-DD).
Use * (or All) for every value, and quotes to match a value literally: agency="All".
Example: /report agency=Ministry of Health lane=USD bank=Ecobank`

type telegramBot struct {
	api    sender
	src    source.Source
	loader *cache.Loader
	log    *zap.Logger

	// fileURL resolves a Telegram file id to a download URL.
	fileURL   func(fileID string) (string, error)
	uploadDir string
	now       func() time.Time
}

func (b *telegramBot) handleText(ctx context.Context, message *tgbotapi.Message) {
	if !message.IsCommand() {
		b.reply(message.Chat.ID, helpText)
		return
	}
	b.handleCommand(ctx, message.Chat.ID, message.Command(), message.CommandArguments())
}

func (b *telegramBot) handleCommand(ctx context.Context, chatID int64, command, args string) {
	switch command {
	case "start", "help":
		b.reply(chatID, helpText)
	case "report":
		spec, err := parseFilterArgs(strings.Fields(args))
		if err != nil {
			b.reply(chatID, "Bad filter: "+err.Error())
			return
		}
		b.sendReport(ctx, chatID, spec)
	case "catalog":
		snap, err := b.loader.Get(ctx)
		if err != nil {
			b.log.Error("load transactions", zap.Error(err))
			b.reply(chatID, "Transactions are not available right now, try again later.")
			return
		}
		b.sendPre(chatID, "catalog.txt", report.Catalog(payroll.BuildCatalog(snap.Table)))
	default:
		b.reply(chatID, "Unknown command. Use /report, /catalog or /start.")
	}
}

func (b *telegramBot) sendReport(ctx context.Context, chatID int64, spec models.FilterSpec) {
	snap, err := b.loader.Get(ctx)
	if err != nil {
		b.log.Error("load transactions", zap.Error(err))
		b.reply(chatID, "Transactions are not available right now, try again later.")
		return
	}
	a, err := analyze(snap.Table, spec, true, b.log)
	if a == nil {
		b.reply(chatID, "Analysis failed: "+err.Error())
		return
	}
	b.sendPre(chatID, "report_"+a.SessionID+".txt", report.Analysis(a))

	arts, err := renderArtifacts(a, b.log)
	if err != nil {
		b.log.Error("render charts", zap.String("session", a.SessionID), zap.Error(err))
		b.reply(chatID, "Charts could not be drawn.")
		return
	}
	for _, art := range arts {
		b.sendFile(chatID, art)
	}
}

// handleDocument appends an uploaded transactions file and replies with the refreshed report.
func (b *telegramBot) handleDocument(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	fileURL, err := b.fileURL(message.Document.FileID)
	if err != nil {
		b.log.Warn("get file url", zap.Error(err))
		b.reply(chatID, "Could not fetch the file from Telegram, it may be too big.")
		return
	}

	user := "unknown"
	dir := b.uploadDir
	if message.From != nil {
		user = message.From.UserName
		if user == "" {
			user = strconv.Itoa(message.From.ID)
		}
		dir = filepath.Join(dir, strconv.Itoa(message.From.ID))
	}
	filePath := filepath.Join(dir, filepath.Base(message.Document.FileName))
	if err := download(ctx, fileURL, filePath); err != nil {
		b.log.Error("download upload", zap.String("file", filePath), zap.Error(err))
		b.reply(chatID, "Could not save the file.")
		return
	}

	n, err := uploadFile(ctx, b.src, b.loader, filePath, user, b.now())
	if err != nil {
		b.log.Warn("upload rejected", zap.String("file", filePath), zap.Error(err))
		b.reply(chatID, "Upload failed: "+err.Error())
		return
	}
	b.reply(chatID, fmt.Sprintf("Appended %d rows from %s.", n, message.Document.FileName))
	b.sendReport(ctx, chatID, models.FilterSpec{UploadedBy: models.Only(user)})
}

func download(ctx context.Context, url, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download: %s", resp.Status)
	}
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, resp.Body)
	return err
}
