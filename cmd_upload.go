package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pivolan/payroll_analyzer/cache"
	"github.com/pivolan/payroll_analyzer/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var uploadUser string

var errReadOnlySource = errors.New("source does not accept uploads")

var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Append a transactions file to the source, stamped with uploader and time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src, loader, err := setup(ctx)
		if err != nil {
			return err
		}
		n, err := uploadFile(ctx, src, loader, args[0], uploadUser, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "appended %d rows\n", n)
		return nil
	},
}

// uploadFile reads a transactions file, stamps it and appends it to dst. The cache is
// refreshed afterwards so the next report sees the new rows.
func uploadFile(ctx context.Context, dst source.Source, loader *cache.Loader, path, user string, now time.Time) (int, error) {
	appender, ok := dst.(source.Appender)
	if !ok {
		return 0, errReadOnlySource
	}
	raw, err := source.NewCSVSource(path, logger).Fetch(ctx)
	if err != nil {
		return 0, err
	}
	n, err := appender.Append(ctx, source.StampUpload(raw, user, now))
	if err != nil {
		return n, fmt.Errorf("append %s: %w", path, err)
	}
	logger.Info("upload appended", zap.String("file", path), zap.String("user", user), zap.Int("rows", n))
	if loader != nil {
		if _, err := loader.Refresh(ctx); err != nil {
			logger.Warn("refresh after upload failed", zap.Error(err))
		}
	}
	return n, nil
}
