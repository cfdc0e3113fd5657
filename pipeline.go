package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pivolan/payroll_analyzer/cache"
	"github.com/pivolan/payroll_analyzer/config"
	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/pivolan/payroll_analyzer/payroll"
	"github.com/pivolan/payroll_analyzer/source"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// openSource builds the configured transactions source.
func openSource(ctx context.Context, cfg *config.Config, kind string, log *zap.Logger) (source.Source, error) {
	switch kind {
	case config.SourceCSV:
		return source.NewCSVSource(cfg.CSVPath, log), nil
	case config.SourceSQL:
		if cfg.DbDsn == "" {
			return nil, fmt.Errorf("sql source: DB_DSN is not set")
		}
		return source.OpenSQL(cfg.DbDsn, cfg.SQLTable, log)
	case config.SourceSheets:
		if cfg.SheetID == "" {
			return nil, fmt.Errorf("sheets source: SHEET_ID is not set")
		}
		var opts []option.ClientOption
		if cfg.GoogleCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
		}
		return source.NewSheetsSource(ctx, cfg.SheetID, cfg.SheetWorksheet, log, opts...)
	}
	return nil, fmt.Errorf("unknown source %q", kind)
}

// newLoader wraps src in a cache that normalizes every fetch with the given band width.
func newLoader(src source.Source, width int, ttl time.Duration, log *zap.Logger) (*cache.Loader, error) {
	if !payroll.ValidBandWidth(width) {
		return nil, fmt.Errorf("band width %d: %w", width, payroll.ErrInvalidBandWidth)
	}
	fetch := func(ctx context.Context) (*models.Table, error) {
		raw, err := src.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch transactions: %w", err)
		}
		return payroll.Normalize(raw, payroll.WithBandWidth(width), payroll.WithLogger(log))
	}
	return cache.NewLoader(fetch, cache.WithTTL(ttl), cache.WithLogger(log)), nil
}

// setup opens the source selected by the root flags and returns it with its loader.
func setup(ctx context.Context) (source.Source, *cache.Loader, error) {
	cfg := config.GetConfig()
	src, err := openSource(ctx, cfg, sourceKind, logger)
	if err != nil {
		return nil, nil, err
	}
	loader, err := newLoader(src, bandWidth, cfg.CacheTTL, logger)
	if err != nil {
		return nil, nil, err
	}
	return src, loader, nil
}

// analyze runs one report. The flow keeps one node per tier so the Sankey page stays acyclic
// even when a label such as "Unknown" shows up in several tiers.
func analyze(t *models.Table, spec models.FilterSpec, graph bool, log *zap.Logger) (*models.Analysis, error) {
	return payroll.Analyze(t, spec, payroll.Capabilities{Graph: graph},
		payroll.WithNodeIdentity(payroll.NodesByTier), payroll.WithLogger(log))
}
