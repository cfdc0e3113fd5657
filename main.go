package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pivolan/payroll_analyzer/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	sourceKind string
	bandWidth  int
	outputDir  string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll adjustment analyzer",
	Long: `Loads the payroll transactions sheet, filters it and reports totals,
the largest adjustments and the agency -> analyst -> reason flow.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cfg := config.GetConfig()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", cfg.Source, "Data source: csv, sql or sheets")
	rootCmd.PersistentFlags().IntVar(&bandWidth, "band-width", cfg.BandWidth, "Salary band width")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "out", "o", cfg.OutputDir, "Directory for charts")

	bindFilterFlags(reportCmd, &reportFilters)
	reportCmd.Flags().BoolVar(&noGraph, "no-graph", false, "Write grouped counts instead of the Sankey flow")
	uploadCmd.Flags().StringVar(&uploadUser, "user", "", "Uploader recorded in uploaded_by (required)")
	uploadCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(botCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
