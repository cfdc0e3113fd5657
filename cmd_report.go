package main

import (
	"fmt"

	"github.com/pivolan/payroll_analyzer/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportFilters filterArgs
	noGraph       bool
)

var reportCmd = &cobra.Command{
	Use:   "report [key=value ...]",
	Short: "Print metrics for a filter selection and write the charts",
	Long: `Filters can be given as flags (--agency Health) or as key=value arguments
(agency=Health). Arguments override flags for the same key.
A value of * (or All) selects everything. Quote a value to match it literally,
e.g. agency='"All"' for an agency named All.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fa := reportFilters
	if err := fa.apply(args); err != nil {
		return err
	}
	spec, err := fa.spec()
	if err != nil {
		return err
	}

	_, loader, err := setup(ctx)
	if err != nil {
		return err
	}
	snap, err := loader.Get(ctx)
	if err != nil {
		return err
	}

	a, err := analyze(snap.Table, spec, !noGraph, logger)
	if a == nil {
		return err
	}
	if err != nil {
		logger.Warn("report degraded", zap.Error(err))
	}
	fmt.Fprint(cmd.OutOrStdout(), report.Analysis(a))

	arts, err := renderArtifacts(a, logger)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(outputDir, a.SessionID, arts)
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", p)
	}
	return err
}
