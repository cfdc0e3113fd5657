package main

import (
	"encoding/json"
	"fmt"

	"github.com/pivolan/payroll_analyzer/payroll"
	"github.com/pivolan/payroll_analyzer/report"
	"github.com/spf13/cobra"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the values offered for every filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, loader, err := setup(ctx)
		if err != nil {
			return err
		}
		snap, err := loader.Get(ctx)
		if err != nil {
			return err
		}
		catalog := payroll.BuildCatalog(snap.Table)
		if catalogJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(catalog)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Catalog(catalog))
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the catalog as JSON")
}
