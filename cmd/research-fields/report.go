// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/research-fields/internal/report"
	"github.com/pdiddy/research-fields/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the summary of a saved analysis",
	Long: `Report reads an analysis JSON file written by analyze and prints the
summary tables again, or the raw analysis with --json.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("results", "", "analysis JSON file (default: the analyze output file)")
	reportCmd.Flags().Int("top", types.DefaultTopFields, "fields listed by average h-index (0 = all)")
	reportCmd.Flags().Int("popular", types.DefaultTopPopular, "fields listed by author count (0 = all)")
	reportCmd.Flags().Bool("json", false, "print the analysis as JSON")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("results")
	rs, err := report.LoadResults(resultsPath(path))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(cmd.OutOrStdout(), rs)
	}

	top, _ := cmd.Flags().GetInt("top")
	popular, _ := cmd.Flags().GetInt("popular")
	report.PrintSummary(cmd.OutOrStdout(), *rs, top, popular)
	return nil
}
