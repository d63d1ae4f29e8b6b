// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-fields/internal/pipeline"
	"github.com/pdiddy/research-fields/internal/report"
	"github.com/pdiddy/research-fields/internal/store"
	"github.com/pdiddy/research-fields/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Aggregate author profiles into research fields",
	Long: `Analyze reads the author profiles JSON, groups authors by normalized
research interest, and writes per-field statistics ranked by average h-index.

A summary table is printed to stdout and a per-field summary CSV is written
next to the analysis. Use --xlsx for an Excel workbook, --csv "" to skip the
CSV, and --store to record the run in the history database.`,
	Example: `  research-fields analyze
  research-fields analyze --input authors.json --output fields.json --csv fields.csv
  research-fields analyze --store --quiet`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("input", types.DefaultInputFile, "author profiles JSON file")
	analyzeCmd.Flags().String("output", types.DefaultOutputFile, "analysis JSON output file")
	analyzeCmd.Flags().String("csv", types.DefaultCSVFile, "summary CSV file (empty to skip)")
	analyzeCmd.Flags().String("xlsx", "", "also write a summary workbook to this path")
	analyzeCmd.Flags().Int("top", types.DefaultTopFields, "fields listed by average h-index (0 = all)")
	analyzeCmd.Flags().Int("popular", types.DefaultTopPopular, "fields listed by author count (0 = all)")
	analyzeCmd.Flags().Bool("store", false, "record the run in the history database")
	analyzeCmd.Flags().Bool("quiet", false, "do not print the summary tables")

	for key, flag := range map[string]string{
		"analyze.input":   "input",
		"analyze.output":  "output",
		"analyze.csv":     "csv",
		"analyze.xlsx":    "xlsx",
		"analyze.top":     "top",
		"analyze.popular": "popular",
		"analyze.store":   "store",
	} {
		viper.BindPFlag(key, analyzeCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := analysisConfig()
	log := newLogger()

	rs, err := pipeline.Run(cfg, log)
	if err != nil {
		return err
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		report.PrintSummary(cmd.OutOrStdout(), *rs, cfg.TopFields, cfg.TopPopular)
	}

	if viper.GetBool("analyze.store") {
		s, err := store.NewStore(storeConfig())
		if err != nil {
			return err
		}
		defer s.Close()

		runID, err := s.Ingest(cmd.Context(), *rs, cfg.InputPath)
		if err != nil {
			return err
		}
		log.WithField("run", runID).WithField("db", s.Path()).Info("recorded analysis run")
	}

	if cfg.OutputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nAnalysis complete! Results saved to %s\n", cfg.OutputPath)
	}
	return nil
}
