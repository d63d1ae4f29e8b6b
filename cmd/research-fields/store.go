// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-fields/internal/report"
	"github.com/pdiddy/research-fields/internal/store"
	"github.com/pdiddy/research-fields/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the analysis history database (ingest, runs, query, export)",
	Long: `Store keeps every recorded analysis in a local SQLite database so earlier
runs can be listed, queried and exported after the JSON output is replaced.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest [results-file]",
	Short: "Record a saved analysis file as a new run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	path := resultsPath("")
	if len(args) == 1 {
		path = args[0]
	}

	rs, err := report.LoadResults(path)
	if err != nil {
		return err
	}

	s, err := store.NewStore(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	runID, err := s.Ingest(cmd.Context(), *rs, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored run %s (%d fields)\n", runID, rs.TotalUniqueFields)
	return nil
}

// --- runs subcommand ---

var storeRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, newest first",
	RunE:  runStoreRuns,
}

func runStoreRuns(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.Runs(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(cmd.OutOrStdout(), runs)
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-7s  %-6s  %s\n", "Run", "Created", "Authors", "Fields", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-7d  %-6d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.TotalAuthors, r.TotalUniqueFields, r.Source)
	}
	return nil
}

// --- query subcommand ---

var storeQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "List the fields of a run, optionally filtered by label",
	Long: `Query lists the fields of a recorded run in rank order. The optional text
matches field labels case-insensitively. Without --run the latest run is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStoreQuery,
}

func runStoreQuery(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	opts := store.QueryOptions{}
	opts.RunID, _ = cmd.Flags().GetString("run")
	opts.MinCount, _ = cmd.Flags().GetInt("min-count")
	opts.MaxResults, _ = cmd.Flags().GetInt("limit")
	if len(args) == 1 {
		opts.Query = args[0]
	}

	results, err := s.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatQueryOutput(w io.Writer, results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-35s  %-7s  %-11s  %s\n", "Rank", "Research Field", "Authors", "Avg H-Index", "Max H-Index")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range results {
		avg, _ := r.Stats.AverageHIndex.MarshalJSON()
		label := r.Label
		if runes := []rune(label); len(runes) > 35 {
			label = string(runes[:32]) + "..."
		}
		fmt.Fprintf(w, "%-4d  %-35s  %-7d  %-11s  %d\n",
			r.Rank, label, r.Stats.Count, avg, r.Stats.MaxHIndex)
	}
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a recorded run as YAML or JSON",
	RunE:  runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unsupported export format %q: use yaml or json", format)
	}

	cfg := storeConfig()
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(cfg.Dir, "export."+format)
	}
	runID, _ := cmd.Flags().GetString("run")

	s, err := store.NewStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	switch format {
	case "json":
		err = s.ExportJSON(cmd.Context(), runID, out)
	default:
		err = s.ExportYAML(cmd.Context(), runID, out)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", out)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("store-dir", types.DefaultStoreDir, "directory holding the history database")
	storeCmd.PersistentFlags().Int("max-results", types.DefaultMaxResults, "default maximum number of query results")
	viper.BindPFlag("store.dir", storeCmd.PersistentFlags().Lookup("store-dir"))
	viper.BindPFlag("store.max_results", storeCmd.PersistentFlags().Lookup("max-results"))

	storeRunsCmd.Flags().Bool("json", false, "output runs as JSON")

	// Query flags.
	storeQueryCmd.Flags().String("run", "", "run ID (default: latest run)")
	storeQueryCmd.Flags().Int("min-count", 0, "only fields with at least this many authors")
	storeQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	storeExportCmd.Flags().String("run", "", "run ID (default: latest run)")
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("out", "", "output file (default: <store-dir>/export.<format>)")

	// Wire subcommands.
	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeRunsCmd)
	storeCmd.AddCommand(storeQueryCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
