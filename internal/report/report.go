// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report reads a saved research fields analysis and renders it as
// console tables.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pdiddy/research-fields/internal/fields"
)

// ErrResultsUnavailable reports that no analysis has been written yet.
// Consumers treat it as "feature unavailable" rather than a failure.
var ErrResultsUnavailable = errors.New("research fields analysis unavailable")

// LoadResults reads an analysis JSON file, keeping the saved field order.
func LoadResults(path string) (*fields.ResultSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrResultsUnavailable, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var rs fields.ResultSet
	if err := json.NewDecoder(f).Decode(&rs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &rs, nil
}

const (
	wideRule   = 70
	narrowRule = 50
)

// PrintSummary writes the headline facts, the top fields by average h-index
// and the most popular fields. topN and popularN <= 0 list every field.
func PrintSummary(w io.Writer, rs fields.ResultSet, topN, popularN int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", wideRule))
	fmt.Fprintln(w, "RESEARCH FIELDS ANALYSIS SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", wideRule))

	fmt.Fprintf(w, "\nTotal Authors: %d\n", rs.TotalAuthors)
	fmt.Fprintf(w, "Total Unique Research Fields: %d\n", rs.TotalUniqueFields)

	if top := rs.Summary.TopFieldByAvgHIndex; top != nil {
		fmt.Fprintf(w, "Top Field by Average H-Index: %s (Avg: %s)\n", top.Label, mean(top.Stats.AverageHIndex))
	}
	if pop := rs.Summary.MostPopularField; pop != nil {
		fmt.Fprintf(w, "Most Popular Field: %s (%d authors)\n", pop.Label, pop.Stats.Count)
	}

	topFields := rs.Top(topN)
	fmt.Fprintf(w, "\nTop %d Research Fields by Average H-Index:\n", len(topFields))
	fmt.Fprintln(w, strings.Repeat("-", wideRule))
	fmt.Fprintf(w, "%-35s %-8s %-12s %s\n", "Research Field", "Authors", "Avg H-Index", "Max H-Index")
	fmt.Fprintln(w, strings.Repeat("-", wideRule))
	for _, f := range topFields {
		fmt.Fprintf(w, "%-35s %-8d %-12s %d\n",
			truncate(f.Label, 32), f.Stats.Count, mean(f.Stats.AverageHIndex), f.Stats.MaxHIndex)
	}

	popular := rs.ByCount()
	if popularN > 0 && popularN < len(popular) {
		popular = popular[:popularN]
	}
	fmt.Fprintf(w, "\nTop %d Most Popular Research Fields:\n", len(popular))
	fmt.Fprintln(w, strings.Repeat("-", narrowRule))
	for i, f := range popular {
		fmt.Fprintf(w, "%2d. %-32s %3d authors (%.1f%%)\n",
			i+1, truncate(f.Label, 30), f.Stats.Count, percent(f.Stats.Count, rs.TotalAuthors))
	}
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func mean(m fields.Mean) string {
	b, _ := m.MarshalJSON()
	return string(b)
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
