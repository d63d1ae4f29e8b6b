// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/research-fields/internal/fields"
)

// QueryOptions holds parameters for field queries.
type QueryOptions struct {
	// RunID selects the run. Empty means the latest run.
	RunID string

	// Query is a case-insensitive substring match on the field label.
	Query string

	// MinCount drops fields with fewer authors.
	MinCount int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// QueryResult is one stored field without its author list.
type QueryResult struct {
	RunID string       `json:"run_id" yaml:"run_id"`
	Rank  int          `json:"rank" yaml:"rank"`
	Label string       `json:"label" yaml:"label"`
	Stats fields.Stats `json:"stats" yaml:"stats"`
}

const fieldColumns = `rank, label, count, average_h_index, average_i10_index,
	max_h_index, min_h_index, max_i10_index, min_i10_index, total_h_index, total_i10_index`

type scanner interface {
	Scan(dest ...any) error
}

func scanField(row scanner) (int, string, fields.Stats, error) {
	var (
		rank   int
		label  string
		st     fields.Stats
		avgH   float64
		avgI10 float64
	)
	err := row.Scan(&rank, &label, &st.Count, &avgH, &avgI10,
		&st.MaxHIndex, &st.MinHIndex, &st.MaxI10Index, &st.MinI10Index,
		&st.TotalHIndex, &st.TotalI10Index)
	st.AverageHIndex = fields.Mean(avgH)
	st.AverageI10Index = fields.Mean(avgI10)
	return rank, label, st, err
}

// Retrieve returns the fields of a run in rank order, filtered by opts.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	runID, err := s.resolveRun(ctx, opts.RunID)
	if err != nil {
		return nil, err
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args = []any{runID}
	)
	qb.WriteString(`SELECT ` + fieldColumns + ` FROM fields WHERE run_id = ?`)

	if opts.Query != "" {
		qb.WriteString(` AND label LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Query)+"%")
	}
	if opts.MinCount > 0 {
		qb.WriteString(` AND count >= ?`)
		args = append(args, opts.MinCount)
	}

	qb.WriteString(` ORDER BY rank LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying fields: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		rank, label, st, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, QueryResult{RunID: runID, Rank: rank, Label: label, Stats: st})
	}
	return results, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Load rebuilds the full ResultSet of a run, authors included. An empty
// runID loads the latest run.
func (s *Store) Load(ctx context.Context, runID string) (*fields.ResultSet, error) {
	runID, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	var totalAuthors int
	if err := s.db.QueryRowContext(ctx,
		`SELECT total_authors FROM runs WHERE id = ?`, runID,
	).Scan(&totalAuthors); err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}

	authors, err := s.loadAuthors(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+fieldColumns+` FROM fields WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading fields: %w", err)
	}
	defer rows.Close()

	var fs []fields.Field
	for rows.Next() {
		_, label, st, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		st.Authors = authors[label]
		fs = append(fs, fields.Field{Label: label, Stats: st})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Stored rank order is already sorted, so ranking again keeps it and
	// recomputes the summary facts.
	rs := fields.Rank(fs, totalAuthors)
	return &rs, nil
}

func (s *Store) loadAuthors(ctx context.Context, runID string) (map[string][]fields.AuthorSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, name, affiliation, hindex, i10index
		 FROM field_authors WHERE run_id = ? ORDER BY label, position`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading field authors: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]fields.AuthorSummary)
	for rows.Next() {
		var (
			label string
			a     fields.AuthorSummary
		)
		if err := rows.Scan(&label, &a.Name, &a.Affiliation, &a.HIndex, &a.I10Index); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		out[label] = append(out[label], a)
	}
	return out, rows.Err()
}
