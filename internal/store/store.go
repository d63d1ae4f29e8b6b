// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a history of research fields analyses in SQLite so
// runs can be listed, queried and exported after the JSON output has been
// replaced.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-fields/internal/fields"
	"github.com/pdiddy/research-fields/pkg/types"
)

const (
	dbFile = "research-fields.db"

	// Fixed width so created_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

var (
	// ErrNoRuns is returned when a query needs the latest run and none exist.
	ErrNoRuns = errors.New("no analysis runs stored")

	// ErrRunNotFound is returned for an unknown run ID.
	ErrRunNotFound = errors.New("run not found")
)

// Store manages the analysis history database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Run describes one stored analysis.
type Run struct {
	ID                string    `json:"id" yaml:"id"`
	Source            string    `json:"source" yaml:"source"`
	CreatedAt         time.Time `json:"created_at" yaml:"created_at"`
	TotalAuthors      int       `json:"total_authors" yaml:"total_authors"`
	TotalUniqueFields int       `json:"total_unique_fields" yaml:"total_unique_fields"`
}

// NewStore opens or creates the database at cfg.Dir/research-fields.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			created_at TEXT NOT NULL,
			total_authors INTEGER NOT NULL,
			total_unique_fields INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fields (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			label TEXT NOT NULL,
			count INTEGER NOT NULL,
			average_h_index REAL NOT NULL,
			average_i10_index REAL NOT NULL,
			max_h_index INTEGER NOT NULL,
			min_h_index INTEGER NOT NULL,
			max_i10_index INTEGER NOT NULL,
			min_i10_index INTEGER NOT NULL,
			total_h_index INTEGER NOT NULL,
			total_i10_index INTEGER NOT NULL,
			PRIMARY KEY (run_id, label)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fields_rank ON fields(run_id, rank)`,
		`CREATE TABLE IF NOT EXISTS field_authors (
			run_id TEXT NOT NULL,
			label TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			affiliation TEXT NOT NULL,
			hindex INTEGER NOT NULL,
			i10index INTEGER NOT NULL,
			PRIMARY KEY (run_id, label, position),
			FOREIGN KEY (run_id, label) REFERENCES fields(run_id, label) ON DELETE CASCADE
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Ingest stores rs as a new run and returns its ID. The run is written in a
// single transaction, retried while SQLite reports the database busy or
// locked.
func (s *Store) Ingest(ctx context.Context, rs fields.ResultSet, source string) (string, error) {
	runID := uuid.NewString()
	createdAt := time.Now().UTC().Format(timeLayout)

	op := func() error {
		err := s.ingestRun(ctx, runID, createdAt, rs, source)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("ingesting run: %w", err)
	}
	return runID, nil
}

func (s *Store) ingestRun(ctx context.Context, runID, createdAt string, rs fields.ResultSet, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at, total_authors, total_unique_fields)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, source, createdAt, rs.TotalAuthors, rs.TotalUniqueFields,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	fieldStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fields (run_id, rank, label, count, average_h_index, average_i10_index,
			max_h_index, min_h_index, max_i10_index, min_i10_index, total_h_index, total_i10_index)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing field insert: %w", err)
	}
	defer fieldStmt.Close()

	authorStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO field_authors (run_id, label, position, name, affiliation, hindex, i10index)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing author insert: %w", err)
	}
	defer authorStmt.Close()

	for rank, f := range rs.Fields {
		st := f.Stats
		_, err := fieldStmt.ExecContext(ctx,
			runID, rank+1, f.Label, st.Count,
			float64(st.AverageHIndex), float64(st.AverageI10Index),
			st.MaxHIndex, st.MinHIndex, st.MaxI10Index, st.MinI10Index,
			st.TotalHIndex, st.TotalI10Index,
		)
		if err != nil {
			return fmt.Errorf("inserting field %q: %w", f.Label, err)
		}

		for pos, a := range st.Authors {
			_, err := authorStmt.ExecContext(ctx,
				runID, f.Label, pos, a.Name, a.Affiliation, a.HIndex, a.I10Index)
			if err != nil {
				return fmt.Errorf("inserting author for %q: %w", f.Label, err)
			}
		}
	}

	return tx.Commit()
}

// retryable reports whether err is a transient SQLite lock conflict.
func retryable(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, created_at, total_authors, total_unique_fields
		 FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &r.Source, &created, &r.TotalAuthors, &r.TotalUniqueFields); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at for run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRunID returns the ID of the newest run, or ErrNoRuns.
func (s *Store) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRuns
	}
	if err != nil {
		return "", fmt.Errorf("looking up latest run: %w", err)
	}
	return id, nil
}

// resolveRun returns runID when it names a stored run, or the latest run
// when runID is empty.
func (s *Store) resolveRun(ctx context.Context, runID string) (string, error) {
	if runID == "" {
		return s.LatestRunID(ctx)
	}
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM runs WHERE id = ?`, runID,
	).Scan(&n); err != nil {
		return "", fmt.Errorf("looking up run: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return runID, nil
}
