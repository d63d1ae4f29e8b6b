// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one end-to-end analysis: load authors, aggregate
// fields, write the analysis JSON and the optional spreadsheet exports.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/research-fields/internal/dataset"
	"github.com/pdiddy/research-fields/internal/export"
	"github.com/pdiddy/research-fields/internal/fields"
	"github.com/pdiddy/research-fields/internal/logger"
	"github.com/pdiddy/research-fields/pkg/types"
)

// Run analyzes cfg.InputPath and writes the configured outputs. When the
// input is missing or malformed it returns a nil result and an error wrapping
// dataset.ErrInputNotFound or dataset.ErrInputMalformed; nothing is written
// in that case.
//
// The spreadsheet exports are written before the analysis JSON. If an export
// fails, Run returns the error and leaves any existing analysis file at
// cfg.OutputPath untouched, though exports written earlier in the same run
// remain.
func Run(cfg types.AnalysisConfig, log *logger.Logger) (*fields.ResultSet, error) {
	log = log.WithComponent("pipeline")

	log.WithField("input", cfg.InputPath).Info("loading authors data")
	authors, err := dataset.LoadAuthors(cfg.InputPath)
	if err != nil {
		log.WithError(err).Error("could not load authors")
		return nil, err
	}
	log.WithField("authors", len(authors)).Info("processing authors")

	rs := fields.Analyze(authors)
	log.WithField("fields", rs.TotalUniqueFields).Info("found unique research interests")

	if cfg.CSVPath != "" {
		log.WithField("csv", cfg.CSVPath).Info("saving summary CSV")
		if err := export.WriteCSVFile(cfg.CSVPath, rs); err != nil {
			return nil, err
		}
	}

	if cfg.XLSXPath != "" {
		log.WithField("xlsx", cfg.XLSXPath).Info("saving summary workbook")
		if err := export.WriteXLSX(cfg.XLSXPath, rs); err != nil {
			return nil, err
		}
	}

	if cfg.OutputPath != "" {
		log.WithField("output", cfg.OutputPath).Info("saving research fields analysis")
		if err := WriteResults(cfg.OutputPath, rs); err != nil {
			return nil, err
		}
	}

	return &rs, nil
}

// WriteResults writes rs as indented JSON. The file is written to a temporary
// sibling first and renamed, so readers never observe a partial document.
func WriteResults(path string, rs fields.ResultSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
