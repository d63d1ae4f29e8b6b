// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-fields/internal/fields"
)

// ExportYAML writes the full ResultSet of a run to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, runID, path string) error {
	rs, err := s.Load(ctx, runID)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(path, data)
}

// ExportJSON writes the full ResultSet of a run to path in the same layout
// as the analysis output file.
func (s *Store) ExportJSON(ctx context.Context, runID, path string) error {
	rs, err := s.Load(ctx, runID)
	if err != nil {
		return err
	}

	data, err := marshalJSON(rs)
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(path, data)
}

func marshalJSON(rs *fields.ResultSet) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
