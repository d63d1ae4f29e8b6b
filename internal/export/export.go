// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export projects a ResultSet into spreadsheet rows, one per field,
// in ResultSet order.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/research-fields/internal/fields"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Research Fields"

// Header is the column header row shared by the CSV and XLSX exports.
var Header = []string{
	"Research Field",
	"Number of Authors",
	"Average H-Index",
	"Average i10-Index",
	"Max H-Index",
	"Min H-Index",
	"Total H-Index",
}

// Row is one exported field.
type Row struct {
	Field           string
	Authors         int
	AverageHIndex   float64
	AverageI10Index float64
	MaxHIndex       int
	MinHIndex       int
	TotalHIndex     int
}

// Rows projects rs into export rows.
func Rows(rs fields.ResultSet) []Row {
	rows := make([]Row, len(rs.Fields))
	for i, f := range rs.Fields {
		rows[i] = Row{
			Field:           f.Label,
			Authors:         f.Stats.Count,
			AverageHIndex:   float64(f.Stats.AverageHIndex),
			AverageI10Index: float64(f.Stats.AverageI10Index),
			MaxHIndex:       f.Stats.MaxHIndex,
			MinHIndex:       f.Stats.MinHIndex,
			TotalHIndex:     f.Stats.TotalHIndex,
		}
	}
	return rows
}

func (r Row) strings() []string {
	return []string{
		r.Field,
		strconv.Itoa(r.Authors),
		formatMean(r.AverageHIndex),
		formatMean(r.AverageI10Index),
		strconv.Itoa(r.MaxHIndex),
		strconv.Itoa(r.MinHIndex),
		strconv.Itoa(r.TotalHIndex),
	}
}

func (r Row) cells() []any {
	return []any{
		r.Field,
		r.Authors,
		r.AverageHIndex,
		r.AverageI10Index,
		r.MaxHIndex,
		r.MinHIndex,
		r.TotalHIndex,
	}
}

// formatMean writes averages the way the JSON output does (15.0, 6.5).
func formatMean(v float64) string {
	b, _ := fields.Mean(v).MarshalJSON()
	return string(b)
}

// WriteCSV writes the header and one row per field to w.
func WriteCSV(w io.Writer, rs fields.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range Rows(rs) {
		if err := cw.Write(r.strings()); err != nil {
			return fmt.Errorf("writing CSV row %q: %w", r.Field, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the CSV export to path.
func WriteCSVFile(path string, rs fields.ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, rs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteXLSX writes a workbook with a single "Research Fields" sheet to path.
func WriteXLSX(path string, rs fields.ResultSet) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := wb.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(Header))
	if err != nil {
		return err
	}
	if err := wb.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range Rows(rs) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r.cells()
		if err := wb.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %q: %w", r.Field, err)
		}
	}

	if err := wb.SetColWidth(SheetName, "A", "A", 40); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
