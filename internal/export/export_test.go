// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/research-fields/internal/fields"
	"github.com/pdiddy/research-fields/pkg/types"
)

func sampleResult() fields.ResultSet {
	return fields.Analyze([]types.Author{
		{Name: "A", Interests: []string{"Machine Learning", "Ethics"}, HIndex: 10, I10Index: 5},
		{Name: "B", Interests: []string{"machine learning."}, HIndex: 20, I10Index: 8},
		{Name: "C", Interests: []string{"ethics", "Science & Society"}, HIndex: 3, I10Index: 1},
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		Header,
		{"Machine Learning", "2", "15.0", "6.5", "20", "10", "30"},
		{"Ethics", "2", "6.5", "3.0", "10", "3", "13"},
		{"Science & Society", "1", "3.0", "1.0", "3", "3", "3"},
	}, records)
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fields.Analyze(nil)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header}, records)
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, WriteCSVFile(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Research Field,Number of Authors")
	assert.Contains(t, string(data), "Machine Learning,2,15.0,6.5,20,10,30")
}

func TestWriteCSVFileBadPath(t *testing.T) {
	err := WriteCSVFile(filepath.Join(t.TempDir(), "missing", "summary.csv"), sampleResult())
	assert.Error(t, err)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, WriteXLSX(path, sampleResult()))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{SheetName}, wb.GetSheetList())

	rows, err := wb.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Machine Learning", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "15", rows[1][2])
	assert.Equal(t, "6.5", rows[1][3])
	assert.Equal(t, "Science & Society", rows[3][0])
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResult())

	require.Len(t, rows, 3)
	assert.Equal(t, Row{
		Field:           "Ethics",
		Authors:         2,
		AverageHIndex:   6.5,
		AverageI10Index: 3,
		MaxHIndex:       10,
		MinHIndex:       3,
		TotalHIndex:     13,
	}, rows[1])
}
