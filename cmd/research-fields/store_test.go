// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-fields/internal/fields"
	"github.com/pdiddy/research-fields/internal/store"
	"github.com/pdiddy/research-fields/pkg/types"
)

func TestFormatQueryOutputTable(t *testing.T) {
	results := []store.QueryResult{
		{Rank: 1, Label: "Machine Learning", Stats: fields.Stats{Count: 3, AverageHIndex: 15, MaxHIndex: 20}},
		{Rank: 2, Label: "A Very Long Research Field Label That Overflows", Stats: fields.Stats{Count: 1, AverageHIndex: 6.5, MaxHIndex: 7}},
	}

	var buf strings.Builder
	require.NoError(t, formatQueryOutput(&buf, results, false))
	out := buf.String()

	assert.Contains(t, out, "Research Field")
	assert.Contains(t, out, "Machine Learning")
	assert.Contains(t, out, "15.0")
	assert.Contains(t, out, "A Very Long Research Field Label...")
	assert.NotContains(t, out, "Overflows")
}

func TestFormatQueryOutputEmpty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, formatQueryOutput(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestFormatQueryOutputJSON(t *testing.T) {
	results := []store.QueryResult{
		{RunID: "r1", Rank: 1, Label: "Science & Society", Stats: fields.Stats{Count: 1, AverageHIndex: 3}},
	}

	var buf strings.Builder
	require.NoError(t, formatQueryOutput(&buf, results, true))
	assert.Contains(t, buf.String(), `"label": "Science & Society"`)
	assert.Contains(t, buf.String(), `"average_h_index": 3.0`)
}

func TestResultsPath(t *testing.T) {
	t.Cleanup(viper.Reset)

	assert.Equal(t, "explicit.json", resultsPath("explicit.json"))

	viper.Set("analyze.output", "")
	assert.Equal(t, types.DefaultOutputFile, resultsPath(""))

	viper.Set("analyze.output", "custom.json")
	assert.Equal(t, "custom.json", resultsPath(""))
}

func TestAnalyzeCSVDefault(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("csv")
	require.NotNil(t, flag)
	assert.Equal(t, types.DefaultCSVFile, flag.DefValue)
}
