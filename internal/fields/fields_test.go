// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-fields/pkg/types"
)

// --- test helpers ---

func author(name string, h, i10 int, interests ...string) types.Author {
	return types.Author{
		Name:        name,
		Affiliation: name + " University",
		Interests:   interests,
		HIndex:      h,
		I10Index:    i10,
	}
}

func decodeAuthors(t *testing.T, data string) []types.Author {
	t.Helper()
	var authors []types.Author
	require.NoError(t, json.Unmarshal([]byte(data), &authors))
	return authors
}

func labels(fs []Field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Label
	}
	return out
}

func names(as []AuthorSummary) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Name
	}
	return out
}

// --- aggregate tests ---

func TestAnalyzeConcreteScenario(t *testing.T) {
	authors := decodeAuthors(t, `[
		{"profile_name":"A","profile_interests":["Machine Learning"],"hindex":"10","i10index":"5"},
		{"profile_name":"B","profile_interests":["machine learning."],"hindex":20,"i10index":8}
	]`)

	rs := Analyze(authors)

	require.Len(t, rs.Fields, 1)
	f := rs.Fields[0]
	assert.Equal(t, "Machine Learning", f.Label)
	assert.Equal(t, 2, f.Stats.Count)
	assert.Equal(t, Mean(15.0), f.Stats.AverageHIndex)
	assert.Equal(t, Mean(6.5), f.Stats.AverageI10Index)
	assert.Equal(t, 20, f.Stats.MaxHIndex)
	assert.Equal(t, 10, f.Stats.MinHIndex)
	assert.Equal(t, 8, f.Stats.MaxI10Index)
	assert.Equal(t, 5, f.Stats.MinI10Index)
	assert.Equal(t, 30, f.Stats.TotalHIndex)
	assert.Equal(t, 13, f.Stats.TotalI10Index)
	assert.Equal(t, []string{"B", "A"}, names(f.Stats.Authors))
	assert.Equal(t, types.MissingValue, f.Stats.Authors[0].Affiliation)

	assert.Equal(t, 2, rs.TotalAuthors)
	assert.Equal(t, 1, rs.TotalUniqueFields)
}

func TestAggregateCountsAuthorOncePerField(t *testing.T) {
	authors := []types.Author{
		author("dup", 7, 3, "AI", "ai.", " Ai "),
		author("other", 3, 1, "ai"),
	}

	fs := Aggregate(authors)

	require.Len(t, fs, 1)
	assert.Equal(t, "Ai", fs[0].Label)
	assert.Equal(t, 2, fs[0].Stats.Count)
	assert.Equal(t, 10, fs[0].Stats.TotalHIndex)
	assert.Equal(t, []string{"dup", "other"}, names(fs[0].Stats.Authors))
}

func TestAggregateMultipleFieldsPerAuthor(t *testing.T) {
	authors := []types.Author{
		author("a", 10, 5, "Robotics", "Computer Vision"),
		author("b", 4, 2, "computer vision", "Databases"),
		author("c", 6, 0, "databases!"),
	}

	fs := Aggregate(authors)

	assert.Equal(t, []string{"Robotics", "Computer Vision", "Databases"}, labels(fs))
	byLabel := map[string]Stats{}
	for _, f := range fs {
		byLabel[f.Label] = f.Stats
	}
	assert.Equal(t, 1, byLabel["Robotics"].Count)
	assert.Equal(t, 2, byLabel["Computer Vision"].Count)
	assert.Equal(t, Mean(7.0), byLabel["Computer Vision"].AverageHIndex)
	assert.Equal(t, 2, byLabel["Databases"].Count)
	assert.Equal(t, Mean(5.0), byLabel["Databases"].AverageHIndex)
	assert.Equal(t, Mean(1.0), byLabel["Databases"].AverageI10Index)
}

func TestAggregateDiscardsEmptyLabels(t *testing.T) {
	authors := []types.Author{
		author("blank", 5, 5, "", "   ", "..."),
		author("none", 9, 9),
	}

	assert.Empty(t, Aggregate(authors))

	rs := Analyze(authors)
	assert.Equal(t, 2, rs.TotalAuthors)
	assert.Equal(t, 0, rs.TotalUniqueFields)
}

func TestAggregateStableAuthorOrder(t *testing.T) {
	authors := []types.Author{
		author("first", 5, 0, "Physics"),
		author("second", 9, 0, "physics"),
		author("third", 5, 0, "PHYSICS"),
		author("fourth", 5, 0, "physics."),
		author("fifth", 1, 0, "physics"),
	}

	fs := Aggregate(authors)

	require.Len(t, fs, 1)
	assert.Equal(t, []string{"second", "first", "third", "fourth", "fifth"}, names(fs[0].Stats.Authors))
}

func TestAggregateMissingMetrics(t *testing.T) {
	authors := decodeAuthors(t, `[
		{"profile_name":"nometrics","profile_interests":["Optics"]},
		{"profile_name":"measured","profile_interests":["optics"],"hindex":4,"i10index":2}
	]`)

	fs := Aggregate(authors)

	require.Len(t, fs, 1)
	st := fs[0].Stats
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, 0, st.MinHIndex)
	assert.Equal(t, 0, st.MinI10Index)
	assert.Equal(t, Mean(2.0), st.AverageHIndex)
	assert.Equal(t, Mean(1.0), st.AverageI10Index)
}

func TestAggregateOutOfRangeMetrics(t *testing.T) {
	authors := decodeAuthors(t, `[
		{"profile_name":"huge","profile_interests":["Optics"],"hindex":"9223372036854775807","i10index":-4},
		{"profile_name":"small","profile_interests":["optics"],"hindex":1,"i10index":"-9"}
	]`)

	fs := Aggregate(authors)

	require.Len(t, fs, 1)
	st := fs[0].Stats
	assert.Equal(t, 1, st.TotalHIndex)
	assert.Equal(t, 0, st.TotalI10Index)
	assert.Equal(t, 1, st.MaxHIndex)
	assert.Equal(t, 0, st.MinHIndex)
	assert.Equal(t, Mean(0.5), st.AverageHIndex)
}

func TestAggregateRoundsAverages(t *testing.T) {
	authors := []types.Author{
		author("a", 1, 2, "Logic"),
		author("b", 2, 2, "Logic"),
		author("c", 2, 3, "Logic"),
	}

	fs := Aggregate(authors)

	require.Len(t, fs, 1)
	assert.Equal(t, Mean(1.67), fs[0].Stats.AverageHIndex)
	assert.Equal(t, Mean(2.33), fs[0].Stats.AverageI10Index)
}

func TestAggregateSumAverageConsistency(t *testing.T) {
	authors := []types.Author{
		author("a", 13, 40, "Statistics", "Biology"),
		author("b", 7, 11, "statistics"),
		author("c", 22, 35, "biology", "Statistics"),
		author("d", 3, 0, "Statistics."),
		author("e", 0, 0, "Biology"),
	}

	for _, f := range Aggregate(authors) {
		st := f.Stats
		var sum int
		for _, a := range st.Authors {
			sum += a.HIndex
		}
		assert.Equal(t, sum, st.TotalHIndex, f.Label)
		assert.Equal(t, len(st.Authors), st.Count, f.Label)
		assert.InDelta(t, float64(st.TotalHIndex), float64(st.AverageHIndex)*float64(st.Count), 0.5*float64(st.Count), f.Label)
		want := math.Round(float64(sum)/float64(st.Count)*100) / 100
		assert.InDelta(t, want, float64(st.AverageHIndex), 1e-9, f.Label)
	}
}

// --- rank tests ---

func TestRankOrdersByAverageHIndex(t *testing.T) {
	authors := []types.Author{
		author("a", 2, 0, "Low"),
		author("b", 30, 0, "High"),
		author("c", 10, 0, "Mid", "Tie"),
		author("d", 10, 0, "Tie2"),
	}

	rs := Analyze(authors)

	assert.Equal(t, []string{"High", "Mid", "Tie", "Tie2", "Low"}, labels(rs.Fields))
	for i := 1; i < len(rs.Fields); i++ {
		assert.GreaterOrEqual(t, float64(rs.Fields[i-1].Stats.AverageHIndex), float64(rs.Fields[i].Stats.AverageHIndex))
	}
}

func TestRankSummary(t *testing.T) {
	authors := []types.Author{
		author("a", 50, 0, "Astronomy"),
		author("b", 5, 0, "Chemistry", "Geology"),
		author("c", 6, 0, "chemistry", "Geology"),
		author("d", 60, 0, "geology"),
	}

	rs := Analyze(authors)

	require.NotNil(t, rs.Summary.TopFieldByAvgHIndex)
	assert.Equal(t, "Astronomy", rs.Summary.TopFieldByAvgHIndex.Label)
	require.NotNil(t, rs.Summary.MostPopularField)
	assert.Equal(t, "Geology", rs.Summary.MostPopularField.Label)
	assert.Equal(t, 3, rs.Summary.MostPopularField.Stats.Count)
	require.NotNil(t, rs.Summary.FieldWithHighestMaxHIndex)
	assert.Equal(t, "Geology", rs.Summary.FieldWithHighestMaxHIndex.Label)
}

func TestRankSummaryTiesPickFirstInOrder(t *testing.T) {
	fs := []Field{
		{Label: "B", Stats: Stats{Count: 2, AverageHIndex: 5, MaxHIndex: 9}},
		{Label: "A", Stats: Stats{Count: 2, AverageHIndex: 5, MaxHIndex: 9}},
	}

	rs := Rank(fs, 4)

	assert.Equal(t, "B", rs.Summary.TopFieldByAvgHIndex.Label)
	assert.Equal(t, "B", rs.Summary.MostPopularField.Label)
	assert.Equal(t, "B", rs.Summary.FieldWithHighestMaxHIndex.Label)
	assert.Equal(t, "B", fs[0].Label, "Rank must not reorder its input")
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, authors := range [][]types.Author{nil, {}} {
		rs := Analyze(authors)

		assert.Equal(t, 0, rs.TotalAuthors)
		assert.Equal(t, 0, rs.TotalUniqueFields)
		assert.Empty(t, rs.Fields)
		assert.Nil(t, rs.Summary.TopFieldByAvgHIndex)
		assert.Nil(t, rs.Summary.MostPopularField)
		assert.Nil(t, rs.Summary.FieldWithHighestMaxHIndex)
	}
}

func TestByCount(t *testing.T) {
	rs := ResultSet{Fields: []Field{
		{Label: "x", Stats: Stats{Count: 1}},
		{Label: "y", Stats: Stats{Count: 3}},
		{Label: "z", Stats: Stats{Count: 1}},
	}}

	assert.Equal(t, []string{"y", "x", "z"}, labels(rs.ByCount()))
	assert.Equal(t, []string{"x", "y", "z"}, labels(rs.Fields))
}

func TestLookupAndTop(t *testing.T) {
	rs := Analyze([]types.Author{
		author("a", 3, 0, "One"),
		author("b", 2, 0, "Two"),
		author("c", 1, 0, "Three"),
	})

	f, ok := rs.Lookup("Two")
	require.True(t, ok)
	assert.Equal(t, 1, f.Stats.Count)
	_, ok = rs.Lookup("two")
	assert.False(t, ok)

	assert.Equal(t, []string{"One", "Two"}, labels(rs.Top(2)))
	assert.Len(t, rs.Top(0), 3)
	assert.Len(t, rs.Top(10), 3)
}
