// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fields groups authors into normalized research fields and computes
// per-field citation statistics.
//
// The engine is pure: Analyze takes a fully decoded author list and returns an
// immutable ResultSet. It holds no state between calls and performs no I/O.
package fields

import (
	"github.com/pdiddy/research-fields/pkg/types"
)

// AuthorSummary is the reduced author record listed under a field.
type AuthorSummary struct {
	Name        string `json:"name" yaml:"name"`
	Affiliation string `json:"affiliation" yaml:"affiliation"`
	HIndex      int    `json:"hindex" yaml:"hindex"`
	I10Index    int    `json:"i10index" yaml:"i10index"`
}

// Stats holds the descriptive statistics for one research field.
type Stats struct {
	// Count is the number of distinct authors in the field.
	Count int `json:"count" yaml:"count"`

	// AverageHIndex and AverageI10Index are means rounded to 2 decimals.
	AverageHIndex   Mean `json:"average_h_index" yaml:"average_h_index"`
	AverageI10Index Mean `json:"average_i10_index" yaml:"average_i10_index"`

	MaxHIndex     int `json:"max_h_index" yaml:"max_h_index"`
	MinHIndex     int `json:"min_h_index" yaml:"min_h_index"`
	MaxI10Index   int `json:"max_i10_index" yaml:"max_i10_index"`
	MinI10Index   int `json:"min_i10_index" yaml:"min_i10_index"`
	TotalHIndex   int `json:"total_h_index" yaml:"total_h_index"`
	TotalI10Index int `json:"total_i10_index" yaml:"total_i10_index"`

	// Authors is ordered by descending h-index; equal h-indices keep input order.
	Authors []AuthorSummary `json:"authors" yaml:"authors"`
}

// Field pairs a normalized label with its statistics. It encodes to JSON as
// a two-element array [label, stats].
type Field struct {
	Label string `yaml:"label"`
	Stats Stats  `yaml:"stats"`
}

// Summary holds the headline facts of a ResultSet. Each fact is nil when the
// result has no fields.
type Summary struct {
	TopFieldByAvgHIndex       *Field `json:"top_field_by_avg_h_index" yaml:"top_field_by_avg_h_index"`
	MostPopularField          *Field `json:"most_popular_field" yaml:"most_popular_field"`
	FieldWithHighestMaxHIndex *Field `json:"field_with_highest_max_h_index" yaml:"field_with_highest_max_h_index"`
}

// ResultSet is the complete output of one analysis. Fields is ordered by
// descending average h-index, and that order is preserved when the set is
// encoded as a JSON object.
type ResultSet struct {
	Fields            []Field `yaml:"research_fields_statistics"`
	TotalAuthors      int     `yaml:"total_authors"`
	TotalUniqueFields int     `yaml:"total_unique_fields"`
	Summary           Summary `yaml:"summary"`
}

// Analyze aggregates authors into fields and ranks the result.
func Analyze(authors []types.Author) ResultSet {
	return Rank(Aggregate(authors), len(authors))
}

// Lookup returns the field with the given normalized label.
func (rs ResultSet) Lookup(label string) (Field, bool) {
	for _, f := range rs.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}

// Top returns at most n fields in ResultSet order. n <= 0 returns all fields.
func (rs ResultSet) Top(n int) []Field {
	if n <= 0 || n >= len(rs.Fields) {
		return rs.Fields
	}
	return rs.Fields[:n]
}
