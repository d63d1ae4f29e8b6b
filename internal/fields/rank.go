// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import "sort"

// Rank orders fields by descending average h-index and derives the summary
// facts. The sort is stable, so fields with equal averages keep the order
// they were given in. totalAuthors is the size of the analyzed input,
// including authors that matched no field.
func Rank(fields []Field, totalAuthors int) ResultSet {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stats.AverageHIndex > sorted[j].Stats.AverageHIndex
	})

	return ResultSet{
		Fields:            sorted,
		TotalAuthors:      totalAuthors,
		TotalUniqueFields: len(sorted),
		Summary: Summary{
			TopFieldByAvgHIndex: maxBy(sorted, func(s Stats) float64 {
				return float64(s.AverageHIndex)
			}),
			MostPopularField: maxBy(sorted, func(s Stats) float64 {
				return float64(s.Count)
			}),
			FieldWithHighestMaxHIndex: maxBy(sorted, func(s Stats) float64 {
				return float64(s.MaxHIndex)
			}),
		},
	}
}

// ByCount returns the fields ordered by descending author count. Ties keep
// ResultSet order.
func (rs ResultSet) ByCount() []Field {
	out := make([]Field, len(rs.Fields))
	copy(out, rs.Fields)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stats.Count > out[j].Stats.Count
	})
	return out
}

// maxBy returns the first field holding the maximum key, or nil when fs is
// empty.
func maxBy(fs []Field, key func(Stats) float64) *Field {
	if len(fs) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(fs); i++ {
		if key(fs[i].Stats) > key(fs[best].Stats) {
			best = i
		}
	}
	f := fs[best]
	return &f
}
