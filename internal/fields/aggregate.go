// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"sort"
	"strconv"

	"github.com/pdiddy/research-fields/pkg/types"
)

// Aggregate groups authors by normalized research field and computes the
// statistics of every field that has at least one author.
//
// An author joins a field at most once, however many of their interests
// normalize to it. Fields are returned in first-seen order: the order in
// which their label first appears while scanning authors and their interests
// in input order.
func Aggregate(authors []types.Author) []Field {
	index := make(map[string][]int)
	var order []string

	for i, a := range authors {
		seen := make(map[string]bool, len(a.Interests))
		for _, raw := range a.Interests {
			label := Normalize(raw)
			if label == "" || seen[label] {
				continue
			}
			seen[label] = true

			if _, ok := index[label]; !ok {
				order = append(order, label)
			}
			index[label] = append(index[label], i)
		}
	}

	out := make([]Field, 0, len(order))
	for _, label := range order {
		out = append(out, Field{
			Label: label,
			Stats: computeStats(authors, index[label]),
		})
	}
	return out
}

// computeStats builds Stats for the authors at the given positions.
// members must not be empty.
func computeStats(authors []types.Author, members []int) Stats {
	first := authors[members[0]]
	st := Stats{
		Count:       len(members),
		MaxHIndex:   first.HIndex,
		MinHIndex:   first.HIndex,
		MaxI10Index: first.I10Index,
		MinI10Index: first.I10Index,
		Authors:     make([]AuthorSummary, 0, len(members)),
	}

	for _, i := range members {
		a := authors[i]
		st.TotalHIndex += a.HIndex
		st.TotalI10Index += a.I10Index
		st.MaxHIndex = max(st.MaxHIndex, a.HIndex)
		st.MinHIndex = min(st.MinHIndex, a.HIndex)
		st.MaxI10Index = max(st.MaxI10Index, a.I10Index)
		st.MinI10Index = min(st.MinI10Index, a.I10Index)
		st.Authors = append(st.Authors, AuthorSummary{
			Name:        a.Name,
			Affiliation: a.Affiliation,
			HIndex:      a.HIndex,
			I10Index:    a.I10Index,
		})
	}

	n := float64(st.Count)
	st.AverageHIndex = round2(float64(st.TotalHIndex) / n)
	st.AverageI10Index = round2(float64(st.TotalI10Index) / n)

	sort.SliceStable(st.Authors, func(i, j int) bool {
		return st.Authors[i].HIndex > st.Authors[j].HIndex
	})
	return st
}

// round2 rounds to 2 decimal places using the exact binary value of v and
// round-half-to-even on true ties.
func round2(v float64) Mean {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return Mean(v)
	}
	return Mean(r)
}
