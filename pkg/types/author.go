// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MissingValue stands in for an absent author name or affiliation.
const MissingValue = "N/A"

// Author is one scholar profile as exported by the profile scraper. Records are
// self-reported and noisy: every field may be absent, metrics may arrive as
// numeric strings, and interests may repeat under different spellings.
type Author struct {
	// Name is the profile display name ("N/A" when absent).
	Name string `json:"profile_name" yaml:"profile_name"`

	// Affiliation is the free-text affiliation line ("N/A" when absent).
	Affiliation string `json:"profile_affiliations" yaml:"profile_affiliations"`

	// Interests lists the raw research interest strings in profile order.
	Interests []string `json:"profile_interests" yaml:"profile_interests"`

	// HIndex is the author's h-index (0 when absent or unparseable).
	HIndex int `json:"hindex" yaml:"hindex"`

	// I10Index is the number of publications with at least 10 citations
	// (0 when absent or unparseable).
	I10Index int `json:"i10index" yaml:"i10index"`
}

// UnmarshalJSON decodes an author object leniently. Missing or malformed
// values fall back to defaults instead of failing the whole record.
func (a *Author) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Author{
		Name:        stringOr(raw["profile_name"], MissingValue),
		Affiliation: stringOr(raw["profile_affiliations"], MissingValue),
		Interests:   stringList(raw["profile_interests"]),
		HIndex:      coerceInt(raw["hindex"]),
		I10Index:    coerceInt(raw["i10index"]),
	}
	return nil
}

func stringOr(msg json.RawMessage, fallback string) string {
	if len(msg) == 0 || string(msg) == "null" {
		return fallback
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return fallback
	}
	return s
}

// stringList keeps the string elements of a JSON array. Anything that is not
// an array yields no interests.
func stringList(msg json.RawMessage) []string {
	if len(msg) == 0 {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(msg, &elems); err != nil {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		var s string
		if string(e) == "null" {
			continue
		}
		if err := json.Unmarshal(e, &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

// coerceInt accepts JSON numbers and numeric strings. Fractions are truncated
// toward zero. Anything else, including values outside [0, MaxInt32], is 0.
func coerceInt(msg json.RawMessage) int {
	if len(msg) == 0 {
		return 0
	}

	if msg[0] == '"' {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return 0
		}
		return numberToInt(strings.TrimSpace(s), false)
	}

	var num json.Number
	if err := json.Unmarshal(msg, &num); err != nil {
		return 0
	}
	return numberToInt(string(num), true)
}

func numberToInt(s string, allowFraction bool) int {
	if n, err := strconv.Atoi(s); err == nil {
		return inMetricRange(float64(n))
	}
	if !allowFraction {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return inMetricRange(math.Trunc(f))
}

// inMetricRange returns v as an int when it is a valid metric value.
// Per-field sums of such values cannot overflow.
func inMetricRange(v float64) int {
	if v < 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}
