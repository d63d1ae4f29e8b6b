// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Mean is a rounded average. It always encodes with a decimal point, so a
// mean of 15 is written as 15.0.
type Mean float64

// MarshalJSON implements json.Marshaler.
func (m Mean) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(m), 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return []byte(s), nil
}

// MarshalJSON encodes the field as [label, stats].
func (f Field) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	if err := writeJSON(&buf, f.Label); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeJSON(&buf, f.Stats); err != nil {
		return nil, err
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a [label, stats] pair.
func (f *Field) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("field pair: expected 2 elements, got %d", len(pair))
	}
	var out Field
	if err := json.Unmarshal(pair[0], &out.Label); err != nil {
		return fmt.Errorf("field label: %w", err)
	}
	if err := json.Unmarshal(pair[1], &out.Stats); err != nil {
		return fmt.Errorf("field %q stats: %w", out.Label, err)
	}
	*f = out
	return nil
}

// MarshalJSON encodes the result set with research_fields_statistics as an
// object whose keys follow Fields order.
func (rs ResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"research_fields_statistics":{`)
	for i, f := range rs.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, f.Label); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, f.Stats); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"total_authors":`)
	buf.WriteString(strconv.Itoa(rs.TotalAuthors))
	buf.WriteString(`,"total_unique_fields":`)
	buf.WriteString(strconv.Itoa(rs.TotalUniqueFields))
	buf.WriteString(`,"summary":`)
	if err := writeJSON(&buf, rs.Summary); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a result set, keeping the key order of
// research_fields_statistics as the Fields order.
func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Fields            json.RawMessage `json:"research_fields_statistics"`
		TotalAuthors      int             `json:"total_authors"`
		TotalUniqueFields int             `json:"total_unique_fields"`
		Summary           Summary         `json:"summary"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields, err := decodeOrderedFields(raw.Fields)
	if err != nil {
		return err
	}

	*rs = ResultSet{
		Fields:            fields,
		TotalAuthors:      raw.TotalAuthors,
		TotalUniqueFields: raw.TotalUniqueFields,
		Summary:           raw.Summary,
	}
	return nil
}

func decodeOrderedFields(data json.RawMessage) ([]Field, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("research_fields_statistics: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("research_fields_statistics: expected object")
	}

	var out []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("research_fields_statistics: %w", err)
		}
		label, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("research_fields_statistics: expected field label, got %v", tok)
		}
		var st Stats
		if err := dec.Decode(&st); err != nil {
			return nil, fmt.Errorf("field %q stats: %w", label, err)
		}
		out = append(out, Field{Label: label, Stats: st})
	}
	return out, nil
}

// writeJSON appends the compact encoding of v without HTML escaping, so labels
// such as "Science & Technology" are written verbatim.
func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
