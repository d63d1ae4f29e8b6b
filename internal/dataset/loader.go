// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads author records exported by the profile scraper.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pdiddy/research-fields/pkg/types"
)

var (
	// ErrInputNotFound reports that the authors file does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInputMalformed reports that the authors file is not a JSON array of
	// objects.
	ErrInputMalformed = errors.New("invalid JSON in input file")
)

var utf8BOM = []byte("\xef\xbb\xbf")

// LoadAuthors reads a JSON array of author objects from path.
func LoadAuthors(path string) ([]types.Author, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	authors, err := DecodeAuthors(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return authors, nil
}

// DecodeAuthors parses a JSON array of author objects. Individual fields are
// decoded leniently (see types.Author); only the document shape can fail.
func DecodeAuthors(r io.Reader) ([]types.Author, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading authors: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}
	if elems == nil {
		return nil, fmt.Errorf("%w: expected an array of author objects, got null", ErrInputMalformed)
	}

	authors := make([]types.Author, 0, len(elems))
	for i, e := range elems {
		if t := bytes.TrimSpace(e); len(t) == 0 || t[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInputMalformed, i)
		}
		var a types.Author
		if err := json.Unmarshal(e, &a); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInputMalformed, i, err)
		}
		authors = append(authors, a)
	}
	return authors, nil
}
