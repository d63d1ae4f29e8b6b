// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// terminators are stripped from the end of a label, in any number and order.
const terminators = ".,;!?"

// Normalize canonicalizes a raw research interest into a field label.
//
// Whitespace runs collapse to a single space, the ends are trimmed, any
// trailing run of ". , ; ! ?" is removed, and the result is title-cased.
// Title-casing is deliberately naive: acronyms are not preserved ("NLP"
// becomes "Nlp") and every letter that follows a non-letter starts a new word
// ("machine-learning" becomes "Machine-Learning"). An empty result means the
// interest carries no usable field.
//
// Normalize is idempotent.
func Normalize(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(terminators, r)
	})
	if s == "" {
		return ""
	}
	// Case mapping can turn a letter into one that composes with the mark
	// after it ("İ\u0301" lowers to "i\u0301"), so compose again.
	return norm.NFC.String(titleCase(s))
}

// titleCase upper-cases the first cased letter of every word and lower-cases
// the rest. A word starts wherever the previous rune is not a cased letter.
// Combining marks belong to the letter before them and never start a word,
// so a label cases the same whether its accents are composed or not.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevCased := false
	for _, r := range s {
		if unicode.Is(unicode.M, r) {
			b.WriteRune(r)
			continue
		}
		cased := unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
		switch {
		case !cased:
			b.WriteRune(r)
		case prevCased:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToTitle(r))
		}
		prevCased = cased
	}
	return b.String()
}
