// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already canonical", "Machine Learning", "Machine Learning"},
		{"lower case", "machine learning", "Machine Learning"},
		{"upper case", "MACHINE LEARNING", "Machine Learning"},
		{"collapses internal whitespace", "machine   \t learning", "Machine Learning"},
		{"trims surrounding whitespace", "  machine learning \n", "Machine Learning"},
		{"strips trailing punctuation run", "  Machine Learning!!", "Machine Learning"},
		{"strips mixed terminators", "deep learning.;,?", "Deep Learning"},
		{"strips terminators followed by spaces", "robotics . ", "Robotics"},
		{"keeps inner punctuation", "hci. design", "Hci. Design"},
		{"keeps leading punctuation", ".net", ".Net"},
		{"acronyms are not preserved", "NLP", "Nlp"},
		{"hyphen starts a new word", "human-computer interaction", "Human-Computer Interaction"},
		{"digit starts a new word", "3d vision", "3D Vision"},
		{"apostrophe starts a new word", "o'reilly media", "O'Reilly Media"},
		{"non-terminator suffix kept", "databases:", "Databases:"},
		{"unicode letters", "ÉCONOMIE appliquée", "Économie Appliquée"},
		{"decomposed accents compose", "re\u0301seaux", "R\u00e9seaux"},
		{"lowered dotted capital composes", "a\u0130\u0301", "A\u00ed"},
		{"combining mark does not start a word", "a\u0332b", "A\u0332b"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"punctuation only", "...!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  Machine Learning!!",
		"machine   learning",
		"a. .",
		"AI",
		"ai.",
		"human-computer interaction",
		"3d vision ; ",
		"ÉCONOMIE appliquée",
		"o'reilly",
		"ǆungla",
		"  x  ,  y  ?  ",
		"a\u0130\u0301",
		"a\u0130\u0301b",
		"\u0130\u0301stanbul",
		"a\u0332b c\u0301d",
		"\u0301leading mark",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", in)
		assert.True(t, norm.NFC.IsNormalString(once), "Normalize(%q) is not NFC", in)
	}
}

func TestNormalizeEquivalentSpellings(t *testing.T) {
	assert.Equal(t, "Machine Learning", Normalize("  Machine Learning!!"))
	assert.Equal(t, Normalize("  Machine Learning!!"), Normalize("machine   learning"))
	assert.Equal(t, Normalize("AI"), Normalize("ai."))
}
