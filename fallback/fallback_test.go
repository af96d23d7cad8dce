package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitContraction(t *testing.T) {
	tests := []struct {
		word   string
		stem   string
		suffix string
		ok     bool
	}{
		{"don't", "do", "n't", true},
		{"we'll", "we", "'ll", true},
		{"they're", "they", "'re", true},
		{"could've", "could", "'ve", true},
		{"i'm", "i", "'m", true},
		{"she'd", "she", "'d", true},
		{"ship's", "ship", "'s", true},
		// "n't" must win over the generic possessive.
		{"couldn't", "could", "n't", true},
		// No match without a non-empty stem.
		{"'s", "", "", false},
		{"n't", "", "", false},
		// No contraction suffix at all.
		{"ship", "", "", false},
		{"", "", "", false},
		// The token must be at the end of the word.
		{"don't-go", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			stem, suffix, ok := SplitContraction(tt.word)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestSplitHyphenated(t *testing.T) {
	tests := []struct {
		word  string
		parts []string
		ok    bool
	}{
		{"quarter-deck", []string{"quarter", "deck"}, true},
		{"man-of-war", []string{"man", "of", "war"}, true},
		// Empty parts from consecutive or boundary hyphens are dropped.
		{"quarter--deck", []string{"quarter", "deck"}, true},
		{"-quarter-deck-", []string{"quarter", "deck"}, true},
		// Fewer than two non-empty parts does not qualify.
		{"ship", nil, false},
		{"ship-", nil, false},
		{"-ship", nil, false},
		{"-", nil, false},
		{"--", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			parts, ok := SplitHyphenated(tt.word)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.parts, parts)
		})
	}
}
