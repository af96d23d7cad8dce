// Package fallback derives alternate lookup candidates for words that have
// no direct corpus entry.
//
// The resolvers are pure string functions; they never touch storage. The
// lookup engine applies them in a fixed order: contraction/possessive
// stripping first, hyphen decomposition second.
package fallback

import "strings"

// contractionSuffixes lists the recognized contraction and possessive
// endings. Longer tokens come before shorter ones so "n't" wins over a
// hypothetical trailing "'t"; the first matching token is used.
var contractionSuffixes = []string{"n't", "'ll", "'re", "'ve", "'m", "'d", "'s"}

// SplitContraction strips a trailing contraction or possessive token from
// word. It returns the stem, the matched token and true on a match. A match
// requires a non-empty stem; "'s" alone does not split.
func SplitContraction(word string) (stem, suffix string, ok bool) {
	for _, token := range contractionSuffixes {
		if strings.HasSuffix(word, token) && len(word) > len(token) {
			return word[:len(word)-len(token)], token, true
		}
	}
	return "", "", false
}

// SplitHyphenated splits a hyphenated compound into its non-empty parts.
// Consecutive or boundary hyphens produce empty parts, which are dropped.
// It returns false unless at least two non-empty parts remain.
func SplitHyphenated(word string) ([]string, bool) {
	if !strings.Contains(word, "-") {
		return nil, false
	}
	var parts []string
	for _, p := range strings.Split(word, "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return nil, false
	}
	return parts, true
}
