package engine

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity computes a normalized similarity score between two strings.
// Returns a value between 0.0 (completely different) and 1.0 (identical).
// Formula: 1.0 - (levenshteinDistance(a, b) / max(len(a), len(b)))
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}
