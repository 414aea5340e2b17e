package errors

import (
	"fmt"
	"strings"
)

// maxSuggestionDistance bounds how different a candidate may be and still
// be offered as "did you mean".
const maxSuggestionDistance = 3

// SuggestHeadword suggests the closest known headword for an unknown one.
// It returns "" when no candidate is close enough.
func SuggestHeadword(unknown string, headwords []string) string {
	best, ok := closest(unknown, headwords)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", best)
}

// SuggestAnnotationKey suggests a legal spelling for an invalid annotation key.
func SuggestAnnotationKey(sanitized string) string {
	if sanitized == "" || strings.Trim(sanitized, "_") == "" {
		return "Annotation keys may only contain letters, digits and '_'"
	}
	return fmt.Sprintf("Use '%s' (letters, digits and '_' only)", sanitized)
}

// closest returns the candidate with the smallest edit distance to unknown.
func closest(unknown string, candidates []string) (string, bool) {
	minDistance := maxSuggestionDistance + 1
	var bestMatch string

	for _, c := range candidates {
		if c == unknown {
			continue
		}
		dist := levenshteinDistance(unknown, c)
		if dist < minDistance {
			minDistance = dist
			bestMatch = c
		}
	}

	return bestMatch, bestMatch != ""
}

// levenshteinDistance computes the Levenshtein distance between two strings,
// rune-wise so accented headwords count one edit per letter.
func levenshteinDistance(a, b string) int {
	s1, s2 := []rune(a), []rune(b)
	if string(s1) == string(s2) {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	// Create distance matrix
	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	// Initialize first column and row
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	// Compute distances
	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
