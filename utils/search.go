package utils

import (
	"strings"

	"github.com/gosimple/unidecode"
)

// NormalizeSearch folds accents and case so "Túnez" matches "tunez" and
// "PÉREZ" matches "perez". Names in this system are Spanish, so plain
// LOWER(...) LIKE in SQL is not enough.
func NormalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}

// MatchesSearch reports whether haystack contains the query after both are
// accent-folded and lowercased. An empty query matches everything.
func MatchesSearch(haystack, query string) bool {
	q := NormalizeSearch(query)
	if q == "" {
		return true
	}
	return strings.Contains(NormalizeSearch(haystack), q)
}
