// Package textsearch matches free-text list filters without regard to case.
package textsearch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the trimmed, case-folded form of value.
func Fold(value string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(value))
}

// Match reports whether any field contains query. A blank query matches
// everything.
func Match(query string, fields ...string) bool {
	needle := Fold(query)
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(Fold(field), needle) {
			return true
		}
	}
	return false
}
