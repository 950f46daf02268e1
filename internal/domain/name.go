package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// CleanName trims surrounding whitespace and collapses inner runs to a single space.
func CleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeName returns the case-folded key used for uniqueness checks.
func NormalizeName(name string) string {
	return cases.Fold().String(CleanName(name))
}
