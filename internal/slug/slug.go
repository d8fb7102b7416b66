// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	invalidRun = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Make lowercases name, collapses every run of characters outside [a-z0-9]
// into a single hyphen and strips leading and trailing hyphens.
func Make(name string) string {
	s := strings.ToLower(name)
	s = invalidRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already in the form Make produces.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}
