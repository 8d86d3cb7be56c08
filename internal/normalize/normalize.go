// Package normalize derives display names, internal codes, and stable
// slug identifiers from raw account labels. All functions are pure and
// total over strings.
package normalize

import (
	"regexp"
	"strings"
)

// codeRe matches an internal accounting code prefix like "400-000 ".
var codeRe = regexp.MustCompile(`^(\d{3}-\d{3})\s+`)

// idRe matches a maximal run of characters outside [a-z0-9].
var idRe = regexp.MustCompile(`[^a-z0-9]+`)

// AccountName strips the internal code prefix from a raw account label
// and trims surrounding whitespace. Labels without a code prefix are
// returned trimmed but otherwise unchanged.
// "400-000 Food Sales" -> "Food Sales"
func AccountName(raw string) string {
	return strings.TrimSpace(codeRe.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// AccountCode returns the internal code ("400-000") at the start of a
// raw account label, or "" when the label carries no code.
func AccountCode(raw string) string {
	m := codeRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ""
	}
	return m[1]
}

// ID derives the slug identifier for a display name: lowercase, with
// every run of non-alphanumeric characters collapsed to a single "-".
// A name with no alphanumeric characters yields "" — callers must not
// assume a non-empty id.
// "Food Sales" -> "food-sales"
func ID(name string) string {
	slug := idRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
