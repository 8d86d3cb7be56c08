// Package months defines the fixed reporting period: the ten calendar
// months covered by the two source documents, in canonical order.
package months

import "regexp"

// Short labels for the two months the comparison report works over.
const (
	Sep = "Sep 2025"
	Oct = "Oct 2025"
)

// ShortLabels is the canonical ordered month set. Every account in a
// canonical tree carries a value for each of these, in this order.
var ShortLabels = []string{
	"Jan 2025",
	"Feb 2025",
	"Mar 2025",
	"Apr 2025",
	"May 2025",
	"Jun 2025",
	"Jul 2025",
	"Aug 2025",
	"Sep 2025",
	"Oct 2025",
}

var fullNames = map[string]string{
	"Jan 2025": "January 2025",
	"Feb 2025": "February 2025",
	"Mar 2025": "March 2025",
	"Apr 2025": "April 2025",
	"May 2025": "May 2025",
	"Jun 2025": "June 2025",
	"Jul 2025": "July 2025",
	"Aug 2025": "August 2025",
	"Sep 2025": "September 2025",
	"Oct 2025": "October 2025",
}

var shortLabelRe = regexp.MustCompile(`^[A-Z][a-z]{2} \d{4}$`)

// FullName maps a short label to the full month name used by the flat
// source document ("Sep 2025" -> "September 2025"). Returns "" for
// labels outside the canonical set.
func FullName(short string) string {
	return fullNames[short]
}

// IsShortLabel reports whether s looks like a short month label
// ("Jan 2025" style). Used to tell month keys apart from account names
// when walking the nested source document.
func IsShortLabel(s string) bool {
	return shortLabelRe.MatchString(s)
}
