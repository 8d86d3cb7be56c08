// Package source reads the two heterogeneously-shaped input documents
// and exposes uniform per-account, per-month lookups over them. The
// flat document is a list of accounts keyed by full month names; the
// nested document is a dictionary of sections keyed by short labels.
package source

import "errors"

// ErrMalformedDocument is returned when a source document is missing a
// required top-level key. Raised once at load time so the failure does
// not surface as a property access deep inside recursion.
var ErrMalformedDocument = errors.New("malformed source document")
