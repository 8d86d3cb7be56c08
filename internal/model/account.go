package model

import "github.com/shopspring/decimal"

func init() {
	// Downstream consumers read figures as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// MonthlyValue is one account's figure for one calendar month.
// Value may be negative (discounts, comps).
type MonthlyValue struct {
	Value            decimal.Decimal `json:"value"`
	PercentOfRevenue decimal.Decimal `json:"percentOfRevenue"`
}

// Account is one line in the canonical chart of accounts.
type Account struct {
	// ID is the slug derived from the display name. Unique within a
	// section's tree in practice, not across sections.
	ID   string `json:"id"`
	Name string `json:"name"`
	// Code is the raw internal code ("400-000") kept for sorting and
	// matching; never the primary label.
	Code             string `json:"code,omitempty"`
	IndentationLevel int    `json:"indentationLevel"`
	// IsTotal marks synthetic subtotal/total rows.
	IsTotal bool `json:"isTotal"`
	// Months always holds every canonical short label, zero-filled
	// when the sources carry nothing for a month.
	Months   map[string]MonthlyValue `json:"months"`
	Children []*Account              `json:"children,omitempty"`
}

// Month returns the value for a short month label, or the zero value
// when the label is outside the canonical set.
func (a *Account) Month(label string) MonthlyValue {
	return a.Months[label]
}
