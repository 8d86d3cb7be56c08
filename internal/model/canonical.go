package model

import "github.com/shopspring/decimal"

// Totals holds the named aggregates for the two reported months, keyed
// by short month label ("Sep 2025" / "Oct 2025"). TotalLabor,
// TotalPrimeCost, and NetIncome are not wired up from source data and
// stay zero.
type Totals struct {
	TotalIncome    map[string]decimal.Decimal `json:"totalIncome"`
	TotalCOGS      map[string]decimal.Decimal `json:"totalCOGS"`
	TotalLabor     map[string]decimal.Decimal `json:"totalLabor"`
	TotalPrimeCost map[string]decimal.Decimal `json:"totalPrimeCost"`
	GrossProfit    map[string]decimal.Decimal `json:"grossProfit"`
	NetIncome      map[string]decimal.Decimal `json:"netIncome"`
}

// CanonicalPL is the root aggregate: one tree per top-level section
// plus the cross-section totals. Labor is an always-empty placeholder
// pending a sourcing decision on that section.
type CanonicalPL struct {
	Income    *Account `json:"income"`
	COGS      *Account `json:"cogs"`
	Payroll   *Account `json:"payroll"`
	Operating *Account `json:"operating"`
	General   *Account `json:"general"`
	Labor     *Account `json:"labor"`
	Totals    Totals   `json:"totals"`
}

// Sections returns the five populated section roots in display order.
// Labor is excluded: it carries no data and no consumer searches it.
func (c *CanonicalPL) Sections() []*Account {
	return []*Account{c.Income, c.COGS, c.Payroll, c.Operating, c.General}
}
