package model

import "github.com/shopspring/decimal"

// ComparisonRow is one account's September/October movement, derived at
// report-generation time. Not part of the canonical model.
type ComparisonRow struct {
	Account  string
	Sep      decimal.Decimal
	Oct      decimal.Decimal
	Delta    decimal.Decimal
	DeltaPct decimal.Decimal
	Code     string
}

// Metric is one headline figure on the report.
type Metric struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"` // "up" or "down"
}

// TableData is the rendered comparison table.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ReportData is the fixed contract consumed verbatim by the report
// panel. Changing its shape requires updating every consumer.
type ReportData struct {
	Title           string    `json:"title"`
	DateRange       string    `json:"dateRange"`
	Entity          string    `json:"entity"`
	DataSources     []string  `json:"dataSources"`
	Summary         []string  `json:"summary"`
	Metrics         []Metric  `json:"metrics"`
	TableData       TableData `json:"tableData"`
	Analysis        string    `json:"analysis"`
	Recommendations []string  `json:"recommendations"`
}
