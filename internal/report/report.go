// Package report derives the September/October comparison report from
// the canonical P&L.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/canonpl-dev/canonpl/internal/canonical"
	"github.com/canonpl-dev/canonpl/internal/model"
	"github.com/canonpl-dev/canonpl/internal/months"
)

var hundred = decimal.NewFromInt(100)

// Config carries the report's display labels.
type Config struct {
	Title       string
	DateRange   string
	Entity      string
	DataSources []string
}

// Generator produces comparison reports from a canonical P&L service.
// It always derives from the canonical pipeline — never from
// caller-supplied files — so the report reflects the single source of
// truth regardless of what a user nominally uploaded.
type Generator struct {
	canon *canonical.Service
	cfg   Config
}

// NewGenerator creates a report generator. Empty Config fields fall
// back to defaults.
func NewGenerator(canon *canonical.Service, cfg Config) *Generator {
	if cfg.Title == "" {
		cfg.Title = "P&L Comparison Report"
	}
	if cfg.DateRange == "" {
		cfg.DateRange = "September 2025 vs October 2025"
	}
	if len(cfg.DataSources) == 0 {
		cfg.DataSources = []string{
			"September P&L (flat export)",
			"October P&L (hierarchical export)",
		}
	}
	return &Generator{canon: canon, cfg: cfg}
}

// aggregate is an opportunistically captured named row, kept as a
// fallback in case the canonical totals are themselves zero.
type aggregate struct {
	sep, oct decimal.Decimal
	ok       bool
}

// Generate builds the comparison report. Missing or partial data never
// fails generation; every derivation degrades to zero.
func (g *Generator) Generate(ctx context.Context) (*model.ReportData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pl := g.canon.CanonicalPL()

	var rows []model.ComparisonRow
	var fbIncome, fbGross, fbNet aggregate
	for _, root := range pl.Sections() {
		for _, acct := range canonical.Flatten(root) {
			sep := acct.Month(months.Sep).Value
			oct := acct.Month(months.Oct).Value

			switch strings.ToLower(acct.Name) {
			case "income", "total income":
				if !fbIncome.ok {
					fbIncome = aggregate{sep, oct, true}
				}
			case "gross profit":
				if !fbGross.ok {
					fbGross = aggregate{sep, oct, true}
				}
			case "net income", "net operating income":
				if !fbNet.ok {
					fbNet = aggregate{sep, oct, true}
				}
			}

			if sep.IsZero() && oct.IsZero() {
				continue
			}
			delta := oct.Sub(sep)
			rows = append(rows, model.ComparisonRow{
				Account:  acct.Name,
				Sep:      sep,
				Oct:      oct,
				Delta:    delta,
				DeltaPct: deltaPct(sep, oct),
				Code:     acct.Code,
			})
		}
	}

	sortRows(rows)

	revSep, revOct := pickAggregate(pl.Totals.TotalIncome, fbIncome)
	grossSep, grossOct := pickAggregate(pl.Totals.GrossProfit, fbGross)
	netSep, netOct := pickAggregate(pl.Totals.NetIncome, fbNet)

	revDelta := revOct.Sub(revSep)
	netDelta := netOct.Sub(netSep)
	movers := topMovers(rows, 3)

	summary := []string{
		fmt.Sprintf("Total revenue moved from %s in September to %s in October (%s, %s).",
			Currency(revSep), Currency(revOct), SignedCurrency(revDelta), Percent(deltaPct(revSep, revOct))),
	}
	if !netDelta.IsZero() {
		summary = append(summary, fmt.Sprintf("Net income changed by %s month over month (%s).",
			SignedCurrency(netDelta), Percent(deltaPct(netSep, netOct))))
	}
	for _, m := range movers {
		summary = append(summary, fmt.Sprintf("%s moved %s month over month (%s).",
			m.Account, SignedCurrency(m.Delta), Percent(m.DeltaPct)))
	}

	table := model.TableData{
		Headers: []string{"Account", "Sep 2025", "Oct 2025", "Change ($)", "Change (%)"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Account,
			Currency(r.Sep),
			Currency(r.Oct),
			SignedCurrency(r.Delta),
			Percent(r.DeltaPct),
		})
	}

	return &model.ReportData{
		Title:       g.cfg.Title,
		DateRange:   g.cfg.DateRange,
		Entity:      g.cfg.Entity,
		DataSources: g.cfg.DataSources,
		Summary:     summary,
		Metrics: []model.Metric{
			metric("Total Revenue", revOct, revDelta, deltaPct(revSep, revOct)),
			metric("Gross Profit", grossOct, grossOct.Sub(grossSep), deltaPct(grossSep, grossOct)),
			metric("Net Income", netOct, netDelta, deltaPct(netSep, netOct)),
		},
		TableData:       table,
		Analysis:        g.analysis(revSep, revOct, movers),
		Recommendations: recommendations,
	}, nil
}

// sortRows orders code-bearing row pairs by code and every other pair
// by account name. The mixed comparator can interleave code and
// non-code rows inconsistently; the rendered table order is part of
// the consumer contract, so the comparator stays as-is.
func sortRows(rows []model.ComparisonRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Code != "" && rows[j].Code != "" {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].Account < rows[j].Account
	})
}

// deltaPct computes the month-over-month percent change, signalling
// "appeared from nothing" as a +100% move instead of dividing by zero.
func deltaPct(sep, oct decimal.Decimal) decimal.Decimal {
	if !sep.IsZero() {
		return oct.Sub(sep).Div(sep).Mul(hundred)
	}
	if !oct.IsZero() {
		return hundred
	}
	return decimal.Zero
}

// pickAggregate prefers the canonical totals whenever either month is
// non-zero, degrading to the opportunistically captured row.
func pickAggregate(totals map[string]decimal.Decimal, fb aggregate) (decimal.Decimal, decimal.Decimal) {
	sep, oct := totals[months.Sep], totals[months.Oct]
	if sep.IsZero() && oct.IsZero() && fb.ok {
		return fb.sep, fb.oct
	}
	return sep, oct
}

// topMovers ranks rows by absolute delta, excluding aggregate-style
// rows, and returns the top n.
func topMovers(rows []model.ComparisonRow, n int) []model.ComparisonRow {
	var movers []model.ComparisonRow
	for _, r := range rows {
		lower := strings.ToLower(r.Account)
		if strings.Contains(lower, "total") ||
			strings.Contains(lower, "profit") ||
			strings.Contains(lower, "income") {
			continue
		}
		movers = append(movers, r)
	}
	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].Delta.Abs().GreaterThan(movers[j].Delta.Abs())
	})
	if len(movers) > n {
		movers = movers[:n]
	}
	return movers
}

func metric(label string, value, delta, pct decimal.Decimal) model.Metric {
	trend := "up"
	if delta.IsNegative() {
		trend = "down"
	}
	return model.Metric{
		Label:  label,
		Value:  Currency(value),
		Change: Percent(pct),
		Trend:  trend,
	}
}

func (g *Generator) analysis(revSep, revOct decimal.Decimal, movers []model.ComparisonRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "October revenue of %s compares against %s in September.", Currency(revOct), Currency(revSep))
	if len(movers) > 0 {
		names := make([]string, len(movers))
		for i, m := range movers {
			names[i] = m.Account
		}
		fmt.Fprintf(&b, " The largest account-level movements were %s; these drive most of the month-over-month change and are the first place to look when reviewing this statement.",
			strings.Join(names, ", "))
	}
	return b.String()
}

var recommendations = []string{
	"Review the largest account-level movers with the operating team before releasing this P&L.",
	"Confirm October payroll and direct operating figures once those sections appear in the hierarchical export.",
	"Investigate any account whose percent of revenue shifted by more than two points between months.",
}
