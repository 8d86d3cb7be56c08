package report

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders dollar amounts with English-locale digit grouping.
var printer = message.NewPrinter(language.English)

// Currency formats a figure as US dollars: "$12,345.67", negatives as
// "-$50.00".
func Currency(d decimal.Decimal) string {
	f := d.InexactFloat64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", math.Abs(f))
	}
	return printer.Sprintf("$%.2f", f)
}

// SignedCurrency formats a delta with an explicit sign: "+$200.00".
func SignedCurrency(d decimal.Decimal) string {
	if d.IsNegative() {
		return Currency(d)
	}
	return "+" + Currency(d)
}

// Percent formats a percentage with one decimal and an explicit sign:
// "+12.3%", "-4.0%".
func Percent(d decimal.Decimal) string {
	s := d.StringFixed(1) + "%"
	if !d.IsNegative() {
		return "+" + s
	}
	return s
}
