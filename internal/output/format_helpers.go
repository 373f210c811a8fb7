package output

import (
	"math"

	"github.com/shopspring/decimal"

	money "github.com/rpgo/investment-simulator/pkg/decimal"
)

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "€"

// Placeholders for values a run can overflow into, e.g. a large return over a long horizon.
const (
	InfinitySymbol = "∞"
	NotANumber     = "n/a"
)

// nonFinite returns the placeholder for NaN and infinities.
func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return NotANumber, true
	case math.IsInf(f, 1):
		return InfinitySymbol, true
	case math.IsInf(f, -1):
		return "-" + InfinitySymbol, true
	}
	return "", false
}

// FormatCurrency renders whole currency units with thousands separators, e.g. "€1,234,568".
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string {
	if s, ok := nonFinite(amount); ok {
		return CurrencySymbol + s
	}
	return money.NewMoney(amount).Format(CurrencySymbol)
}

// FormatCurrencyCents renders an amount with cents, e.g. "€238.94".
func FormatCurrencyCents(amount float64) string {
	if s, ok := nonFinite(amount); ok {
		return CurrencySymbol + s
	}
	return money.NewMoney(amount).FormatCents(CurrencySymbol)
}

// FormatPercentage renders a value that is already in percent with one decimal, e.g. "8.1%".
func FormatPercentage(pct float64) string {
	if s, ok := nonFinite(pct); ok {
		return s + "%"
	}
	return decimal.NewFromFloat(pct).StringFixed(1) + "%"
}

// FormatRate renders a decimal rate (0.08) as a percentage ("8.0%").
func FormatRate(rate float64) string { return FormatPercentage(rate * 100) }

func intToString(i int) string { return decimal.NewFromInt(int64(i)).String() }

// floatToString is used for CSV cells, which keep plain "inf"/"nan" spellings.
func floatToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return money.NewMoney(f).Round().String()
}
