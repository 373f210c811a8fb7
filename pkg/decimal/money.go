package decimal

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount for display, rounded with decimal precision
// instead of float formatting.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64.
// The value must be finite; decimal.NewFromFloat panics on NaN and infinities.
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Round rounds the money amount to cents (half away from zero)
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Whole rounds the money amount to whole currency units
func (m Money) Whole() Money {
	return Money{m.Decimal.Round(0)}
}

// String returns the amount with two decimals and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders whole units with thousands separators after the currency symbol,
// e.g. "€1,234,568". Amounts beyond the int64 range keep their full digits.
func (m Money) Format(symbol string) string {
	return symbol + humanize.BigComma(m.Whole().BigInt())
}

// FormatCents renders the amount with cents and thousands separators, e.g. "€1,234.57".
func (m Money) FormatCents(symbol string) string {
	r := m.Round()
	whole := r.Truncate(0)
	cents := r.Sub(whole).Abs().StringFixed(2)[1:]
	sign := ""
	if r.IsNegative() && whole.IsZero() {
		sign = "-"
	}
	return symbol + sign + humanize.BigComma(whole.BigInt()) + cents
}
