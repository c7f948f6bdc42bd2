// Package money formats decimal amounts for display.
package money

import "github.com/shopspring/decimal"

// DefaultPrefix is the currency marker prepended to formatted prices.
const DefaultPrefix = "€ "

// Formatter renders an amount as display text.
type Formatter func(decimal.Decimal) string

// WithPrefix returns a Formatter printing two decimals after prefix.
func WithPrefix(prefix string) Formatter {
	return func(d decimal.Decimal) string {
		return prefix + d.StringFixed(2)
	}
}

// Format renders d with the default prefix, e.g. "€ 5.00".
func Format(d decimal.Decimal) string {
	return DefaultPrefix + d.StringFixed(2)
}
