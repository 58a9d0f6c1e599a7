package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol prefixes formatted amounts when none is configured.
const DefaultCurrencySymbol = "₹"

// FormatAmount renders amount with two decimals and the currency symbol.
// Example: 1234.5 with "₹" returns "₹1234.50"; -3 returns "-₹3.00".
func FormatAmount(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	if amount.IsNegative() {
		return "-" + symbol + amount.Abs().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}

// ParseAmount parses user input into a non-negative amount rounded to cents.
// Malformed input is an error, never coerced to zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}
