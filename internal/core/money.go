// Package core holds the expense record, its line codec and the queries
// run over an ordered list of expenses.
//
// Amounts are decimals so per-student sums do not drift the way float
// addition does.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are bounded so their encoded form stays a short, loadable line.
const (
	maxAmountIntegerDigits = 18
	maxAmountScale         = 10
)

// ParseAmount parses a signed decimal amount.
//
// Surrounding whitespace is ignored. Accepted forms are those of
// decimal.NewFromString ("12.50", "-3", "1e3") with at most 18 digits
// before the point and 10 after it.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	if !withinBounds(d) {
		return decimal.Zero, fmt.Errorf("%w %q: out of range", ErrInvalidAmount, s)
	}
	return d, nil
}

// withinBounds checks digits from the coefficient and exponent, without
// expanding the number.
func withinBounds(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxAmountScale {
		return false
	}
	digits := int64(len(d.Coefficient().Text(10)))
	if d.Sign() < 0 {
		digits--
	}
	return digits+exp <= maxAmountIntegerDigits
}

// ParseAmountOrZero is ParseAmount with parse failures coerced to zero.
// Stored lines with a broken amount still load.
func ParseAmountOrZero(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount returns the display form of an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// encodeAmount is the shortest exact form used in the ledger file.
func encodeAmount(d decimal.Decimal) string {
	return d.String()
}
