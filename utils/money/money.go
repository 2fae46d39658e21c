// Package money fixes the arithmetic conventions shared by the
// distribution and ownership engines. All engine math runs on
// decimal values; rounding and string formatting happen only at
// the system boundary.
package money

import (
	"github.com/shopspring/decimal"
)

// Epsilon is the global near-equality tolerance for invariant
// checks: 1e-4 of a currency unit.
var Epsilon = decimal.New(1, -4)

// AmountPlaces is the number of decimal places used when an amount
// leaves the system (CSV, UI).
const AmountPlaces = 2

// EqualWithin reports whether a and b differ by no more than Epsilon.
func EqualWithin(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// RoundShare rounds a percentage share to the registry's fixed
// precision (4 decimal places).
func RoundShare(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// FormatAmount renders an amount with exactly two decimal places
// for banking output.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}
