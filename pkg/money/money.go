// Package money holds the cent arithmetic the settlement engine is built on.
//
// Decimal amounts exist only at the API boundary; everything internal is
// integer cents so repeated computation can never drift. Decimal-to-cent
// conversion rounds half-up and that rule is fixed: two runs over the same
// records must produce identical cents.
package money

import (
	"fmt"
	"math"
)

// ToCents converts a decimal amount to integer cents, rounding half-up.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts integer cents back to a decimal amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// RoundDiv divides cents by n, rounding half-up. Used for the informational
// per-member figure; allocation proper never divides this way.
func RoundDiv(cents int64, n int) int64 {
	if n <= 0 {
		return cents
	}
	return int64(math.Round(float64(cents) / float64(n)))
}

// Format renders cents with exactly two decimal places, e.g. 5001 -> "50.01".
func Format(cents int64) string {
	return fmt.Sprintf("%.2f", FromCents(cents))
}
