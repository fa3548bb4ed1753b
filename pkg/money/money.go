// Package money holds the rounding and display helpers shared by totals,
// bills and reports.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// FromFloat converts a float to a decimal, mapping NaN and ±Inf to zero.
func FromFloat(x float64) decimal.Decimal {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(x)
}

// Round2 rounds x half away from zero to 2 decimal places.
func Round2(x float64) float64 {
	return FromFloat(x).Round(2).InexactFloat64()
}

// Round2Dec rounds d to 2 decimal places and returns it as a float.
func Round2Dec(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Format prints x in its shortest form ("1.5", "60", "12.25").
func Format(x float64) string {
	return FromFloat(x).String()
}

// Format2 prints x with exactly two decimals ("60.00").
func Format2(x float64) string {
	return FromFloat(x).StringFixed(2)
}

// Sanitize coerces non-finite input to zero.
func Sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
