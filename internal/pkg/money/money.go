// Package money holds the 2-decimal quantization rules used for every payroll amount.
package money

import "github.com/shopspring/decimal"

const Places int32 = 2

// Round2 quantizes to 2 decimals, ties to even.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Places)
}

// Ceil2 quantizes to 2 decimals toward positive infinity.
func Ceil2(d decimal.Decimal) decimal.Decimal {
	return d.RoundCeil(Places)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// MinOf returns the smallest of the given values. It panics when called with none.
func MinOf(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	return decimal.Min(first, rest...)
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// HasAtMostPlaces reports whether d needs no more than places fractional digits.
func HasAtMostPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}
