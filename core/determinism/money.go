// Package determinism provides the rounding and hashing primitives every
// quote computation goes through. Currency is always decimal.Decimal; float64
// never enters a currency field.
package determinism

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	ten     = decimal.NewFromInt(10)
)

// Round2 rounds to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CeilToUnit rounds d up to the next multiple of unit. unit must be positive.
func CeilToUnit(d, unit decimal.Decimal) decimal.Decimal {
	return d.Div(unit).Ceil().Mul(unit)
}

// CeilTenth rounds d up to the next multiple of 0.1.
func CeilTenth(d decimal.Decimal) decimal.Decimal {
	return d.Mul(ten).Ceil().Div(ten)
}

// Percent returns base * pct / 100.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// IsMultipleOf reports whether d is an exact multiple of unit.
func IsMultipleOf(d, unit decimal.Decimal) bool {
	if unit.IsZero() {
		return false
	}
	return d.Mod(unit).IsZero()
}

// MaxDecimal returns the larger of a and b.
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// FormatMoney renders an amount with two decimals and a currency code.
func FormatMoney(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + currency
}
