// Package types defines the value records shared across all quote layers.
// This package contains NO business logic beyond trivial accessors.
package types

// Currency represents a currency code
type Currency string

const (
	CurrencyCAD Currency = "CAD"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}
