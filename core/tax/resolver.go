// Package tax resolves a billing region to its stacked tax components.
package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

// componentSeparator joins component names into a display name.
const componentSeparator = " + "

// NormalizeRegion upper-cases and trims a region code and strips a
// country prefix: "ca-ab", "CA-AB" and "CA_AB" all become "AB".
func NormalizeRegion(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if i := strings.LastIndexAny(code, "-_"); i >= 0 {
		code = code[i+1:]
	}
	return code
}

// Resolve groups every row whose normalized region matches regionCode,
// summing rates and joining names in table order. No matching row is a
// REGION_NOT_FOUND error; the engine never substitutes a fallback rate.
func Resolve(regionCode string, rows []types.TaxRow) (types.TaxRegion, error) {
	want := NormalizeRegion(regionCode)
	if want == "" {
		return types.TaxRegion{}, errors.InvalidArgument("region code is required")
	}

	region := types.TaxRegion{RegionCode: want, TotalRate: decimal.Zero}
	names := make([]string, 0, 2)
	for i, row := range rows {
		if NormalizeRegion(row.RegionCode) != want {
			continue
		}
		if row.Rate.IsNegative() {
			return types.TaxRegion{}, errors.InvalidArgument("tax rate for %s row %d must be non-negative, got %s", want, i, row.Rate)
		}
		region.Components = append(region.Components, types.TaxComponent{Name: row.Name, Rate: row.Rate})
		region.TotalRate = region.TotalRate.Add(row.Rate)
		names = append(names, row.Name)
	}
	if len(region.Components) == 0 {
		return types.TaxRegion{}, errors.RegionNotFound(want)
	}
	region.DisplayName = strings.Join(names, componentSeparator)
	return region, nil
}

// Regions lists the distinct normalized region codes in table order.
func Regions(rows []types.TaxRow) []string {
	seen := make(map[string]bool, len(rows))
	var out []string
	for _, row := range rows {
		code := NormalizeRegion(row.RegionCode)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// Group resolves every region present in rows.
func Group(rows []types.TaxRow) (map[string]types.TaxRegion, error) {
	out := make(map[string]types.TaxRegion)
	for _, code := range Regions(rows) {
		region, err := Resolve(code, rows)
		if err != nil {
			return nil, err
		}
		out[code] = region
	}
	return out, nil
}

// Label renders a region as e.g. "GST + PST (12%)".
func Label(r types.TaxRegion) string {
	pct := r.TotalRate.Mul(decimal.NewFromInt(100))
	return r.DisplayName + " (" + pct.String() + "%)"
}
