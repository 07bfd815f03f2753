package types

import "github.com/shopspring/decimal"

// TaxRow is one row of a tax-rate table, e.g. {"CA-ON", "HST", 0.13}
type TaxRow struct {
	RegionCode string          `json:"region_code"`
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"`
}

// TaxComponent is one stacked tax inside a region
type TaxComponent struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// TaxRegion is the resolved tax for one billing region
type TaxRegion struct {
	RegionCode  string          `json:"region_code"`
	Components  []TaxComponent  `json:"components"`
	TotalRate   decimal.Decimal `json:"total_rate"`
	DisplayName string          `json:"display_name"`
}
