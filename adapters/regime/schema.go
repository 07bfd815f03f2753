// Package regime loads pricing regimes from HCL files.
//
// A regime file holds one regime block with everything a quote reads besides
// the order: rates, complexity multipliers, cutoffs, tiers, holidays, the
// same-day table, tax rows and delivery options. Amounts may be written as
// numbers or quoted strings; quoted strings are parsed as exact decimals.
package regime

import (
	"github.com/hashicorp/hcl/v2"
)

type fileSchema struct {
	Regime regimeBlock `hcl:"regime,block"`
}

type regimeBlock struct {
	ID string `hcl:"id,label"`

	Currency        string         `hcl:"currency"`
	BaseRatePerPage hcl.Expression `hcl:"base_rate_per_page"`
	WordsPerPage    hcl.Expression `hcl:"words_per_page"`
	RoundingUnit    hcl.Expression `hcl:"rounding_unit"`
	Complexity      hcl.Expression `hcl:"complexity"`

	Cutoffs       cutoffsBlock    `hcl:"cutoffs,block"`
	Tiers         []tierBlock     `hcl:"tier,block"`
	Holidays      []holidayBlock  `hcl:"holiday,block"`
	SameDayBlocks []holidayBlock  `hcl:"same_day_block,block"`
	SameDay       []sameDayBlock  `hcl:"same_day,block"`
	Taxes         []taxBlock      `hcl:"tax,block"`
	Delivery      []deliveryBlock `hcl:"delivery,block"`
}

type cutoffsBlock struct {
	TimeZone string `hcl:"time_zone"`
	Intake   string `hcl:"intake"`
	Rush     string `hcl:"rush"`
	SameDay  string `hcl:"same_day"`
}

type tierBlock struct {
	Code             string         `hcl:"code,label"`
	Name             string         `hcl:"name,optional"`
	FeeType          string         `hcl:"fee_type"`
	FeeValue         hcl.Expression `hcl:"fee_value"`
	BaseDays         int            `hcl:"base_days,optional"`
	BasePages        hcl.Expression `hcl:"base_pages,optional"`
	PagesPerExtraDay hcl.Expression `hcl:"pages_per_extra_day,optional"`
	Rush             bool           `hcl:"rush,optional"`
	Default          bool           `hcl:"default,optional"`
}

type holidayBlock struct {
	Date   string `hcl:"date,label"`
	Region string `hcl:"region,optional"`
	Name   string `hcl:"name,optional"`
}

type sameDayBlock struct {
	SourceLanguage string         `hcl:"source_language,label"`
	TargetLanguage string         `hcl:"target_language,label"`
	DocumentType   string         `hcl:"document_type,label"`
	IntendedUse    string         `hcl:"intended_use,label"`
	AdditionalFee  hcl.Expression `hcl:"additional_fee,optional"`
	Active         *bool          `hcl:"active,optional"`
}

type taxBlock struct {
	Region string         `hcl:"region,label"`
	Name   string         `hcl:"name,label"`
	Rate   hcl.Expression `hcl:"rate"`
}

type deliveryBlock struct {
	Code           string         `hcl:"code,label"`
	Name           string         `hcl:"name,optional"`
	Kind           string         `hcl:"kind"`
	Fee            hcl.Expression `hcl:"fee,optional"`
	EstimatedDays  int            `hcl:"estimated_days,optional"`
	AlwaysSelected bool           `hcl:"always_selected,optional"`
}
