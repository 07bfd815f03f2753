package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known tier codes. Tier codes are open strings; these three carry
// built-in eligibility rules.
const (
	TierStandard = "standard"
	TierRush     = "rush"
	TierSameDay  = "same_day"
)

// FeeType selects how a tier's fee is computed
type FeeType string

const (
	FeePercentage FeeType = "percentage"
	FeeFlat       FeeType = "flat"
)

// DayRule projects a working-day count from a page count:
// BaseDays + ceil(max(0, pages-BasePages) / PagesPerExtraDay)
type DayRule struct {
	BaseDays         int             `json:"base_days"`
	BasePages        decimal.Decimal `json:"base_pages"`
	PagesPerExtraDay decimal.Decimal `json:"pages_per_extra_day"`
}

// TurnaroundTier is one selectable turnaround speed
type TurnaroundTier struct {
	Code      string          `json:"code"`
	Name      string          `json:"name,omitempty"`
	FeeType   FeeType         `json:"fee_type"`
	FeeValue  decimal.Decimal `json:"fee_value"`
	Days      DayRule         `json:"days"`
	IsRush    bool            `json:"is_rush"`
	IsDefault bool            `json:"is_default"`
}

// IsSameDay reports whether the tier delivers on the start date itself
func (t TurnaroundTier) IsSameDay() bool {
	return t.Code == TierSameDay
}

// TierSet is the ordered set of tiers offered by a regime
type TierSet []TurnaroundTier

// Find returns the tier with the given code
func (s TierSet) Find(code string) (TurnaroundTier, bool) {
	for _, t := range s {
		if t.Code == code {
			return t, true
		}
	}
	return TurnaroundTier{}, false
}

// Default returns the default tier
func (s TierSet) Default() (TurnaroundTier, bool) {
	for _, t := range s {
		if t.IsDefault {
			return t, true
		}
	}
	return TurnaroundTier{}, false
}

// SameDayRule is one row of the same-day eligibility table
type SameDayRule struct {
	SourceLanguage string          `json:"source_language"`
	TargetLanguage string          `json:"target_language"`
	DocumentType   string          `json:"document_type"`
	IntendedUse    string          `json:"intended_use"`
	AdditionalFee  decimal.Decimal `json:"additional_fee"`
	Active         bool            `json:"active"`
}

// TurnaroundContext is everything eligibility and date projection read
// besides the documents themselves. Now is supplied by the caller.
type TurnaroundContext struct {
	Now time.Time `json:"now"`

	// IntakeCutoff decides whether today counts as day zero
	IntakeCutoff  Cutoff `json:"intake_cutoff"`
	RushCutoff    Cutoff `json:"rush_cutoff"`
	SameDayCutoff Cutoff `json:"same_day_cutoff"`

	Holidays HolidaySet `json:"-"`

	// SameDayBlocks are dates on which same-day is suspended even though they
	// are business days
	SameDayBlocks HolidaySet `json:"-"`

	SourceLanguage string        `json:"source_language"`
	TargetLanguage string        `json:"target_language"`
	IntendedUse    string        `json:"intended_use"`
	SameDayRules   []SameDayRule `json:"same_day_rules,omitempty"`
}

// IneligibleReason explains why a tier cannot be selected
type IneligibleReason string

const (
	ReasonNone           IneligibleReason = ""
	ReasonAllNotarized   IneligibleReason = "all_documents_notarized"
	ReasonPastCutoff     IneligibleReason = "past_cutoff"
	ReasonNoSameDayRule  IneligibleReason = "no_same_day_match"
	ReasonNotBusinessDay IneligibleReason = "not_business_day"
	ReasonSameDayBlocked IneligibleReason = "same_day_blocked"
	ReasonNoDocuments    IneligibleReason = "no_documents"
)

// TierEligibility is the lock state of one tier
type TierEligibility struct {
	Code      string           `json:"code"`
	Available bool             `json:"available"`
	Reason    IneligibleReason `json:"reason,omitempty"`
}

// Eligibility is the lock state of every tier in a set, in set order
type Eligibility struct {
	Tiers []TierEligibility `json:"tiers"`

	// SameDayAdditionalFee is the surcharge resolved from the matched
	// same-day rows; zero when same-day did not match
	SameDayAdditionalFee decimal.Decimal `json:"same_day_additional_fee"`

	EffectiveStartDate Date `json:"effective_start_date"`
}

// For returns the eligibility of one tier
func (e Eligibility) For(code string) (TierEligibility, bool) {
	for _, t := range e.Tiers {
		if t.Code == code {
			return t, true
		}
	}
	return TierEligibility{}, false
}
