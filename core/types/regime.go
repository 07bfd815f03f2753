package types

// Regime is one consistent snapshot of everything a quote reads besides the
// order itself: rates, tiers, cutoffs, calendars, tax rows and delivery
// options. Callers fetch it once per computation.
type Regime struct {
	// ID names the regime (e.g. "ca-2026")
	ID string `json:"id"`

	Pricing PricingConfig `json:"pricing"`
	Tiers   TierSet       `json:"tiers"`

	IntakeCutoff  Cutoff `json:"intake_cutoff"`
	RushCutoff    Cutoff `json:"rush_cutoff"`
	SameDayCutoff Cutoff `json:"same_day_cutoff"`

	Holidays      []Holiday `json:"holidays,omitempty"`
	SameDayBlocks []Holiday `json:"same_day_blocks,omitempty"`

	SameDayRules    []SameDayRule    `json:"same_day_rules,omitempty"`
	TaxRows         []TaxRow         `json:"tax_rows"`
	DeliveryOptions []DeliveryOption `json:"delivery_options,omitempty"`
}
