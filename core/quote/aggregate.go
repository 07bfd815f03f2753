// Package quote combines line items, turnaround, delivery and tax into one
// PricingResult. It is the single place rounding to cents happens.
//
// Aggregate is a pure function of its Request: it reads no clock, keeps no
// state and performs no I/O, so concurrent calls never interfere.
package quote

import (
	"github.com/shopspring/decimal"

	"translation-quote/core/calendar"
	"translation-quote/core/determinism"
	"translation-quote/core/lineitem"
	"translation-quote/core/turnaround"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

// Request is every input of one quote computation.
type Request struct {
	Documents []types.DocumentInput `json:"documents"`
	Pricing   types.PricingConfig   `json:"pricing"`
	Tiers     types.TierSet         `json:"tiers"`

	// TierCode is the selected tier; empty selects the default tier
	TierCode string `json:"tier_code,omitempty"`

	Turnaround types.TurnaroundContext `json:"turnaround"`
	Delivery   types.DeliverySelection `json:"delivery"`
	Tax        types.TaxRegion         `json:"tax"`
}

// selectedTier returns the requested tier, or the default when none is named.
func (r Request) selectedTier() (types.TurnaroundTier, error) {
	if r.TierCode == "" {
		t, ok := r.Tiers.Default()
		if !ok {
			return types.TurnaroundTier{}, errors.InvalidArgument("tier set has no default tier")
		}
		return t, nil
	}
	t, ok := r.Tiers.Find(r.TierCode)
	if !ok {
		return types.TurnaroundTier{}, errors.InvalidArgument("unknown turnaround tier %q", r.TierCode)
	}
	return t, nil
}

func (r Request) validate() error {
	if len(r.Documents) == 0 {
		return errors.InvalidArgument("at least one document is required")
	}
	if r.Delivery.Fee.IsNegative() {
		return errors.InvalidArgument("delivery fee must be non-negative, got %s", r.Delivery.Fee)
	}
	if r.Delivery.TransitDays < 0 {
		return errors.InvalidArgument("delivery transit days must be non-negative, got %d", r.Delivery.TransitDays)
	}
	if r.Tax.TotalRate.IsNegative() {
		return errors.InvalidArgument("tax rate must be non-negative, got %s", r.Tax.TotalRate)
	}
	return nil
}

// Aggregate computes the quote for req.
//
// The selected tier must be eligible; an ineligible selection fails with
// INELIGIBLE_TURNAROUND_SELECTION and is never downgraded.
func Aggregate(req Request) (types.PricingResult, error) {
	if err := req.validate(); err != nil {
		return types.PricingResult{}, err
	}

	items, err := lineitem.ComputeAll(req.Documents, req.Pricing)
	if err != nil {
		return types.PricingResult{}, err
	}
	translation, certification, pages := lineitem.Totals(items)

	elig, err := turnaround.Evaluate(items, req.Tiers, req.Turnaround)
	if err != nil {
		return types.PricingResult{}, err
	}
	tier, err := req.selectedTier()
	if err != nil {
		return types.PricingResult{}, err
	}
	if err := turnaround.Require(elig, tier.Code); err != nil {
		return types.PricingResult{}, err
	}

	rushEligible := turnaround.RushEligibleSubtotal(items)
	fee, err := turnaround.Fee(tier, rushEligible, elig.SameDayAdditionalFee)
	if err != nil {
		return types.PricingResult{}, err
	}

	delivered, err := deliveryDate(tier, req, items, elig.EffectiveStartDate)
	if err != nil {
		return types.PricingResult{}, err
	}

	res := types.PricingResult{
		Currency:              req.Pricing.Currency,
		TranslationTotal:      determinism.Round2(translation),
		CertificationTotal:    determinism.Round2(certification),
		TurnaroundFee:         determinism.Round2(fee),
		DeliveryFee:           determinism.Round2(req.Delivery.Fee),
		TaxRate:               req.Tax.TotalRate,
		EstimatedDeliveryDate: delivered,
		TierCode:              tier.Code,
		TaxName:               req.Tax.DisplayName,
		DeliveryCodes:         req.Delivery.Codes(),
		BillablePageTotal:     pages,
		RushEligibleSubtotal:  determinism.Round2(rushEligible),
		LineItems:             items,
	}
	res.Subtotal = res.TranslationTotal.Add(res.CertificationTotal)
	taxable := res.TaxableAmount()
	res.TaxAmount = determinism.Round2(taxable.Mul(res.TaxRate))
	res.Total = determinism.Round2(taxable.Add(res.TaxAmount))
	return res, nil
}

// deliveryDate projects the tier's date and then adds physical transit.
func deliveryDate(tier types.TurnaroundTier, req Request, items []types.LineItem, start types.Date) (types.Date, error) {
	date, err := turnaround.ProjectDelivery(tier, req.Tiers, items, start, req.Turnaround.Holidays)
	if err != nil {
		return types.Date{}, err
	}
	return calendar.AddBusinessDays(date, req.Delivery.TransitDays, req.Turnaround.Holidays)
}

// Option is the preview of one tier: whether it can be selected and what it
// would cost and deliver if it were.
type Option struct {
	Code         string                 `json:"code"`
	Name         string                 `json:"name,omitempty"`
	IsDefault    bool                   `json:"is_default"`
	Available    bool                   `json:"available"`
	Reason       types.IneligibleReason `json:"reason,omitempty"`
	Fee          decimal.Decimal        `json:"fee"`
	DeliveryDate types.Date             `json:"delivery_date"`
}

// Options previews every tier for req in tier-set order. TierCode is ignored.
// Fees and dates are reported for locked tiers too so callers can show what
// the tier would have cost.
func Options(req Request) ([]Option, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	items, err := lineitem.ComputeAll(req.Documents, req.Pricing)
	if err != nil {
		return nil, err
	}
	elig, err := turnaround.Evaluate(items, req.Tiers, req.Turnaround)
	if err != nil {
		return nil, err
	}
	rushEligible := turnaround.RushEligibleSubtotal(items)

	out := make([]Option, 0, len(req.Tiers))
	for _, tier := range req.Tiers {
		state, _ := elig.For(tier.Code)
		fee, err := turnaround.Fee(tier, rushEligible, elig.SameDayAdditionalFee)
		if err != nil {
			return nil, err
		}
		date, err := deliveryDate(tier, req, items, elig.EffectiveStartDate)
		if err != nil {
			return nil, err
		}
		out = append(out, Option{
			Code:         tier.Code,
			Name:         tier.Name,
			IsDefault:    tier.IsDefault,
			Available:    state.Available,
			Reason:       state.Reason,
			Fee:          determinism.Round2(fee),
			DeliveryDate: date,
		})
	}
	return out, nil
}
