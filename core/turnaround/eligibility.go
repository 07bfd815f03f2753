package turnaround

import (
	"strings"

	"github.com/shopspring/decimal"

	"translation-quote/core/calendar"
	"translation-quote/core/determinism"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

func same(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SameDayMatch looks up every document type in the same-day table for the
// context's language pair and intended use. It matches only when every type
// has an active row; the surcharge is the largest fee among the matched rows.
func SameDayMatch(rules []types.SameDayRule, in types.TurnaroundContext, documentTypes []string) (bool, decimal.Decimal) {
	if len(documentTypes) == 0 {
		return false, decimal.Zero
	}
	fee := decimal.Zero
	for _, docType := range documentTypes {
		matched := false
		for _, r := range rules {
			if !r.Active {
				continue
			}
			if same(r.SourceLanguage, in.SourceLanguage) &&
				same(r.TargetLanguage, in.TargetLanguage) &&
				same(r.DocumentType, docType) &&
				same(r.IntendedUse, in.IntendedUse) {
				matched = true
				fee = determinism.MaxDecimal(fee, r.AdditionalFee)
			}
		}
		if !matched {
			return false, decimal.Zero
		}
	}
	return true, fee
}

// expeditedDocumentTypes returns the document types of the non-notarized
// items; notarized documents never ride an expedited tier.
func expeditedDocumentTypes(items []types.LineItem) []string {
	var out []string
	for _, it := range items {
		if !it.IsNotarized {
			out = append(out, it.DocumentType)
		}
	}
	return out
}

func allNotarized(items []types.LineItem) bool {
	for _, it := range items {
		if !it.IsNotarized {
			return false
		}
	}
	return true
}

// Evaluate reports, for every tier in order, whether it may be selected for
// these documents at in.Now. The engine only reports; callers enforce.
func Evaluate(items []types.LineItem, tiers types.TierSet, in types.TurnaroundContext) (types.Eligibility, error) {
	if err := ValidateTiers(tiers); err != nil {
		return types.Eligibility{}, err
	}
	start, err := calendar.ResolveEffectiveStartDate(in.Now, in.IntakeCutoff)
	if err != nil {
		return types.Eligibility{}, err
	}

	out := types.Eligibility{
		Tiers:                make([]types.TierEligibility, 0, len(tiers)),
		SameDayAdditionalFee: decimal.Zero,
		EffectiveStartDate:   start,
	}
	for _, tier := range tiers {
		reason, fee, err := gate(tier, items, in)
		if err != nil {
			return types.Eligibility{}, err
		}
		if tier.IsSameDay() && reason == types.ReasonNone {
			out.SameDayAdditionalFee = fee
		}
		out.Tiers = append(out.Tiers, types.TierEligibility{
			Code:      tier.Code,
			Available: reason == types.ReasonNone,
			Reason:    reason,
		})
	}
	return out, nil
}

// gate returns the first failing gate for tier, or ReasonNone.
func gate(tier types.TurnaroundTier, items []types.LineItem, in types.TurnaroundContext) (types.IneligibleReason, decimal.Decimal, error) {
	if !IsExpedited(tier) {
		return types.ReasonNone, decimal.Zero, nil
	}
	if len(items) == 0 {
		return types.ReasonNoDocuments, decimal.Zero, nil
	}
	if allNotarized(items) {
		return types.ReasonAllNotarized, decimal.Zero, nil
	}

	if !tier.IsSameDay() {
		open, err := calendar.IsBeforeCutoff(in.Now, in.RushCutoff, true)
		if err != nil {
			return types.ReasonNone, decimal.Zero, err
		}
		if !open {
			return types.ReasonPastCutoff, decimal.Zero, nil
		}
		return types.ReasonNone, decimal.Zero, nil
	}

	matched, fee := SameDayMatch(in.SameDayRules, in, expeditedDocumentTypes(items))
	if !matched {
		return types.ReasonNoSameDayRule, decimal.Zero, nil
	}
	today, err := calendar.LocalDate(in.Now, in.SameDayCutoff)
	if err != nil {
		return types.ReasonNone, decimal.Zero, err
	}
	if !calendar.IsBusinessDay(today, in.Holidays) {
		return types.ReasonNotBusinessDay, decimal.Zero, nil
	}
	// same-day delivers on the effective start, which must still be today
	start, err := calendar.ResolveEffectiveStartDate(in.Now, in.IntakeCutoff)
	if err != nil {
		return types.ReasonNone, decimal.Zero, err
	}
	if start != today {
		return types.ReasonPastCutoff, decimal.Zero, nil
	}
	if in.SameDayBlocks.Contains(today) {
		return types.ReasonSameDayBlocked, decimal.Zero, nil
	}
	open, err := calendar.IsBeforeCutoff(in.Now, in.SameDayCutoff, true)
	if err != nil {
		return types.ReasonNone, decimal.Zero, err
	}
	if !open {
		return types.ReasonPastCutoff, decimal.Zero, nil
	}
	return types.ReasonNone, fee, nil
}

// Require fails with INELIGIBLE_TURNAROUND_SELECTION unless code is
// available. The selection is never downgraded.
func Require(e types.Eligibility, code string) error {
	t, ok := e.For(code)
	if !ok {
		return errors.InvalidArgument("unknown turnaround tier %q", code)
	}
	if !t.Available {
		return errors.Ineligible(code, string(t.Reason))
	}
	return nil
}
