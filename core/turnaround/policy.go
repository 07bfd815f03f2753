// Package turnaround decides which turnaround tiers are selectable, what each
// costs and when it delivers. Tiers are independent options, not a workflow:
// every gate is evaluated on its own and the caller enforces the choice.
package turnaround

import (
	"github.com/shopspring/decimal"

	"translation-quote/core/calendar"
	"translation-quote/core/determinism"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

// IsRush reports whether a tier follows the rush rules. The well-known rush
// code always does, whatever its flag says.
func IsRush(t types.TurnaroundTier) bool {
	return t.IsRush || t.Code == types.TierRush
}

// IsExpedited reports whether notarized documents are excluded from the tier.
func IsExpedited(t types.TurnaroundTier) bool {
	return IsRush(t) || t.IsSameDay()
}

// ValidateTiers checks a tier set: unique codes, exactly one default that is
// not expedited, known fee types, non-negative values, and a positive
// pages-per-extra-day divisor for every tier that counts days.
func ValidateTiers(tiers types.TierSet) error {
	if len(tiers) == 0 {
		return errors.InvalidArgument("tier set is empty")
	}
	seen := make(map[string]bool, len(tiers))
	defaults := 0
	for _, t := range tiers {
		if t.Code == "" {
			return errors.InvalidArgument("tier code is required")
		}
		if seen[t.Code] {
			return errors.InvalidArgument("duplicate tier code %q", t.Code)
		}
		seen[t.Code] = true

		if t.IsDefault {
			defaults++
			if IsExpedited(t) {
				return errors.InvalidArgument("default tier %q cannot be expedited", t.Code)
			}
		}
		switch t.FeeType {
		case types.FeePercentage, types.FeeFlat:
		default:
			return errors.InvalidArgument("tier %q has unknown fee type %q", t.Code, t.FeeType)
		}
		if t.FeeValue.IsNegative() {
			return errors.InvalidArgument("tier %q fee value must be non-negative, got %s", t.Code, t.FeeValue)
		}
		if t.IsSameDay() {
			continue
		}
		if t.Days.BaseDays < 0 || t.Days.BasePages.IsNegative() {
			return errors.InvalidArgument("tier %q day rule must be non-negative", t.Code)
		}
		if t.Days.BaseDays > calendar.MaxBusinessDays {
			return errors.InvalidArgument("tier %q base days %d exceed the maximum of %d", t.Code, t.Days.BaseDays, calendar.MaxBusinessDays)
		}
		if !t.Days.PagesPerExtraDay.IsPositive() {
			return errors.InvalidArgument("tier %q pages per extra day must be positive, got %s", t.Code, t.Days.PagesPerExtraDay)
		}
	}
	if defaults != 1 {
		return errors.InvalidArgument("tier set must have exactly one default tier, found %d", defaults)
	}
	return nil
}

// RushEligibleSubtotal sums the line totals of documents that are not
// notarized. Notarized work is always billed at standard turnaround.
func RushEligibleSubtotal(items []types.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if !it.IsNotarized {
			total = total.Add(it.LineTotal)
		}
	}
	return total
}

// Fee computes the fee for a tier: a percentage of the rush-eligible subtotal
// or a flat amount, plus the same-day surcharge for same-day tiers. The
// result is not rounded.
func Fee(tier types.TurnaroundTier, rushEligibleSubtotal, sameDayAdditionalFee decimal.Decimal) (decimal.Decimal, error) {
	if rushEligibleSubtotal.IsNegative() {
		return decimal.Zero, errors.InvalidArgument("rush-eligible subtotal must be non-negative, got %s", rushEligibleSubtotal)
	}
	if sameDayAdditionalFee.IsNegative() {
		return decimal.Zero, errors.InvalidArgument("same-day additional fee must be non-negative, got %s", sameDayAdditionalFee)
	}
	if tier.FeeValue.IsNegative() {
		return decimal.Zero, errors.InvalidArgument("tier %q fee value must be non-negative, got %s", tier.Code, tier.FeeValue)
	}

	var fee decimal.Decimal
	switch tier.FeeType {
	case types.FeePercentage:
		fee = determinism.Percent(rushEligibleSubtotal, tier.FeeValue)
	case types.FeeFlat:
		fee = tier.FeeValue
	default:
		return decimal.Zero, errors.InvalidArgument("tier %q has unknown fee type %q", tier.Code, tier.FeeType)
	}
	if tier.IsSameDay() {
		fee = fee.Add(sameDayAdditionalFee)
	}
	return fee, nil
}
