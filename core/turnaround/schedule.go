package turnaround

import (
	"github.com/shopspring/decimal"

	"translation-quote/core/calendar"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

// Days projects working days for a page count:
// BaseDays + ceil(max(0, pages-BasePages) / PagesPerExtraDay).
// Counts past calendar.MaxBusinessDays saturate at MaxBusinessDays+1 so the
// date projection rejects them instead of overflowing.
func Days(rule types.DayRule, pages decimal.Decimal) int {
	extra := pages.Sub(rule.BasePages)
	if !extra.IsPositive() || !rule.PagesPerExtraDay.IsPositive() {
		return rule.BaseDays
	}
	over := extra.Div(rule.PagesPerExtraDay).Ceil()
	if over.GreaterThanOrEqual(decimal.NewFromInt(int64(calendar.MaxBusinessDays - rule.BaseDays + 1))) {
		return calendar.MaxBusinessDays + 1
	}
	return rule.BaseDays + int(over.IntPart())
}

// TierDays returns the working days for tier. A rush tier never takes longer
// than the default tier for the same page count.
func TierDays(tier types.TurnaroundTier, tiers types.TierSet, pages decimal.Decimal) int {
	if tier.IsSameDay() {
		return 0
	}
	days := Days(tier.Days, pages)
	if IsRush(tier) {
		if std, ok := tiers.Default(); ok {
			if stdDays := Days(std.Days, pages); days > stdDays {
				days = stdDays
			}
		}
	}
	return days
}

// DeliveryDate projects the delivery date of tier for pages, counting
// business days from start. Same-day delivers on start itself.
func DeliveryDate(tier types.TurnaroundTier, tiers types.TierSet, pages decimal.Decimal, start types.Date, holidays types.HolidaySet) (types.Date, error) {
	if pages.IsNegative() {
		return types.Date{}, errors.InvalidArgument("page total must be non-negative, got %s", pages)
	}
	if tier.IsSameDay() {
		return start, nil
	}
	return calendar.AddBusinessDays(start, TierDays(tier, tiers, pages), holidays)
}

// ProjectDelivery projects the order's delivery date. Notarized documents
// always follow the default tier, so an expedited order is never promised
// before its notarized part is ready.
func ProjectDelivery(tier types.TurnaroundTier, tiers types.TierSet, items []types.LineItem, start types.Date, holidays types.HolidaySet) (types.Date, error) {
	pages, notarizedPages := decimal.Zero, decimal.Zero
	for _, it := range items {
		pages = pages.Add(it.BillablePages)
		if it.IsNotarized {
			notarizedPages = notarizedPages.Add(it.BillablePages)
		}
	}

	date, err := DeliveryDate(tier, tiers, pages, start, holidays)
	if err != nil {
		return types.Date{}, err
	}
	if !IsExpedited(tier) || !notarizedPages.IsPositive() {
		return date, nil
	}

	std, ok := tiers.Default()
	if !ok {
		return types.Date{}, errors.InvalidArgument("tier set has no default tier")
	}
	notarizedDate, err := DeliveryDate(std, tiers, notarizedPages, start, holidays)
	if err != nil {
		return types.Date{}, err
	}
	return types.MaxDate(date, notarizedDate), nil
}
