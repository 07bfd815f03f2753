// Package diff compares two quotes for the same order.
// Staff order edits and server-side recalculation use it to explain what a
// re-quote changed before the new result replaces the stored one.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"translation-quote/core/types"
)

// DiffResult is the complete diff between two pricing results
type DiffResult struct {
	// Overall summary
	TotalBefore  decimal.Decimal `json:"total_before"`
	TotalAfter   decimal.Decimal `json:"total_after"`
	TotalDelta   decimal.Decimal `json:"total_delta"`
	DeltaPercent decimal.Decimal `json:"delta_percent"`

	// Breakdown fields in PricingResult order
	Fields []FieldDiff `json:"fields"`

	// Document-level changes
	Added     []*LineDiff `json:"added"`
	Removed   []*LineDiff `json:"removed"`
	Changed   []*LineDiff `json:"changed"`
	Unchanged []*LineDiff `json:"unchanged"`

	// Counts
	AddedCount     int `json:"added_count"`
	RemovedCount   int `json:"removed_count"`
	ChangedCount   int `json:"changed_count"`
	UnchangedCount int `json:"unchanged_count"`

	// Fulfilment
	TierBefore         string     `json:"tier_before"`
	TierAfter          string     `json:"tier_after"`
	DeliveryDateBefore types.Date `json:"delivery_date_before"`
	DeliveryDateAfter  types.Date `json:"delivery_date_after"`
	DateShiftDays      int        `json:"date_shift_days"`

	Reasons []ChangeReason `json:"reasons"`
}

// FieldDiff is one currency field of the breakdown
type FieldDiff struct {
	Name    string          `json:"name"`
	Before  decimal.Decimal `json:"before"`
	After   decimal.Decimal `json:"after"`
	Delta   decimal.Decimal `json:"delta"`
	Changed bool            `json:"changed"`
}

// LineDiff describes changes to a single document line
type LineDiff struct {
	Key        string          `json:"key"`
	ChangeType ChangeType      `json:"change_type"`
	Before     *types.LineItem `json:"before,omitempty"`
	After      *types.LineItem `json:"after,omitempty"`
	Delta      decimal.Decimal `json:"delta"`

	PagesChanged        bool `json:"pages_changed"`
	CertificationChange bool `json:"certification_changed"`
	NotarizationChange  bool `json:"notarization_changed"`
}

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // New document
	ChangeRemoved                     // Document removed
	ChangeModified                    // Line total changed
	ChangeUnchanged                   // No change
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText renders the change type by name
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ChangeReason explains why the total moved
type ChangeReason struct {
	Category string          `json:"category"` // "document", "turnaround", "delivery", "tax"
	What     string          `json:"what"`
	Impact   decimal.Decimal `json:"impact"`
}

// Differ computes diffs between pricing results
type Differ struct {
	// Threshold is the absolute amount at or below which a line is
	// considered unchanged. Zero compares exactly.
	Threshold decimal.Decimal
}

// NewDiffer creates a new differ
func NewDiffer(threshold decimal.Decimal) *Differ {
	if threshold.IsNegative() {
		threshold = decimal.Zero
	}
	return &Differ{Threshold: threshold}
}

// Diff computes the diff between before and after
func (d *Differ) Diff(before, after types.PricingResult) *DiffResult {
	result := &DiffResult{
		TotalBefore:        before.Total,
		TotalAfter:         after.Total,
		TotalDelta:         after.Total.Sub(before.Total),
		DeltaPercent:       decimal.Zero,
		Added:              []*LineDiff{},
		Removed:            []*LineDiff{},
		Changed:            []*LineDiff{},
		Unchanged:          []*LineDiff{},
		TierBefore:         before.TierCode,
		TierAfter:          after.TierCode,
		DeliveryDateBefore: before.EstimatedDeliveryDate,
		DeliveryDateAfter:  after.EstimatedDeliveryDate,
		Reasons:            []ChangeReason{},
	}
	if !before.Total.IsZero() {
		result.DeltaPercent = result.TotalDelta.Div(before.Total).Mul(decimal.NewFromInt(100)).Round(2)
	}
	if !before.EstimatedDeliveryDate.IsZero() && !after.EstimatedDeliveryDate.IsZero() {
		result.DateShiftDays = before.EstimatedDeliveryDate.DaysUntil(after.EstimatedDeliveryDate)
	}

	result.Fields = []FieldDiff{
		field("translation_total", before.TranslationTotal, after.TranslationTotal),
		field("certification_total", before.CertificationTotal, after.CertificationTotal),
		field("subtotal", before.Subtotal, after.Subtotal),
		field("turnaround_fee", before.TurnaroundFee, after.TurnaroundFee),
		field("delivery_fee", before.DeliveryFee, after.DeliveryFee),
		field("tax_rate", before.TaxRate, after.TaxRate),
		field("tax_amount", before.TaxAmount, after.TaxAmount),
		field("total", before.Total, after.Total),
	}

	d.diffLines(result, before.LineItems, after.LineItems)

	if before.TierCode != after.TierCode || !before.TurnaroundFee.Equal(after.TurnaroundFee) {
		what := "turnaround fee changed"
		if before.TierCode != after.TierCode {
			what = fmt.Sprintf("turnaround %s -> %s", before.TierCode, after.TierCode)
		}
		result.Reasons = append(result.Reasons, ChangeReason{
			Category: "turnaround",
			What:     what,
			Impact:   after.TurnaroundFee.Sub(before.TurnaroundFee),
		})
	}
	if !before.DeliveryFee.Equal(after.DeliveryFee) || strings.Join(before.DeliveryCodes, ",") != strings.Join(after.DeliveryCodes, ",") {
		result.Reasons = append(result.Reasons, ChangeReason{
			Category: "delivery",
			What:     fmt.Sprintf("delivery [%s] -> [%s]", strings.Join(before.DeliveryCodes, ", "), strings.Join(after.DeliveryCodes, ", ")),
			Impact:   after.DeliveryFee.Sub(before.DeliveryFee),
		})
	}
	if !before.TaxRate.Equal(after.TaxRate) {
		result.Reasons = append(result.Reasons, ChangeReason{
			Category: "tax",
			What:     fmt.Sprintf("tax rate %s -> %s", before.TaxRate, after.TaxRate),
			Impact:   after.TaxAmount.Sub(before.TaxAmount),
		})
	}

	return result
}

func field(name string, before, after decimal.Decimal) FieldDiff {
	delta := after.Sub(before)
	return FieldDiff{Name: name, Before: before, After: after, Delta: delta, Changed: !delta.IsZero()}
}

// lineKey identifies a line across quotes: the document ID when present,
// else its position.
func lineKey(it types.LineItem, i int) string {
	if it.DocumentID != "" {
		return it.DocumentID
	}
	return fmt.Sprintf("#%d", i)
}

func (d *Differ) diffLines(result *DiffResult, before, after []types.LineItem) {
	beforeMap := make(map[string]*types.LineItem, len(before))
	for i := range before {
		beforeMap[lineKey(before[i], i)] = &before[i]
	}
	afterMap := make(map[string]*types.LineItem, len(after))
	for i := range after {
		afterMap[lineKey(after[i], i)] = &after[i]
	}

	for key, a := range afterMap {
		b, existed := beforeMap[key]
		if !existed {
			result.Added = append(result.Added, &LineDiff{Key: key, ChangeType: ChangeAdded, After: a, Delta: a.LineTotal})
			result.AddedCount++
			result.Reasons = append(result.Reasons, ChangeReason{Category: "document", What: "document added: " + key, Impact: a.LineTotal})
			continue
		}
		ld := d.compareLines(key, b, a)
		if ld.ChangeType == ChangeModified {
			result.Changed = append(result.Changed, ld)
			result.ChangedCount++
			result.Reasons = append(result.Reasons, ChangeReason{Category: "document", What: "document changed: " + key, Impact: ld.Delta})
		} else {
			result.Unchanged = append(result.Unchanged, ld)
			result.UnchangedCount++
		}
	}
	for key, b := range beforeMap {
		if _, exists := afterMap[key]; !exists {
			delta := b.LineTotal.Neg()
			result.Removed = append(result.Removed, &LineDiff{Key: key, ChangeType: ChangeRemoved, Before: b, Delta: delta})
			result.RemovedCount++
			result.Reasons = append(result.Reasons, ChangeReason{Category: "document", What: "document removed: " + key, Impact: delta})
		}
	}

	// Sort all lists by key for determinism
	sortDiffs(result.Added)
	sortDiffs(result.Removed)
	sortDiffs(result.Changed)
	sortDiffs(result.Unchanged)
	sort.SliceStable(result.Reasons, func(i, j int) bool {
		if result.Reasons[i].Category != result.Reasons[j].Category {
			return result.Reasons[i].Category < result.Reasons[j].Category
		}
		return result.Reasons[i].What < result.Reasons[j].What
	})
}

func (d *Differ) compareLines(key string, before, after *types.LineItem) *LineDiff {
	ld := &LineDiff{
		Key:                 key,
		Before:              before,
		After:               after,
		Delta:               after.LineTotal.Sub(before.LineTotal),
		PagesChanged:        !before.BillablePages.Equal(after.BillablePages),
		CertificationChange: !before.CertificationCharge.Equal(after.CertificationCharge),
		NotarizationChange:  before.IsNotarized != after.IsNotarized,
	}
	if ld.Delta.Abs().GreaterThan(d.Threshold) || ld.NotarizationChange {
		ld.ChangeType = ChangeModified
	} else {
		ld.ChangeType = ChangeUnchanged
	}
	return ld
}

func sortDiffs(diffs []*LineDiff) {
	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Key < diffs[j].Key
	})
}

// Summary provides a human-readable summary
func (r *DiffResult) Summary() string {
	var b strings.Builder

	switch {
	case r.TotalDelta.IsZero():
		b.WriteString("No price change\n")
	case r.TotalDelta.IsNegative():
		fmt.Fprintf(&b, "Total decreased by %s (%s%%)\n", r.TotalDelta.Abs().StringFixed(2), r.DeltaPercent.StringFixed(2))
	default:
		fmt.Fprintf(&b, "Total increased by %s (+%s%%)\n", r.TotalDelta.StringFixed(2), r.DeltaPercent.StringFixed(2))
	}

	if r.AddedCount > 0 {
		fmt.Fprintf(&b, "  + %d documents added\n", r.AddedCount)
	}
	if r.RemovedCount > 0 {
		fmt.Fprintf(&b, "  - %d documents removed\n", r.RemovedCount)
	}
	if r.ChangedCount > 0 {
		fmt.Fprintf(&b, "  ~ %d documents changed\n", r.ChangedCount)
	}
	if r.TierBefore != r.TierAfter {
		fmt.Fprintf(&b, "  turnaround %s -> %s\n", r.TierBefore, r.TierAfter)
	}
	if r.DateShiftDays != 0 {
		fmt.Fprintf(&b, "  delivery %s -> %s (%+d days)\n", r.DeliveryDateBefore, r.DeliveryDateAfter, r.DateShiftDays)
	}

	return b.String()
}

// TopChanges returns the document lines with the largest impact
func (r *DiffResult) TopChanges(n int) []*LineDiff {
	all := make([]*LineDiff, 0, len(r.Added)+len(r.Removed)+len(r.Changed))
	all = append(all, r.Added...)
	all = append(all, r.Removed...)
	all = append(all, r.Changed...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Delta.Abs().GreaterThan(all[j].Delta.Abs())
	})

	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}
