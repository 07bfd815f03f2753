package diff

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-quote/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(id, pages, total string) types.LineItem {
	return types.LineItem{
		DocumentID:          id,
		BillablePages:       dec(pages),
		TranslationCharge:   dec(total),
		CertificationCharge: decimal.Zero,
		LineTotal:           dec(total),
	}
}

func result(tier string, fee, taxRate string, date string, items ...types.LineItem) types.PricingResult {
	r := types.PricingResult{
		TierCode:              tier,
		TurnaroundFee:         dec(fee),
		DeliveryFee:           decimal.Zero,
		CertificationTotal:    decimal.Zero,
		TaxRate:               dec(taxRate),
		EstimatedDeliveryDate: types.MustParseDate(date),
		DeliveryCodes:         []string{"online_portal"},
		LineItems:             items,
	}
	r.TranslationTotal = decimal.Zero
	for _, it := range items {
		r.TranslationTotal = r.TranslationTotal.Add(it.TranslationCharge)
	}
	r.Subtotal = r.TranslationTotal
	r.TaxAmount = r.TaxableAmount().Mul(r.TaxRate).Round(2)
	r.Total = r.TaxableAmount().Add(r.TaxAmount).Round(2)
	return r
}

func TestDiffIdenticalQuotes(t *testing.T) {
	q := result(types.TierStandard, "0", "0.05", "2026-10-21", line("a", "2.2", "145"))
	d := NewDiffer(decimal.Zero).Diff(q, q)

	assert.True(t, d.TotalDelta.IsZero())
	assert.Equal(t, 1, d.UnchangedCount)
	assert.Zero(t, d.ChangedCount+d.AddedCount+d.RemovedCount)
	assert.Empty(t, d.Reasons)
	for _, f := range d.Fields {
		assert.False(t, f.Changed, f.Name)
	}
	assert.Equal(t, "No price change\n", d.Summary())
}

func TestDiffDocumentAndTierChanges(t *testing.T) {
	before := result(types.TierStandard, "0", "0.05", "2026-10-21",
		line("a", "2.2", "145"),
		line("b", "1", "65"),
	)
	after := result(types.TierRush, "58.5", "0.05", "2026-10-20",
		line("a", "2.2", "145"),
		line("c", "1", "65"),
	)

	d := NewDiffer(decimal.Zero).Diff(before, after)

	require.Len(t, d.Added, 1)
	assert.Equal(t, "c", d.Added[0].Key)
	require.Len(t, d.Removed, 1)
	assert.Equal(t, "b", d.Removed[0].Key)
	assert.Equal(t, "-65", d.Removed[0].Delta.String())
	assert.Equal(t, 1, d.UnchangedCount)

	assert.Equal(t, types.TierStandard, d.TierBefore)
	assert.Equal(t, types.TierRush, d.TierAfter)
	assert.Equal(t, -1, d.DateShiftDays)

	// 210 -> 268.5 taxable, 220.50 -> 281.93 total
	assert.Equal(t, "61.43", d.TotalDelta.String())
	assert.Equal(t, "27.86", d.DeltaPercent.String())

	categories := make([]string, 0, len(d.Reasons))
	for _, r := range d.Reasons {
		categories = append(categories, r.Category)
	}
	assert.Equal(t, []string{"document", "document", "turnaround"}, categories)

	summary := d.Summary()
	assert.True(t, strings.HasPrefix(summary, "Total increased by 61.43"), summary)
	assert.Contains(t, summary, "turnaround standard -> rush")
	assert.Contains(t, summary, "(-1 days)")
}

func TestDiffThresholdAndNotarization(t *testing.T) {
	before := result(types.TierStandard, "0", "0", "2026-10-21", line("a", "2.2", "145"))
	after := result(types.TierStandard, "0", "0", "2026-10-21", line("a", "2.2", "145.01"))

	d := NewDiffer(dec("0.05")).Diff(before, after)
	assert.Equal(t, 1, d.UnchangedCount)

	after = result(types.TierStandard, "0", "0", "2026-10-21", line("a", "2.2", "145"))
	after.LineItems[0].IsNotarized = true
	d = NewDiffer(dec("0.05")).Diff(before, after)
	require.Len(t, d.Changed, 1)
	assert.True(t, d.Changed[0].NotarizationChange)
}

func TestDiffPositionalKeysAndTopChanges(t *testing.T) {
	before := result(types.TierStandard, "0", "0", "2026-10-21", line("", "1", "65"), line("", "1", "65"))
	after := result(types.TierStandard, "0", "0", "2026-10-21", line("", "3", "195"), line("", "1.5", "97.5"))

	d := NewDiffer(decimal.Zero).Diff(before, after)
	require.Equal(t, 2, d.ChangedCount)
	assert.Equal(t, "#0", d.Changed[0].Key)
	assert.True(t, d.Changed[0].PagesChanged)

	top := d.TopChanges(1)
	require.Len(t, top, 1)
	assert.Equal(t, "#0", top[0].Key)
	assert.Len(t, d.TopChanges(10), 2)
}
