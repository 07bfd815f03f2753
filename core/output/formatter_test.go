package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-quote/core/diff"
	"translation-quote/core/engine"
	"translation-quote/core/quote"
	"translation-quote/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleQuote() *engine.QuoteResult {
	return &engine.QuoteResult{
		RegimeID:    "ca-test",
		Fingerprint: uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8"),
		Result: types.PricingResult{
			Currency:              types.CurrencyCAD,
			TranslationTotal:      dec("145"),
			CertificationTotal:    dec("0"),
			TurnaroundFee:         dec("0"),
			DeliveryFee:           dec("0"),
			Subtotal:              dec("145"),
			TaxRate:               dec("0.05"),
			TaxAmount:             dec("7.25"),
			Total:                 dec("152.25"),
			EstimatedDeliveryDate: types.MustParseDate("2026-10-21"),
			TierCode:              types.TierStandard,
			TaxName:               "GST",
			DeliveryCodes:         []string{"online_portal"},
			BillablePageTotal:     dec("2.2"),
			LineItems: []types.LineItem{
				{DocumentID: "doc-1", DocumentType: "birth_certificate", BillablePages: dec("2.2"),
					TranslationCharge: dec("145"), CertificationCharge: dec("0"), LineTotal: dec("145")},
			},
		},
	}
}

func sampleOptions() *engine.OptionsResult {
	return &engine.OptionsResult{
		EffectiveStartDate: types.MustParseDate("2026-10-16"),
		Options: []quote.Option{
			{Code: types.TierStandard, IsDefault: true, Available: true, Fee: dec("0"), DeliveryDate: types.MustParseDate("2026-10-21")},
			{Code: types.TierSameDay, Available: false, Reason: types.ReasonPastCutoff, Fee: dec("65"), DeliveryDate: types.MustParseDate("2026-10-16")},
		},
	}
}

func render(t *testing.T, format Format, fn func(Formatter, *bytes.Buffer) error) string {
	t.Helper()
	f, ok := NewRegistry().Get(format)
	require.True(t, ok, format)
	var buf bytes.Buffer
	require.NoError(t, fn(f, &buf))
	return buf.String()
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []Format{FormatJSON, FormatMarkdown, FormatTable}, r.Formats())
	assert.Error(t, r.Register(jsonFormatter{}))
	_, ok := r.Get("html")
	assert.False(t, ok)
}

func TestTableQuote(t *testing.T) {
	out := render(t, FormatTable, func(f Formatter, b *bytes.Buffer) error { return f.RenderQuote(b, sampleQuote()) })

	assert.Contains(t, out, "TRANSLATION QUOTE  (ca-test)")
	assert.Contains(t, out, "doc-1 birth_certificate  2.2 pages")
	assert.Contains(t, out, "GST (5%)")
	assert.Contains(t, out, "152.25 CAD")
	assert.Contains(t, out, "Estimated delivery: 2026-10-21")

	// Every boxed row has the same visible width.
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "│") {
			assert.Equal(t, 75, len([]rune(line)), line)
		}
	}
}

func TestTableOptions(t *testing.T) {
	out := render(t, FormatTable, func(f Formatter, b *bytes.Buffer) error { return f.RenderOptions(b, sampleOptions()) })
	assert.Contains(t, out, "standard*")
	assert.Contains(t, out, "past_cutoff")
	assert.Contains(t, out, "65.00")
}

func TestJSONQuoteRoundTrip(t *testing.T) {
	out := render(t, FormatJSON, func(f Formatter, b *bytes.Buffer) error { return f.RenderQuote(b, sampleQuote()) })

	var decoded engine.QuoteResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.Result.Total.Equal(dec("152.25")))
	assert.Equal(t, types.MustParseDate("2026-10-21"), decoded.Result.EstimatedDeliveryDate)
	assert.Equal(t, sampleQuote().Fingerprint, decoded.Fingerprint)
}

func TestMarkdownQuote(t *testing.T) {
	out := render(t, FormatMarkdown, func(f Formatter, b *bytes.Buffer) error { return f.RenderQuote(b, sampleQuote()) })
	assert.Contains(t, out, "| doc-1 | birth_certificate | 2.2 | 145.00 | 0.00 |")
	assert.Contains(t, out, "| **Total** | **152.25 CAD** |")
}

func TestDiffRenderers(t *testing.T) {
	before := sampleQuote().Result
	after := sampleQuote().Result
	after.TierCode = types.TierRush
	after.TurnaroundFee = dec("43.5")
	after.TaxAmount = dec("9.43")
	after.Total = dec("197.93")
	d := diff.NewDiffer(decimal.Zero).Diff(before, after)

	table := render(t, FormatTable, func(f Formatter, b *bytes.Buffer) error { return f.RenderDiff(b, d) })
	assert.Contains(t, table, "Total increased by 45.68")
	assert.Contains(t, table, "turnaround_fee")
	assert.NotContains(t, table, "translation_total")

	md := render(t, FormatMarkdown, func(f Formatter, b *bytes.Buffer) error { return f.RenderDiff(b, d) })
	assert.Contains(t, md, "| total | 152.25 | 197.93 | +45.68 |")
	assert.Contains(t, md, "**turnaround**")
}
