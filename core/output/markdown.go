package output

import (
	"io"
	"strconv"
	"strings"

	"translation-quote/core/determinism"
	"translation-quote/core/diff"
	"translation-quote/core/engine"
)

type markdownFormatter struct{}

func (markdownFormatter) Format() Format { return FormatMarkdown }

func (markdownFormatter) RenderQuote(w io.Writer, q *engine.QuoteResult) error {
	r := q.Result
	cur := string(r.Currency)
	b := &printer{w: w}

	b.printf("## Quote `%s`\n\n", q.Fingerprint)
	b.printf("| Document | Type | Pages | Translation | Certification |\n")
	b.printf("|---|---|---:|---:|---:|\n")
	for i, it := range r.LineItems {
		id := it.DocumentID
		if id == "" {
			id = "#" + strconv.Itoa(i+1)
		}
		if it.IsNotarized {
			id += " (notarized)"
		}
		b.printf("| %s | %s | %s | %s | %s |\n", id, it.DocumentType, it.BillablePages,
			it.TranslationCharge.StringFixed(2), it.CertificationCharge.StringFixed(2))
	}

	b.printf("\n| | Amount |\n|---|---:|\n")
	b.printf("| Subtotal | %s |\n", determinism.FormatMoney(r.Subtotal, cur))
	b.printf("| Turnaround (%s) | %s |\n", r.TierCode, determinism.FormatMoney(r.TurnaroundFee, cur))
	b.printf("| Delivery (%s) | %s |\n", strings.Join(r.DeliveryCodes, ", "), determinism.FormatMoney(r.DeliveryFee, cur))
	b.printf("| %s | %s |\n", taxLabel(r), determinism.FormatMoney(r.TaxAmount, cur))
	b.printf("| **Total** | **%s** |\n", determinism.FormatMoney(r.Total, cur))
	b.printf("\nEstimated delivery: **%s**\n", r.EstimatedDeliveryDate)
	return b.err
}

func (markdownFormatter) RenderOptions(w io.Writer, o *engine.OptionsResult) error {
	b := &printer{w: w}
	b.printf("| Tier | Available | Fee | Delivery | Reason |\n|---|---|---:|---|---|\n")
	for _, opt := range o.Options {
		b.printf("| %s | %s | %s | %s | %s |\n", opt.Code, yesNo(opt.Available), opt.Fee.StringFixed(2), opt.DeliveryDate, opt.Reason)
	}
	return b.err
}

func (markdownFormatter) RenderDiff(w io.Writer, d *diff.DiffResult) error {
	b := &printer{w: w}
	b.printf("### Re-quote\n\n")
	b.printf("| Field | Before | After | Delta |\n|---|---:|---:|---:|\n")
	for _, f := range d.Fields {
		if f.Changed {
			b.printf("| %s | %s | %s | %s |\n", f.Name, f.Before, f.After, signed(f.Delta))
		}
	}
	for _, r := range d.Reasons {
		b.printf("\n- **%s**: %s (%s)", r.Category, r.What, signed(r.Impact))
	}
	if len(d.Reasons) > 0 {
		b.printf("\n")
	}
	return b.err
}
