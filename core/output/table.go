package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"translation-quote/core/determinism"
	"translation-quote/core/diff"
	"translation-quote/core/engine"
	"translation-quote/core/types"
)

const (
	boxTop = "┌─────────────────────────────────────────────────────────────────────────┐"
	boxSep = "├─────────────────────────────────────────────────────────────────────────┤"
	boxEnd = "└─────────────────────────────────────────────────────────────────────────┘"
)

type tableFormatter struct{}

func (tableFormatter) Format() Format { return FormatTable }

// printer accumulates the first write error so rendering code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (b *printer) printf(format string, args ...any) {
	if b.err != nil {
		return
	}
	_, b.err = fmt.Fprintf(b.w, format, args...)
}

func (b *printer) line(s string) {
	b.printf("%s\n", s)
}

func (b *printer) row(label, value string) {
	b.printf("│ %-50s %20s │\n", truncate(label, 50), truncate(value, 20))
}

func (b *printer) title(s string) {
	b.printf("│ %-71s │\n", truncate(s, 71))
}

func (tableFormatter) RenderQuote(w io.Writer, q *engine.QuoteResult) error {
	r := q.Result
	cur := string(r.Currency)
	b := &printer{w: w}

	b.line(boxTop)
	b.title(fmt.Sprintf("TRANSLATION QUOTE  (%s)", q.RegimeID))
	b.line(boxSep)
	for i, it := range r.LineItems {
		b.row(documentLabel(it, i), determinism.FormatMoney(it.TranslationCharge, cur))
		if !it.CertificationCharge.IsZero() {
			b.row("  └─ certification", determinism.FormatMoney(it.CertificationCharge, cur))
		}
	}
	b.line(boxSep)
	b.row("Translation", determinism.FormatMoney(r.TranslationTotal, cur))
	b.row("Certification", determinism.FormatMoney(r.CertificationTotal, cur))
	b.row("Subtotal", determinism.FormatMoney(r.Subtotal, cur))
	b.row("Turnaround ("+r.TierCode+")", determinism.FormatMoney(r.TurnaroundFee, cur))
	b.row("Delivery ("+strings.Join(r.DeliveryCodes, ", ")+")", determinism.FormatMoney(r.DeliveryFee, cur))
	b.row(taxLabel(r), determinism.FormatMoney(r.TaxAmount, cur))
	b.line(boxSep)
	b.row("TOTAL", determinism.FormatMoney(r.Total, cur))
	b.line(boxEnd)

	b.printf("\nEstimated delivery: %s\n", r.EstimatedDeliveryDate)
	b.printf("Billable pages: %s\n", r.BillablePageTotal)
	b.printf("Fingerprint: %s\n", q.Fingerprint)
	return b.err
}

func (tableFormatter) RenderOptions(w io.Writer, o *engine.OptionsResult) error {
	b := &printer{w: w}
	b.printf("Effective start: %s\n\n", o.EffectiveStartDate)
	b.printf("%-12s %-10s %12s  %-10s  %s\n", "TIER", "AVAILABLE", "FEE", "DELIVERY", "REASON")
	for _, opt := range o.Options {
		code := opt.Code
		if opt.IsDefault {
			code += "*"
		}
		b.printf("%-12s %-10s %12s  %-10s  %s\n", code, yesNo(opt.Available), opt.Fee.StringFixed(2), opt.DeliveryDate, opt.Reason)
	}
	return b.err
}

func (tableFormatter) RenderDiff(w io.Writer, d *diff.DiffResult) error {
	b := &printer{w: w}
	b.printf("%s", d.Summary())
	changed := false
	for _, f := range d.Fields {
		if !f.Changed {
			continue
		}
		if !changed {
			b.printf("\n%-22s %14s %14s %14s\n", "FIELD", "BEFORE", "AFTER", "DELTA")
			changed = true
		}
		b.printf("%-22s %14s %14s %14s\n", f.Name, f.Before.String(), f.After.String(), signed(f.Delta))
	}
	if len(d.Reasons) > 0 {
		b.printf("\nReasons:\n")
		for _, r := range d.Reasons {
			b.printf("  [%s] %s (%s)\n", r.Category, r.What, signed(r.Impact))
		}
	}
	return b.err
}

func documentLabel(it types.LineItem, i int) string {
	id := it.DocumentID
	if id == "" {
		id = fmt.Sprintf("#%d", i+1)
	}
	label := fmt.Sprintf("%s %s  %s pages", id, it.DocumentType, it.BillablePages)
	if it.IsNotarized {
		label += " (notarized)"
	}
	return label
}

func taxLabel(r types.PricingResult) string {
	name := r.TaxName
	if name == "" {
		name = "Tax"
	}
	return fmt.Sprintf("%s (%s%%)", name, r.TaxRate.Mul(decimal.NewFromInt(100)).String())
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
