package regime

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"translation-quote/core/calendar"
	"translation-quote/core/delivery"
	"translation-quote/core/lineitem"
	"translation-quote/core/tax"
	"translation-quote/core/turnaround"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

// LoadFile reads and parses a regime file
func LoadFile(path string) (types.Regime, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return types.Regime{}, errors.Config("reading regime file "+path, err)
	}
	return Parse(src, path)
}

// Parse decodes and validates one regime from HCL source. filename is only
// used in diagnostics.
func Parse(src []byte, filename string) (types.Regime, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return types.Regime{}, diagError(filename, diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return types.Regime{}, diagError(filename, diags)
	}

	d := &decoder{file: filename}
	r := d.regime(schema.Regime)
	if d.err != nil {
		return types.Regime{}, d.err
	}
	if err := Validate(r); err != nil {
		return types.Regime{}, errors.Wrapf(errors.TypeParsing, err, "%s: invalid regime %q", filename, r.ID)
	}
	return r, nil
}

// Validate checks a decoded regime with the same rules the quoting layers
// apply, so a bad file fails at load rather than on the first quote.
func Validate(r types.Regime) error {
	if r.ID == "" {
		return errors.InvalidArgument("regime id is required")
	}
	if err := lineitem.ValidateConfig(r.Pricing); err != nil {
		return err
	}
	if err := turnaround.ValidateTiers(r.Tiers); err != nil {
		return err
	}
	for _, c := range []types.Cutoff{r.IntakeCutoff, r.RushCutoff, r.SameDayCutoff} {
		if _, err := calendar.Location(c); err != nil {
			return err
		}
	}
	if r.SameDayCutoff.TimeZone == r.IntakeCutoff.TimeZone &&
		r.SameDayCutoff.Hour*60+r.SameDayCutoff.Minute > r.IntakeCutoff.Hour*60+r.IntakeCutoff.Minute {
		return errors.InvalidArgument("same-day cutoff %02d:%02d is after the intake cutoff %02d:%02d",
			r.SameDayCutoff.Hour, r.SameDayCutoff.Minute, r.IntakeCutoff.Hour, r.IntakeCutoff.Minute)
	}
	if _, err := tax.Group(r.TaxRows); err != nil {
		return err
	}
	if len(r.DeliveryOptions) > 0 {
		if err := delivery.Validate(r.DeliveryOptions); err != nil {
			return err
		}
	}
	for _, row := range r.SameDayRules {
		if row.AdditionalFee.IsNegative() {
			return errors.InvalidArgument("same-day rule %s/%s/%s/%s has a negative fee",
				row.SourceLanguage, row.TargetLanguage, row.DocumentType, row.IntendedUse)
		}
	}
	return nil
}

func diagError(filename string, diags hcl.Diagnostics) error {
	msgs := make([]string, 0, len(diags))
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		msgs = append(msgs, fmt.Sprintf("%s:%d: %s: %s", filename, line, diag.Summary, diag.Detail))
	}
	return errors.Parsing(strings.Join(msgs, "; "), diags)
}

// decoder keeps the first conversion error so the block walk stays linear.
type decoder struct {
	file string
	err  error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = errors.Parsing(d.file+": "+fmt.Sprintf(format, args...), nil)
	}
}

func (d *decoder) failAt(rng hcl.Range, format string, args ...any) {
	if d.err == nil {
		d.err = errors.Parsing(fmt.Sprintf("%s:%d: %s", d.file, rng.Start.Line, fmt.Sprintf(format, args...)), nil)
	}
}

func (d *decoder) regime(b regimeBlock) types.Regime {
	r := types.Regime{
		ID: b.ID,
		Pricing: types.PricingConfig{
			Currency:              types.Currency(strings.ToUpper(b.Currency)),
			BaseRatePerPage:       d.decimal(b.BaseRatePerPage, "base_rate_per_page", decimal.Zero),
			WordsPerPage:          d.decimal(b.WordsPerPage, "words_per_page", decimal.Zero),
			RoundingUnit:          d.decimal(b.RoundingUnit, "rounding_unit", decimal.Zero),
			ComplexityMultipliers: d.complexity(b.Complexity),
		},
		IntakeCutoff:  d.cutoff(b.Cutoffs, b.Cutoffs.Intake, "intake"),
		RushCutoff:    d.cutoff(b.Cutoffs, b.Cutoffs.Rush, "rush"),
		SameDayCutoff: d.cutoff(b.Cutoffs, b.Cutoffs.SameDay, "same_day"),
	}

	for _, t := range b.Tiers {
		r.Tiers = append(r.Tiers, types.TurnaroundTier{
			Code:     t.Code,
			Name:     t.Name,
			FeeType:  types.FeeType(t.FeeType),
			FeeValue: d.decimal(t.FeeValue, "fee_value", decimal.Zero),
			Days: types.DayRule{
				BaseDays:         t.BaseDays,
				BasePages:        d.decimal(t.BasePages, "base_pages", decimal.Zero),
				PagesPerExtraDay: d.decimal(t.PagesPerExtraDay, "pages_per_extra_day", decimal.Zero),
			},
			IsRush:    t.Rush,
			IsDefault: t.Default,
		})
	}

	r.Holidays = d.holidays(b.Holidays)
	r.SameDayBlocks = d.holidays(b.SameDayBlocks)

	for _, s := range b.SameDay {
		active := true
		if s.Active != nil {
			active = *s.Active
		}
		r.SameDayRules = append(r.SameDayRules, types.SameDayRule{
			SourceLanguage: s.SourceLanguage,
			TargetLanguage: s.TargetLanguage,
			DocumentType:   s.DocumentType,
			IntendedUse:    s.IntendedUse,
			AdditionalFee:  d.decimal(s.AdditionalFee, "additional_fee", decimal.Zero),
			Active:         active,
		})
	}

	for _, t := range b.Taxes {
		r.TaxRows = append(r.TaxRows, types.TaxRow{
			RegionCode: tax.NormalizeRegion(t.Region),
			Name:       t.Name,
			Rate:       d.decimal(t.Rate, "rate", decimal.Zero),
		})
	}

	for _, o := range b.Delivery {
		r.DeliveryOptions = append(r.DeliveryOptions, types.DeliveryOption{
			Code:           o.Code,
			Name:           o.Name,
			Kind:           types.DeliveryKind(o.Kind),
			Fee:            d.decimal(o.Fee, "fee", decimal.Zero),
			EstimatedDays:  o.EstimatedDays,
			AlwaysSelected: o.AlwaysSelected,
		})
	}
	return r
}

func (d *decoder) holidays(blocks []holidayBlock) []types.Holiday {
	out := make([]types.Holiday, 0, len(blocks))
	for _, h := range blocks {
		date, err := types.ParseDate(h.Date)
		if err != nil {
			d.fail("invalid holiday date %q", h.Date)
			continue
		}
		region := ""
		if h.Region != "" {
			region = tax.NormalizeRegion(h.Region)
		}
		out = append(out, types.Holiday{Date: date, Region: region, Name: h.Name})
	}
	return out
}

func (d *decoder) cutoff(b cutoffsBlock, clock, name string) types.Cutoff {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		d.fail("cutoff %s: expected HH:MM, got %q", name, clock)
		return types.Cutoff{}
	}
	return types.Cutoff{TimeZone: b.TimeZone, Hour: t.Hour(), Minute: t.Minute()}
}

// decimal converts a number or a quoted decimal string. Absent optional
// attributes yield def.
func (d *decoder) decimal(expr hcl.Expression, name string, def decimal.Decimal) decimal.Decimal {
	if expr == nil {
		return def
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		d.failAt(expr.Range(), "%s: %s", name, diags.Error())
		return def
	}
	if val.IsNull() {
		return def
	}
	out, err := ctyDecimal(val)
	if err != nil {
		d.failAt(expr.Range(), "%s: %v", name, err)
		return def
	}
	return out
}

func (d *decoder) complexity(expr hcl.Expression) map[types.ComplexityTier]decimal.Decimal {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		d.failAt(expr.Range(), "complexity: %s", diags.Error())
		return nil
	}
	if val.IsNull() {
		return nil
	}
	if !val.CanIterateElements() || !(val.Type().IsObjectType() || val.Type().IsMapType()) {
		d.failAt(expr.Range(), "complexity must be a map of tier to multiplier")
		return nil
	}
	out := make(map[types.ComplexityTier]decimal.Decimal, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		m, err := ctyDecimal(v)
		if err != nil {
			d.failAt(expr.Range(), "complexity %s: %v", k.AsString(), err)
			return nil
		}
		out[types.ComplexityTier(k.AsString())] = m
	}
	return out
}

// ctyDecimal converts a known number or string value. Unknown values are
// rejected; regime files have no variables to resolve later.
func ctyDecimal(val cty.Value) (decimal.Decimal, error) {
	if !val.IsKnown() {
		return decimal.Zero, fmt.Errorf("value is not known")
	}
	switch val.Type() {
	case cty.Number:
		return decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	case cty.String:
		return decimal.NewFromString(strings.TrimSpace(val.AsString()))
	default:
		return decimal.Zero, fmt.Errorf("expected number or string, got %s", val.Type().FriendlyName())
	}
}
