package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"translation-quote/core/delivery"
	"translation-quote/core/quote"
	"translation-quote/core/tax"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

// build turns a call-site request into the fully resolved aggregator input:
// tax region, regional calendars and the delivery selection all come from
// the same regime snapshot.
func (e *Engine) build(regime types.Regime, req QuoteRequest) (quote.Request, error) {
	if req.Now.IsZero() {
		return quote.Request{}, errors.InvalidArgument("now is required")
	}
	region := req.Region
	if region == "" {
		region = e.config.DefaultRegion
	}
	if strings.TrimSpace(region) == "" {
		return quote.Request{}, errors.InvalidArgument("billing region is required")
	}

	taxRegion, err := e.resolveTax(regime, region)
	if err != nil {
		return quote.Request{}, err
	}

	sel := delivery.DigitalOnly()
	if len(regime.DeliveryOptions) > 0 {
		sel, err = delivery.Resolve(regime.DeliveryOptions, req.DeliveryCodes...)
		if err != nil {
			return quote.Request{}, err
		}
	} else if len(req.DeliveryCodes) > 0 {
		return quote.Request{}, errors.InvalidArgument("regime %q offers no delivery options", regime.ID)
	}

	normalized := tax.NormalizeRegion(region)
	return quote.Request{
		Documents: req.Documents,
		Pricing:   regime.Pricing,
		Tiers:     regime.Tiers,
		TierCode:  req.TierCode,
		Turnaround: types.TurnaroundContext{
			Now:            req.Now,
			IntakeCutoff:   regime.IntakeCutoff,
			RushCutoff:     regime.RushCutoff,
			SameDayCutoff:  regime.SameDayCutoff,
			Holidays:       regionalHolidays(regime.Holidays, normalized),
			SameDayBlocks:  regionalHolidays(regime.SameDayBlocks, normalized),
			SourceLanguage: req.SourceLanguage,
			TargetLanguage: req.TargetLanguage,
			IntendedUse:    req.IntendedUse,
			SameDayRules:   regime.SameDayRules,
		},
		Delivery: sel,
		Tax:      taxRegion,
	}, nil
}

// regionalHolidays selects the global holidays plus those qualified with
// region, comparing region codes in normalized form.
func regionalHolidays(holidays []types.Holiday, region string) types.HolidaySet {
	normalized := make([]types.Holiday, len(holidays))
	for i, h := range holidays {
		if h.Region != "" {
			h.Region = tax.NormalizeRegion(h.Region)
		}
		normalized[i] = h
	}
	return types.HolidaysFor(normalized, region)
}

func parseThreshold(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.InvalidArgument("invalid diff threshold %q", s)
	}
	return d, nil
}
