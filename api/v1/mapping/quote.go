// Package mapping - Explicit mapping between API DTOs and the engine
// This is the ONLY place where engine types touch API types.
// Rules:
// - Requests are validated before they are mapped
// - No mutation of engine results
// - No business logic
package mapping

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"translation-quote/api/v1/types"
	"translation-quote/core/engine"
	coretypes "translation-quote/core/types"
	"translation-quote/internal/errors"
)

// MapperConfig configures the mapping
type MapperConfig struct {
	EngineVersion string
	APIVersion    string
}

// ToQuoteRequest validates dto and converts it to an engine request. now is
// used when the request does not pin its own instant.
func ToQuoteRequest(dto types.QuoteRequest, now time.Time) (engine.QuoteRequest, error) {
	if err := types.Validate(dto); err != nil {
		return engine.QuoteRequest{}, err
	}

	docs := make([]coretypes.DocumentInput, 0, len(dto.Documents))
	for i, d := range dto.Documents {
		cert := decimal.Zero
		if s := strings.TrimSpace(d.CertificationPrice); s != "" {
			var err error
			cert, err = decimal.NewFromString(s)
			if err != nil || cert.IsNegative() {
				return engine.QuoteRequest{}, errors.InvalidArgument("documents[%d].certification_price must be a non-negative decimal, got %q", i, d.CertificationPrice)
			}
		}
		docs = append(docs, coretypes.DocumentInput{
			ID:                 d.ID,
			DocumentType:       d.DocumentType,
			WordCount:          d.WordCount,
			Complexity:         coretypes.ComplexityTier(d.Complexity),
			CertificationPrice: cert,
			IsNotarized:        d.IsNotarized,
		})
	}

	if dto.Now != nil {
		now = *dto.Now
	}
	return engine.QuoteRequest{
		Documents:      docs,
		TierCode:       dto.Tier,
		Region:         dto.Region,
		SourceLanguage: strings.ToLower(dto.SourceLanguage),
		TargetLanguage: strings.ToLower(dto.TargetLanguage),
		IntendedUse:    dto.IntendedUse,
		DeliveryCodes:  dto.Delivery,
		Now:            now,
	}, nil
}

// ToTaxRegion validates dto and returns the region code to resolve
func ToTaxRegion(dto types.TaxRequest) (string, error) {
	if err := types.Validate(dto); err != nil {
		return "", err
	}
	return dto.Region, nil
}

// MapQuoteResponse maps an engine quote to the API response
// This is a PURE function - no side effects, no state
func MapQuoteResponse(q *engine.QuoteResult, duration time.Duration, config MapperConfig) types.QuoteResponse {
	r := q.Result
	items := make([]types.LineItemDTO, 0, len(r.LineItems))
	for _, it := range r.LineItems {
		items = append(items, types.LineItemDTO{
			DocumentID:          it.DocumentID,
			DocumentType:        it.DocumentType,
			IsNotarized:         it.IsNotarized,
			BillablePages:       it.BillablePages.String(),
			TranslationCharge:   money(it.TranslationCharge),
			CertificationCharge: money(it.CertificationCharge),
			LineTotal:           money(it.LineTotal),
		})
	}

	delivery := r.DeliveryCodes
	if delivery == nil {
		delivery = []string{}
	}

	return types.QuoteResponse{
		Metadata: metadata(q.Fingerprint.String(), q.RegimeID, q.Now, duration, config),
		Summary: types.SummaryDTO{
			Currency:           string(r.Currency),
			TranslationTotal:   money(r.TranslationTotal),
			CertificationTotal: money(r.CertificationTotal),
			Subtotal:           money(r.Subtotal),
			TurnaroundFee:      money(r.TurnaroundFee),
			DeliveryFee:        money(r.DeliveryFee),
			TaxName:            r.TaxName,
			TaxRate:            r.TaxRate.String(),
			TaxAmount:          money(r.TaxAmount),
			Total:              money(r.Total),
			BillablePages:      r.BillablePageTotal.String(),
		},
		LineItems:             items,
		EstimatedDeliveryDate: r.EstimatedDeliveryDate.String(),
		Tier:                  r.TierCode,
		Delivery:              delivery,
	}
}

// MapOptionsResponse maps a tier preview to the API response
func MapOptionsResponse(o *engine.OptionsResult, now time.Time, duration time.Duration, config MapperConfig) types.OptionsResponse {
	opts := make([]types.TierOptionDTO, 0, len(o.Options))
	for _, opt := range o.Options {
		opts = append(opts, types.TierOptionDTO{
			Code:         opt.Code,
			Name:         opt.Name,
			IsDefault:    opt.IsDefault,
			Available:    opt.Available,
			Reason:       string(opt.Reason),
			Fee:          money(opt.Fee),
			DeliveryDate: opt.DeliveryDate.String(),
		})
	}
	return types.OptionsResponse{
		Metadata:           metadata(o.Fingerprint.String(), o.RegimeID, now.UTC(), duration, config),
		EffectiveStartDate: o.EffectiveStartDate.String(),
		Options:            opts,
	}
}

// MapTaxResponse maps a resolved tax region to the API response
func MapTaxResponse(r coretypes.TaxRegion) types.TaxResponse {
	comps := make([]types.TaxComponentDTO, 0, len(r.Components))
	for _, c := range r.Components {
		comps = append(comps, types.TaxComponentDTO{Name: c.Name, Rate: c.Rate.String()})
	}
	return types.TaxResponse{
		Region:     r.RegionCode,
		Name:       r.DisplayName,
		TotalRate:  r.TotalRate.String(),
		Components: comps,
	}
}

func metadata(fingerprint, regimeID string, now time.Time, duration time.Duration, config MapperConfig) types.MetadataDTO {
	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = "v1"
	}
	return types.MetadataDTO{
		Fingerprint:   fingerprint,
		RegimeID:      regimeID,
		EngineVersion: config.EngineVersion,
		Now:           now,
		DurationMs:    duration.Milliseconds(),
		APIVersion:    apiVersion,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}
