package types

import "github.com/shopspring/decimal"

// ComplexityTier classifies how hard a document is to translate
type ComplexityTier string

const (
	ComplexitySimple        ComplexityTier = "simple"
	ComplexityStandard      ComplexityTier = "standard"
	ComplexityComplex       ComplexityTier = "complex"
	ComplexityHighlyComplex ComplexityTier = "highly_complex"
)

// IsValid checks if the tier is one of the known tiers
func (c ComplexityTier) IsValid() bool {
	switch c {
	case ComplexitySimple, ComplexityStandard, ComplexityComplex, ComplexityHighlyComplex:
		return true
	default:
		return false
	}
}

// DefaultComplexityMultipliers returns the multiplier table most pricing
// regimes start from. The engine never applies it implicitly.
func DefaultComplexityMultipliers() map[ComplexityTier]decimal.Decimal {
	return map[ComplexityTier]decimal.Decimal{
		ComplexitySimple:        decimal.NewFromInt(1),
		ComplexityStandard:      decimal.NewFromInt(1),
		ComplexityComplex:       decimal.RequireFromString("1.15"),
		ComplexityHighlyComplex: decimal.RequireFromString("1.5"),
	}
}

// DocumentInput is one source document as analysed upstream
type DocumentInput struct {
	// ID is an opaque caller identifier, echoed on the line item
	ID string `json:"id,omitempty"`

	// DocumentType is the detected type (e.g. "birth_certificate"), used for
	// same-day eligibility matching
	DocumentType string `json:"document_type,omitempty"`

	// WordCount is the extracted word count
	WordCount int `json:"word_count"`

	// Complexity selects the multiplier
	Complexity ComplexityTier `json:"complexity"`

	// CertificationPrice is resolved externally from the certification type
	CertificationPrice decimal.Decimal `json:"certification_price"`

	// IsNotarized excludes the document from rush-eligible work
	IsNotarized bool `json:"is_notarized"`
}

// PricingConfig is one pricing regime. Every entry point takes it explicitly.
type PricingConfig struct {
	Currency              Currency                           `json:"currency"`
	BaseRatePerPage       decimal.Decimal                    `json:"base_rate_per_page"`
	WordsPerPage          decimal.Decimal                    `json:"words_per_page"`
	RoundingUnit          decimal.Decimal                    `json:"rounding_unit"`
	ComplexityMultipliers map[ComplexityTier]decimal.Decimal `json:"complexity_multipliers"`
}

// LineItem is the priced form of one DocumentInput
type LineItem struct {
	DocumentID          string          `json:"document_id,omitempty"`
	DocumentType        string          `json:"document_type,omitempty"`
	IsNotarized         bool            `json:"is_notarized"`
	Multiplier          decimal.Decimal `json:"multiplier"`
	BillablePages       decimal.Decimal `json:"billable_pages"`
	TranslationCharge   decimal.Decimal `json:"translation_charge"`
	CertificationCharge decimal.Decimal `json:"certification_charge"`
	LineTotal           decimal.Decimal `json:"line_total"`
}
