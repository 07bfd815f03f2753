// Package types - Public API DTOs
// This package contains ONLY data transfer objects for the public API.
// NO ENGINE IMPORTS ALLOWED - this is the stable API contract.
package types

import "time"

// MetadataDTO provides audit and reproducibility information
type MetadataDTO struct {
	// Fingerprint identifies the regime and request; equal fingerprints
	// always produce equal quotes
	Fingerprint string `json:"fingerprint,omitempty"`

	// RegimeID identifies the pricing regime used
	RegimeID string `json:"regime_id,omitempty"`

	// EngineVersion identifies the build that produced this result
	EngineVersion string `json:"engine_version"`

	// Now is the instant the quote was computed for
	Now time.Time `json:"now"`

	// DurationMs is processing time in milliseconds
	DurationMs int64 `json:"duration_ms"`

	// APIVersion is the API version (e.g., "v1")
	APIVersion string `json:"api_version"`
}

// QuoteResponse is the public response for POST /v1/quotes.
// Amounts are decimal strings with two places.
type QuoteResponse struct {
	Metadata MetadataDTO `json:"metadata"`
	Summary  SummaryDTO  `json:"summary"`

	LineItems []LineItemDTO `json:"line_items"`

	// EstimatedDeliveryDate as YYYY-MM-DD
	EstimatedDeliveryDate string   `json:"estimated_delivery_date"`
	Tier                  string   `json:"tier"`
	Delivery              []string `json:"delivery"`
}

// SummaryDTO is the price breakdown
type SummaryDTO struct {
	Currency           string `json:"currency"`
	TranslationTotal   string `json:"translation_total"`
	CertificationTotal string `json:"certification_total"`
	Subtotal           string `json:"subtotal"`
	TurnaroundFee      string `json:"turnaround_fee"`
	DeliveryFee        string `json:"delivery_fee"`
	TaxName            string `json:"tax_name"`
	TaxRate            string `json:"tax_rate"`
	TaxAmount          string `json:"tax_amount"`
	Total              string `json:"total"`
	BillablePages      string `json:"billable_pages"`
}

// LineItemDTO is one priced document
type LineItemDTO struct {
	DocumentID          string `json:"document_id,omitempty"`
	DocumentType        string `json:"document_type,omitempty"`
	IsNotarized         bool   `json:"is_notarized"`
	BillablePages       string `json:"billable_pages"`
	TranslationCharge   string `json:"translation_charge"`
	CertificationCharge string `json:"certification_charge"`
	LineTotal           string `json:"line_total"`
}

// OptionsResponse is the public response for POST /v1/quotes/options
type OptionsResponse struct {
	Metadata           MetadataDTO     `json:"metadata"`
	EffectiveStartDate string          `json:"effective_start_date"`
	Options            []TierOptionDTO `json:"options"`
}

// TierOptionDTO is one turnaround tier as the quote wizard shows it
type TierOptionDTO struct {
	Code      string `json:"code"`
	Name      string `json:"name,omitempty"`
	IsDefault bool   `json:"is_default"`
	Available bool   `json:"available"`

	// Reason is set when Available is false
	Reason string `json:"reason,omitempty"`

	Fee          string `json:"fee"`
	DeliveryDate string `json:"delivery_date"`
}

// TaxResponse is the public response for POST /v1/tax/resolve
type TaxResponse struct {
	Region     string            `json:"region"`
	Name       string            `json:"name"`
	TotalRate  string            `json:"total_rate"`
	Components []TaxComponentDTO `json:"components"`
}

// TaxComponentDTO is one stacked tax
type TaxComponentDTO struct {
	Name string `json:"name"`
	Rate string `json:"rate"`
}
