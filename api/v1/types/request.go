// Package types - Request DTOs
package types

import "time"

// QuoteRequest is the public request for POST /v1/quotes and
// POST /v1/quotes/options. The CLI reads the same shape from order files.
type QuoteRequest struct {
	// Documents are the analysed source documents
	Documents []DocumentDTO `json:"documents" validate:"required,min=1,max=200,dive"`

	// Tier is the turnaround tier code; empty selects the default tier
	Tier string `json:"tier,omitempty" validate:"omitempty,max=32"`

	// Region is the billing region (e.g. "CA-AB"); empty uses the server default
	Region string `json:"region,omitempty" validate:"omitempty,max=16"`

	SourceLanguage string `json:"source_language,omitempty" validate:"omitempty,max=16"`
	TargetLanguage string `json:"target_language,omitempty" validate:"omitempty,max=16"`
	IntendedUse    string `json:"intended_use,omitempty" validate:"omitempty,max=64"`

	// Delivery names extra delivery options (e.g. "canada_post")
	Delivery []string `json:"delivery,omitempty" validate:"omitempty,max=4,dive,required,max=32"`

	// Now pins the quote instant; the server clock is used when absent
	Now *time.Time `json:"now,omitempty"`
}

// DocumentDTO is one source document
type DocumentDTO struct {
	ID           string `json:"id,omitempty" validate:"omitempty,max=64"`
	DocumentType string `json:"document_type,omitempty" validate:"omitempty,max=64"`
	WordCount    int    `json:"word_count" validate:"gte=0,lte=1000000"`

	// Complexity: "simple", "standard", "complex", "highly_complex"
	Complexity string `json:"complexity" validate:"required,oneof=simple standard complex highly_complex"`

	// CertificationPrice as decimal string (e.g., "24.95"); empty means none
	CertificationPrice string `json:"certification_price,omitempty" validate:"omitempty,numeric"`

	IsNotarized bool `json:"is_notarized,omitempty"`
}

// TaxRequest is the public request for POST /v1/tax/resolve
type TaxRequest struct {
	Region string `json:"region" validate:"required,max=16"`
}
