// Package lineitem turns one document into billable pages and a charge.
// Pure arithmetic: no calendar, no tax, no I/O.
package lineitem

import (
	"github.com/shopspring/decimal"

	"translation-quote/core/determinism"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

var one = decimal.NewFromInt(1)

// ValidateConfig fails fast on a regime that would divide by zero or price
// below zero.
func ValidateConfig(cfg types.PricingConfig) error {
	if !cfg.WordsPerPage.IsPositive() {
		return errors.InvalidArgument("words per page must be positive, got %s", cfg.WordsPerPage)
	}
	if !cfg.RoundingUnit.IsPositive() {
		return errors.InvalidArgument("rounding unit must be positive, got %s", cfg.RoundingUnit)
	}
	if cfg.BaseRatePerPage.IsNegative() {
		return errors.InvalidArgument("base rate per page must be non-negative, got %s", cfg.BaseRatePerPage)
	}
	for _, tier := range determinism.SortedKeys(cfg.ComplexityMultipliers) {
		if m := cfg.ComplexityMultipliers[tier]; !m.IsPositive() {
			return errors.InvalidArgument("complexity multiplier for %q must be positive, got %s", tier, m)
		}
	}
	return nil
}

// Multiplier returns the configured multiplier for a tier.
func Multiplier(cfg types.PricingConfig, tier types.ComplexityTier) (decimal.Decimal, error) {
	m, ok := cfg.ComplexityMultipliers[tier]
	if !ok {
		return decimal.Zero, errors.InvalidArgument("no complexity multiplier configured for %q", tier)
	}
	return m, nil
}

// BillablePages computes
//
//	max(1, ceil(round(wordCount / wordsPerPage * multiplier, 1) * 10) / 10)
//
// The result is always >= 1 and a multiple of 0.1. wordsPerPage must be
// positive; callers validate first.
func BillablePages(wordCount int, wordsPerPage, multiplier decimal.Decimal) decimal.Decimal {
	raw := decimal.NewFromInt(int64(wordCount)).Div(wordsPerPage).Mul(multiplier)
	pages := determinism.CeilTenth(raw.Round(1))
	if pages.LessThan(one) {
		return one
	}
	return pages
}

// TranslationCharge computes ceil(pages * rate / unit) * unit.
func TranslationCharge(pages, ratePerPage, unit decimal.Decimal) decimal.Decimal {
	return determinism.CeilToUnit(pages.Mul(ratePerPage), unit)
}

// Compute prices one document.
func Compute(doc types.DocumentInput, cfg types.PricingConfig) (types.LineItem, error) {
	if err := ValidateConfig(cfg); err != nil {
		return types.LineItem{}, err
	}
	return compute(doc, cfg)
}

// ComputeAll prices every document, validating the regime once. Item i of
// the result corresponds to docs[i].
func ComputeAll(docs []types.DocumentInput, cfg types.PricingConfig) ([]types.LineItem, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	items := make([]types.LineItem, 0, len(docs))
	for i, doc := range docs {
		item, err := compute(doc, cfg)
		if err != nil {
			if e, ok := errors.As(err); ok {
				e.WithContext("document_index", i)
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func compute(doc types.DocumentInput, cfg types.PricingConfig) (types.LineItem, error) {
	if doc.WordCount < 0 {
		return types.LineItem{}, errors.InvalidArgument("word count must be non-negative, got %d", doc.WordCount)
	}
	if doc.CertificationPrice.IsNegative() {
		return types.LineItem{}, errors.InvalidArgument("certification price must be non-negative, got %s", doc.CertificationPrice)
	}
	multiplier, err := Multiplier(cfg, doc.Complexity)
	if err != nil {
		return types.LineItem{}, err
	}

	pages := BillablePages(doc.WordCount, cfg.WordsPerPage, multiplier)
	translation := TranslationCharge(pages, cfg.BaseRatePerPage, cfg.RoundingUnit)

	return types.LineItem{
		DocumentID:          doc.ID,
		DocumentType:        doc.DocumentType,
		IsNotarized:         doc.IsNotarized,
		Multiplier:          multiplier,
		BillablePages:       pages,
		TranslationCharge:   translation,
		CertificationCharge: doc.CertificationPrice,
		LineTotal:           translation.Add(doc.CertificationPrice),
	}, nil
}

// Totals sums translation charges, certification charges and billable pages.
func Totals(items []types.LineItem) (translation, certification, pages decimal.Decimal) {
	translation, certification, pages = decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range items {
		translation = translation.Add(it.TranslationCharge)
		certification = certification.Add(it.CertificationCharge)
		pages = pages.Add(it.BillablePages)
	}
	return translation, certification, pages
}
