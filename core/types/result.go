package types

import "github.com/shopspring/decimal"

// PricingResult is the immutable breakdown of one quote. Currency fields are
// rounded to cents:
//
//	Subtotal  = TranslationTotal + CertificationTotal
//	TaxAmount = round2((Subtotal + TurnaroundFee + DeliveryFee) * TaxRate)
//	Total     = round2(Subtotal + TurnaroundFee + DeliveryFee + TaxAmount)
type PricingResult struct {
	Currency Currency `json:"currency"`

	TranslationTotal   decimal.Decimal `json:"translation_total"`
	CertificationTotal decimal.Decimal `json:"certification_total"`
	TurnaroundFee      decimal.Decimal `json:"turnaround_fee"`
	DeliveryFee        decimal.Decimal `json:"delivery_fee"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	Total              decimal.Decimal `json:"total"`

	EstimatedDeliveryDate Date `json:"estimated_delivery_date"`

	TierCode             string          `json:"tier_code"`
	TaxName              string          `json:"tax_name"`
	DeliveryCodes        []string        `json:"delivery_codes"`
	BillablePageTotal    decimal.Decimal `json:"billable_page_total"`
	RushEligibleSubtotal decimal.Decimal `json:"rush_eligible_subtotal"`
	LineItems            []LineItem      `json:"line_items"`
}

// TaxableAmount returns Subtotal + TurnaroundFee + DeliveryFee
func (r PricingResult) TaxableAmount() decimal.Decimal {
	return r.Subtotal.Add(r.TurnaroundFee).Add(r.DeliveryFee)
}
