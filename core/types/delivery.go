package types

import "github.com/shopspring/decimal"

// DeliveryKind separates zero-fee digital handoff from shipped copies
type DeliveryKind string

const (
	DeliveryDigital  DeliveryKind = "digital"
	DeliveryPhysical DeliveryKind = "physical"
)

// DeliveryOption is one way a finished translation reaches the customer
type DeliveryOption struct {
	Code           string          `json:"code"`
	Name           string          `json:"name,omitempty"`
	Kind           DeliveryKind    `json:"kind"`
	Fee            decimal.Decimal `json:"fee"`
	EstimatedDays  int             `json:"estimated_days"`
	AlwaysSelected bool            `json:"always_selected"`
}

// DeliverySelection is the resolved set of options applied to a quote
type DeliverySelection struct {
	Included    []DeliveryOption `json:"included"`
	Fee         decimal.Decimal  `json:"fee"`
	TransitDays int              `json:"transit_days"`
}

// Codes returns the codes of the included options
func (s DeliverySelection) Codes() []string {
	out := make([]string, 0, len(s.Included))
	for _, o := range s.Included {
		out = append(out, o.Code)
	}
	return out
}
