// Package delivery resolves the delivery options attached to a quote.
//
// Every option set carries exactly one always-selected digital option (the
// customer portal) which is included implicitly and cannot be deselected.
// Digital options never cost anything; at most one physical option may be
// chosen on top, and its transit days push the delivery date out.
package delivery

import (
	"strings"

	"github.com/shopspring/decimal"

	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

// Validate checks an option set.
func Validate(options []types.DeliveryOption) error {
	seen := make(map[string]bool, len(options))
	always := 0
	for _, o := range options {
		if strings.TrimSpace(o.Code) == "" {
			return errors.InvalidArgument("delivery option code is required")
		}
		if seen[o.Code] {
			return errors.InvalidArgument("duplicate delivery option %q", o.Code)
		}
		seen[o.Code] = true

		if o.Fee.IsNegative() {
			return errors.InvalidArgument("delivery option %q fee must be non-negative, got %s", o.Code, o.Fee)
		}
		if o.EstimatedDays < 0 {
			return errors.InvalidArgument("delivery option %q estimated days must be non-negative, got %d", o.Code, o.EstimatedDays)
		}
		switch o.Kind {
		case types.DeliveryDigital:
			if !o.Fee.IsZero() {
				return errors.InvalidArgument("digital delivery option %q must be free, got %s", o.Code, o.Fee)
			}
		case types.DeliveryPhysical:
			if o.AlwaysSelected {
				return errors.InvalidArgument("physical delivery option %q cannot be always selected", o.Code)
			}
		default:
			return errors.InvalidArgument("delivery option %q has unknown kind %q", o.Code, o.Kind)
		}
		if o.AlwaysSelected {
			always++
		}
	}
	if always != 1 {
		return errors.InvalidArgument("exactly one always-selected digital option is required, found %d", always)
	}
	return nil
}

// Resolve returns the always-selected option plus the options named in
// selected. Naming the always-selected option again is a no-op. The fee is the
// sum of the included fees and TransitDays comes from the physical option.
func Resolve(options []types.DeliveryOption, selected ...string) (types.DeliverySelection, error) {
	if err := Validate(options); err != nil {
		return types.DeliverySelection{}, err
	}

	byCode := make(map[string]types.DeliveryOption, len(options))
	for _, o := range options {
		byCode[o.Code] = o
	}

	out := types.DeliverySelection{Fee: decimal.Zero}
	included := make(map[string]bool, len(selected)+1)
	for _, o := range options {
		if o.AlwaysSelected {
			out.Included = append(out.Included, o)
			included[o.Code] = true
		}
	}

	physical := ""
	for _, code := range selected {
		code = strings.TrimSpace(code)
		if code == "" || included[code] {
			continue
		}
		o, ok := byCode[code]
		if !ok {
			return types.DeliverySelection{}, errors.InvalidArgument("unknown delivery option %q", code)
		}
		if o.Kind == types.DeliveryPhysical {
			if physical != "" {
				return types.DeliverySelection{}, errors.InvalidArgument("only one physical delivery option may be selected, got %q and %q", physical, code)
			}
			physical = code
			out.TransitDays = o.EstimatedDays
		}
		out.Included = append(out.Included, o)
		included[code] = true
	}

	for _, o := range out.Included {
		out.Fee = out.Fee.Add(o.Fee)
	}
	return out, nil
}

// DigitalOnly is the selection used when a caller supplies no option set:
// nothing to ship, nothing to charge.
func DigitalOnly() types.DeliverySelection {
	return types.DeliverySelection{Fee: decimal.Zero}
}
