package delivery

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

func options() []types.DeliveryOption {
	return []types.DeliveryOption{
		{Code: "online_portal", Kind: types.DeliveryDigital, Fee: decimal.Zero, AlwaysSelected: true},
		{Code: "email", Kind: types.DeliveryDigital, Fee: decimal.Zero},
		{Code: "canada_post", Kind: types.DeliveryPhysical, Fee: decimal.RequireFromString("12.50"), EstimatedDays: 3},
		{Code: "courier", Kind: types.DeliveryPhysical, Fee: decimal.RequireFromString("35"), EstimatedDays: 1},
	}
}

func TestResolveDefaultsToPortal(t *testing.T) {
	sel, err := Resolve(options())
	require.NoError(t, err)
	assert.Equal(t, []string{"online_portal"}, sel.Codes())
	assert.True(t, sel.Fee.IsZero())
	assert.Zero(t, sel.TransitDays)
}

func TestResolvePhysical(t *testing.T) {
	sel, err := Resolve(options(), "email", "canada_post", "online_portal")
	require.NoError(t, err)
	assert.Equal(t, []string{"online_portal", "email", "canada_post"}, sel.Codes())
	assert.Equal(t, "12.5", sel.Fee.String())
	assert.Equal(t, 3, sel.TransitDays)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		options  func() []types.DeliveryOption
		selected []string
	}{
		{"unknown code", options, []string{"pigeon"}},
		{"two physical", options, []string{"canada_post", "courier"}},
		{"paid digital", func() []types.DeliveryOption {
			o := options()
			o[1].Fee = decimal.NewFromInt(1)
			return o
		}, nil},
		{"no portal", func() []types.DeliveryOption {
			o := options()
			o[0].AlwaysSelected = false
			return o
		}, nil},
		{"two portals", func() []types.DeliveryOption {
			o := options()
			o[1].AlwaysSelected = true
			return o
		}, nil},
		{"always-selected physical", func() []types.DeliveryOption {
			o := options()
			o[3].AlwaysSelected = true
			o[0].AlwaysSelected = false
			return o
		}, nil},
		{"unknown kind", func() []types.DeliveryOption {
			o := options()
			o[2].Kind = "drone"
			return o
		}, nil},
		{"duplicate code", func() []types.DeliveryOption {
			o := options()
			o[3].Code = "canada_post"
			return o
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.options(), tt.selected...)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeInvalidArgument), "%v", err)
		})
	}
}
