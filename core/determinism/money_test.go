package determinism

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCeilToUnit(t *testing.T) {
	tests := []struct {
		in, unit, want string
	}{
		{"143", "2.5", "145"},
		{"145", "2.5", "145"},
		{"0.01", "2.5", "2.5"},
		{"65", "1", "65"},
		{"130.5", "0.25", "130.5"},
	}
	for _, tt := range tests {
		got := CeilToUnit(dec(tt.in), dec(tt.unit))
		assert.Truef(t, got.Equal(dec(tt.want)), "CeilToUnit(%s, %s) = %s, want %s", tt.in, tt.unit, got, tt.want)
		assert.True(t, IsMultipleOf(got, dec(tt.unit)))
	}
}

func TestCeilTenth(t *testing.T) {
	assert.True(t, CeilTenth(dec("2.2")).Equal(dec("2.2")))
	assert.True(t, CeilTenth(dec("2.21")).Equal(dec("2.3")))
	assert.True(t, CeilTenth(dec("0")).Equal(dec("0")))
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "7.25", Round2(dec("7.25")).StringFixed(2))
	assert.Equal(t, "0.13", Round2(dec("0.125")).StringFixed(2))
	assert.Equal(t, "43.50", Round2(Percent(dec("145"), dec("30"))).StringFixed(2))
}

func TestSumAndMax(t *testing.T) {
	assert.True(t, Sum().IsZero())
	assert.True(t, Sum(dec("1.5"), dec("2.25")).Equal(dec("3.75")))
	assert.True(t, MaxDecimal(dec("3"), dec("4")).Equal(dec("4")))
	assert.False(t, IsMultipleOf(dec("3"), decimal.Zero))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "152.25 CAD", FormatMoney(dec("152.25"), "CAD"))
	assert.Equal(t, "3.00", FormatMoney(dec("3"), ""))
}

func TestFingerprintIsStable(t *testing.T) {
	type payload struct {
		Words  int               `json:"words"`
		Labels map[string]string `json:"labels"`
	}
	a, err := Fingerprint(payload{Words: 500, Labels: map[string]string{"b": "2", "a": "1"}})
	require.NoError(t, err)
	b, err := Fingerprint(payload{Words: 500, Labels: map[string]string{"a": "1", "b": "2"}})
	require.NoError(t, err)
	c, err := Fingerprint(payload{Words: 501})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 5, int(a.Version()))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"AB", "BC", "ON"}, SortedKeys(map[string]int{"ON": 1, "AB": 2, "BC": 3}))
}
