package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

var edmonton = types.Cutoff{TimeZone: "America/Edmonton", Hour: 14, Minute: 30}

func d(s string) types.Date {
	return types.MustParseDate(s)
}

func TestIsBusinessDay(t *testing.T) {
	holidays := types.NewHolidaySet(d("2026-12-25"))

	assert.True(t, IsBusinessDay(d("2026-10-16"), holidays))
	assert.False(t, IsBusinessDay(d("2026-10-17"), holidays), "saturday")
	assert.False(t, IsBusinessDay(d("2026-10-18"), holidays), "sunday")
	assert.False(t, IsBusinessDay(d("2026-12-25"), holidays), "holiday")
}

func TestAddBusinessDays(t *testing.T) {
	friday := d("2026-10-16")

	tests := []struct {
		name     string
		start    types.Date
		n        int
		holidays types.HolidaySet
		want     types.Date
	}{
		{"zero returns start", friday, 0, types.HolidaySet{}, friday},
		{"zero on weekend returns start", d("2026-10-17"), 0, types.HolidaySet{}, d("2026-10-17")},
		{"friday plus one skips weekend", friday, 1, types.HolidaySet{}, d("2026-10-19")},
		{"monday holiday also skipped", friday, 1, types.NewHolidaySet(d("2026-10-19")), d("2026-10-20")},
		{"five days is next friday", friday, 5, types.HolidaySet{}, d("2026-10-23")},
		{"christmas week", d("2026-12-24"), 2, types.NewHolidaySet(d("2026-12-25"), d("2026-12-28")), d("2026-12-30")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddBusinessDays(tt.start, tt.n, tt.holidays)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddBusinessDaysRejectsNegative(t *testing.T) {
	_, err := AddBusinessDays(d("2026-10-16"), -1, types.HolidaySet{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
}

func TestAddBusinessDaysIsBounded(t *testing.T) {
	start := d("2026-10-16")

	end, err := AddBusinessDays(start, MaxBusinessDays, types.HolidaySet{})
	require.NoError(t, err)
	assert.Equal(t, MaxBusinessDays, CountBusinessDays(start, end, types.HolidaySet{}))

	for _, n := range []int{MaxBusinessDays + 1, 1 << 40} {
		_, err := AddBusinessDays(start, n, types.HolidaySet{})
		require.Error(t, err, n)
		assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
	}
}

func TestCountBusinessDaysInvertsAdd(t *testing.T) {
	holidays := types.NewHolidaySet(d("2026-10-19"), d("2026-11-11"))
	start := d("2026-10-16")
	for n := 0; n <= 30; n++ {
		end, err := AddBusinessDays(start, n, holidays)
		require.NoError(t, err)
		assert.Equal(t, n, CountBusinessDays(start, end, holidays))
	}
}

func TestNextBusinessDay(t *testing.T) {
	assert.Equal(t, d("2026-10-16"), NextBusinessDay(d("2026-10-16"), types.HolidaySet{}))
	assert.Equal(t, d("2026-10-20"), NextBusinessDay(d("2026-10-17"), types.NewHolidaySet(d("2026-10-19"))))
}

func TestResolveEffectiveStartDate(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want types.Date
	}{
		// Edmonton is UTC-6 in October.
		{"before cutoff counts today", time.Date(2026, 10, 16, 20, 29, 0, 0, time.UTC), d("2026-10-16")},
		{"exactly at cutoff rolls over", time.Date(2026, 10, 16, 20, 30, 0, 0, time.UTC), d("2026-10-17")},
		{"after cutoff rolls over", time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC), d("2026-10-17")},
		{"local evening is still past cutoff", time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC), d("2026-10-17")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveEffectiveStartDate(tt.now, edmonton)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsBeforeCutoff(t *testing.T) {
	before := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)
	after := time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

	ok, err := IsBeforeCutoff(before, edmonton, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsBeforeCutoff(after, edmonton, true)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsBeforeCutoff(saturday, edmonton, true)
	require.NoError(t, err)
	assert.False(t, ok, "weekends are closed when weekdaysOnly")

	ok, err = IsBeforeCutoff(saturday, edmonton, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCutoffValidation(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	bad := []types.Cutoff{
		{TimeZone: "America/Edmonton", Hour: 24},
		{TimeZone: "America/Edmonton", Hour: 10, Minute: 60},
		{TimeZone: "Mars/Olympus", Hour: 10},
		{Hour: 10},
	}
	for _, c := range bad {
		_, err := IsBeforeCutoff(now, c, false)
		assert.Truef(t, errors.IsType(err, errors.TypeInvalidArgument), "cutoff %+v: %v", c, err)
	}
}

func TestLocalDate(t *testing.T) {
	got, err := LocalDate(time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC), edmonton)
	require.NoError(t, err)
	assert.Equal(t, d("2026-10-16"), got)
}
