// Package calendar implements business-day arithmetic and time-zone bound
// cutoffs. Nothing here reads the system clock; "now" is always an argument.
package calendar

import (
	"time"

	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

// MaxBusinessDays bounds every forward scan. No turnaround or transit promise
// runs past roughly a year and a half of working days.
const MaxBusinessDays = 365

// IsBusinessDay is false for Saturday, Sunday and any date in holidays.
func IsBusinessDay(d types.Date, holidays types.HolidaySet) bool {
	return !d.IsWeekend() && !holidays.Contains(d)
}

// AddBusinessDays walks forward one calendar day at a time, counting only
// business days, until n have been counted. n == 0 returns start unchanged.
// n must be in [0, MaxBusinessDays].
func AddBusinessDays(start types.Date, n int, holidays types.HolidaySet) (types.Date, error) {
	if n < 0 {
		return types.Date{}, errors.InvalidArgument("business day count must be non-negative, got %d", n)
	}
	if n > MaxBusinessDays {
		return types.Date{}, errors.InvalidArgument("business day count %d exceeds the maximum of %d", n, MaxBusinessDays)
	}
	d := start
	for counted := 0; counted < n; {
		d = d.AddDays(1)
		if IsBusinessDay(d, holidays) {
			counted++
		}
	}
	return d, nil
}

// CountBusinessDays returns the number of business days in (from, to].
func CountBusinessDays(from, to types.Date, holidays types.HolidaySet) int {
	count := 0
	for d := from.AddDays(1); !d.After(to); d = d.AddDays(1) {
		if IsBusinessDay(d, holidays) {
			count++
		}
	}
	return count
}

// NextBusinessDay returns d if it is a business day, else the first business
// day after it.
func NextBusinessDay(d types.Date, holidays types.HolidaySet) types.Date {
	for !IsBusinessDay(d, holidays) {
		d = d.AddDays(1)
	}
	return d
}

// Location loads the cutoff's time zone and validates its clock fields.
func Location(c types.Cutoff) (*time.Location, error) {
	if c.Hour < 0 || c.Hour > 23 {
		return nil, errors.InvalidArgument("cutoff hour must be in [0,23], got %d", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return nil, errors.InvalidArgument("cutoff minute must be in [0,59], got %d", c.Minute)
	}
	if c.TimeZone == "" {
		return nil, errors.InvalidArgument("cutoff time zone is required")
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInvalidArgument, err, "unknown time zone %q", c.TimeZone)
	}
	return loc, nil
}

// LocalDate returns the calendar date of now in the cutoff's time zone.
func LocalDate(now time.Time, c types.Cutoff) (types.Date, error) {
	loc, err := Location(c)
	if err != nil {
		return types.Date{}, err
	}
	return types.DateOf(now.In(loc)), nil
}

// pastCutoff reports whether local wall-clock time is at or after the cutoff.
func pastCutoff(local time.Time, c types.Cutoff) bool {
	if local.Hour() != c.Hour {
		return local.Hour() > c.Hour
	}
	return local.Minute() >= c.Minute
}

// ResolveEffectiveStartDate converts now into the cutoff's zone and returns the
// local date, or the next calendar day when the local time is at or after the
// cutoff. The result is day zero of turnaround counting.
func ResolveEffectiveStartDate(now time.Time, c types.Cutoff) (types.Date, error) {
	loc, err := Location(c)
	if err != nil {
		return types.Date{}, err
	}
	local := now.In(loc)
	today := types.DateOf(local)
	if pastCutoff(local, c) {
		return today.AddDays(1), nil
	}
	return today, nil
}

// IsBeforeCutoff reports whether now is strictly before the cutoff in the
// cutoff's zone. With weekdaysOnly it is always false on Saturday and Sunday.
func IsBeforeCutoff(now time.Time, c types.Cutoff, weekdaysOnly bool) (bool, error) {
	loc, err := Location(c)
	if err != nil {
		return false, err
	}
	local := now.In(loc)
	if weekdaysOnly && types.DateOf(local).IsWeekend() {
		return false, nil
	}
	return !pastCutoff(local, c), nil
}
