package types

import "sort"

// Holiday is one non-working date. An empty Region means the holiday applies
// everywhere.
type Holiday struct {
	Date   Date   `json:"date"`
	Region string `json:"region,omitempty"`
	Name   string `json:"name,omitempty"`
}

// HolidaySet is an immutable snapshot of dates excluded from business-day
// counting. The zero value is an empty set.
type HolidaySet struct {
	dates map[Date]struct{}
}

// NewHolidaySet builds a set from plain dates.
func NewHolidaySet(dates ...Date) HolidaySet {
	m := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		m[d] = struct{}{}
	}
	return HolidaySet{dates: m}
}

// HolidaysFor builds the set that applies to region: every global holiday
// plus the holidays qualified with region. Region matching is exact; callers
// normalize codes first.
func HolidaysFor(holidays []Holiday, region string) HolidaySet {
	m := make(map[Date]struct{}, len(holidays))
	for _, h := range holidays {
		if h.Region == "" || h.Region == region {
			m[h.Date] = struct{}{}
		}
	}
	return HolidaySet{dates: m}
}

// Contains reports whether d is a holiday.
func (h HolidaySet) Contains(d Date) bool {
	_, ok := h.dates[d]
	return ok
}

// Len returns the number of dates in the set.
func (h HolidaySet) Len() int {
	return len(h.dates)
}

// Dates returns the dates in ascending order.
func (h HolidaySet) Dates() []Date {
	out := make([]Date, 0, len(h.dates))
	for d := range h.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Cutoff is a time-of-day boundary in a named IANA time zone.
type Cutoff struct {
	TimeZone string `json:"time_zone"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
}
