package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day and no zone. Day boundaries are
// only meaningful once a Date is placed in a location with StartIn.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the triple and returns the Date it names.
// Out-of-range components are rejected, never normalized: 2023-02-29 is an
// error rather than 2023-03-01.
func NewDate(year, month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, NewValidationError("year", fmt.Sprintf("%d is out of range", year), ErrInvalidDate)
	}
	if month < 1 || month > 12 {
		return Date{}, NewValidationError("month", fmt.Sprintf("%d is out of range", month), ErrInvalidDate)
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return Date{}, NewValidationError("day", fmt.Sprintf("%d is out of range", day), ErrInvalidDate)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// maxSkippedDays bounds the search for the next day that exists in a zone.
// Real zones have skipped at most one calendar day.
const maxSkippedDays = 3

// StartIn returns the first instant of d in loc. When local midnight falls in
// a DST gap the day starts at the end of the gap (01:00 in America/Santiago on
// 2023-09-03). It fails with ErrInvalidDate only when the zone skipped the
// whole day (for example Pacific/Apia on 2011-12-30).
func (d Date) StartIn(loc *time.Location) (time.Time, error) {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)

	// Inside a gap time.Date may land on the previous local day. The end of
	// that zone period is the first instant after the transition.
	for DateOf(t).Before(d) {
		_, end := t.ZoneBounds()
		if end.IsZero() || !end.After(t) {
			break
		}
		t = end
	}

	if DateOf(t) != d {
		return time.Time{}, NewValidationError("date", fmt.Sprintf("%s does not exist in %s", d, loc), ErrInvalidDate)
	}
	return t, nil
}

// BoundsIn returns the first and last instant of d in loc. The span follows
// the zone's calendar, so it is 23 or 25 hours long on DST transition days.
// The day ends one nanosecond before the next day that exists in loc starts.
func (d Date) BoundsIn(loc *time.Location) (time.Time, time.Time, error) {
	start, err := d.StartIn(loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	next := d
	for range maxSkippedDays {
		next = next.AddDays(1)
		nextStart, err := next.StartIn(loc)
		if err == nil {
			return start, nextStart.Add(-time.Nanosecond), nil
		}
	}
	return time.Time{}, time.Time{}, NewValidationError("date",
		fmt.Sprintf("no day after %s exists in %s", d, loc), ErrInvalidDate)
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
