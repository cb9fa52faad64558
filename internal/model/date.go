package model

import (
	"fmt"
	"time"
)

// Date is a civil calendar date: year, month, day, with no time of day and
// no location. Puzzles are keyed by civil dates so that a timezone offset
// or a DST transition can never shift a puzzle across midnight.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from components, normalizing out-of-range values
// the way time.Date does (e.g. February 30 rolls into March).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the civil date observed at t in t's location, dropping
// the clock.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today is the current civil date in local time.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String renders the date in ISO YYYY-MM-DD form, the canonical key used
// for scheduling and persistence.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// midnightUTC anchors the date at UTC midnight. All day arithmetic runs
// through this fixed-offset instant, which keeps it immune to DST: days
// are always exactly 24 hours apart in UTC.
func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days after d; n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnightUTC().AddDate(0, 0, n))
}

// DaysSince returns the whole days elapsed from o to d, negative when d
// precedes o.
func (d Date) DaysSince(o Date) int {
	return int(d.midnightUTC().Sub(o.midnightUTC()) / (24 * time.Hour))
}

// Before reports whether d falls earlier on the calendar than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d falls later on the calendar than o.
func (d Date) After(o Date) bool {
	return o.Before(d)
}
