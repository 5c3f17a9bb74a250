package models

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day or zone attached, used to key
// daily buckets in the reporting time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date from a timestamp, as observed in that
// timestamp's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// midnight returns the date at 00:00:00 UTC, used for calendar arithmetic
// only (never as a real instant).
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (earlier for negative n),
// normalizing across month and year boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.midnight().Weekday()
}

// WeekdayIndex returns the number of days since the most recent Monday
// (Monday = 0 ... Sunday = 6).
func (d Date) WeekdayIndex() int {
	return (int(d.Weekday()) + 6) % 7
}

// ISOWeek returns the ISO 8601 week this date falls in.
func (d Date) ISOWeek() ISOWeek {
	y, w := d.midnight().ISOWeek()
	return ISOWeek{Year: y, Week: w}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ISOWeek identifies a week under the ISO 8601 week-numbering convention.
// The year is the ISO week-year, which can differ from the calendar year
// near January 1st.
type ISOWeek struct {
	Year int
	Week int
}

// Before orders weeks by (year, week number).
func (w ISOWeek) Before(other ISOWeek) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}

func (w ISOWeek) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
