// Package timeutil holds the time-zone conversion boundary and the duration
// display convention shared by the report engine and its callers.
//
// Instants are stored in UTC and bucketed in a single reporting time zone.
// UTC to local is offset-based and always defined. Local to UTC is not: a
// wall-clock value inside a daylight-saving gap has no UTC instant, and one
// inside a repeated hour has two. Both cases surface as ErrBadLocalTime
// rather than being silently resolved.
package timeutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/simmons/punch/internal/models"
)

// ErrBadLocalTime indicates a local wall-clock value that does not
// correspond to exactly one UTC instant.
var ErrBadLocalTime = errors.New("local time is skipped or ambiguous")

// reportWeeksInPast is how far back the summary window reaches.
const reportWeeksInPast = 5

// FormatElapsed renders a duration as "<hours>h<minutes>m" with minutes
// floored. Hours may exceed 24.
func FormatElapsed(d time.Duration) string {
	total := int64(d / time.Minute)
	return fmt.Sprintf("%dh%dm", total/60, total%60)
}

// ToLocal converts a UTC instant into the reporting time zone.
func ToLocal(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// ToUTC maps a local wall-clock value (date plus time of day in loc) to its
// unique UTC instant. It fails with ErrBadLocalTime when the wall clock
// falls in a daylight-saving gap (no instant) or a repeated hour (two
// instants).
func ToUTC(d models.Date, hour, min, sec int, loc *time.Location) (time.Time, error) {
	t := time.Date(d.Year, d.Month, d.Day, hour, min, sec, 0, loc)

	// time.Date normalizes wall clocks inside a DST gap to a different
	// reading, so a round-trip mismatch means the requested time never
	// occurred.
	if !sameWall(t, d, hour, min, sec) {
		return time.Time{}, fmt.Errorf("%w: %s %02d:%02d:%02d does not exist in %s",
			ErrBadLocalTime, d, hour, min, sec, loc)
	}

	// A repeated hour yields a second instant with the same reading. DST
	// shifts are an hour in almost every zone, half an hour in a few.
	for _, delta := range []time.Duration{-time.Hour, time.Hour, -30 * time.Minute, 30 * time.Minute} {
		alt := t.Add(delta).In(loc)
		if sameWall(alt, d, hour, min, sec) {
			return time.Time{}, fmt.Errorf("%w: %s %02d:%02d:%02d occurs twice in %s",
				ErrBadLocalTime, d, hour, min, sec, loc)
		}
	}

	return t.UTC(), nil
}

// sameWall reports whether t reads as the given date and time of day.
func sameWall(t time.Time, d models.Date, hour, min, sec int) bool {
	y, m, day := t.Date()
	return y == d.Year && m == d.Month && day == d.Day &&
		t.Hour() == hour && t.Minute() == min && t.Second() == sec
}

// MondayOnOrBefore walks back from d to the nearest Monday.
func MondayOnOrBefore(d models.Date) models.Date {
	for d.Weekday() != time.Monday {
		d = d.AddDays(-1)
	}
	return d
}

// WindowStart returns the first day of the reporting window: the Monday on
// or before five weeks ago, relative to today.
func WindowStart(today models.Date) models.Date {
	return MondayOnOrBefore(today.AddDays(-7 * reportWeeksInPast))
}
