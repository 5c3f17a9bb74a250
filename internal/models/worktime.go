package models

import "time"

// WorkTime represents an amount of work in both gross and net forms. Net is
// gross minus the per-session overhead, floored at zero.
type WorkTime struct {
	Gross time.Duration
	Net   time.Duration
}

// WorkTimeFrom computes the net duration for a session of the given gross
// length under the given overhead deduction.
func WorkTimeFrom(gross, overhead time.Duration) WorkTime {
	net := gross - overhead
	if net < 0 {
		net = 0
	}
	return WorkTime{Gross: gross, Net: net}
}

// Add accumulates another WorkTime into this one.
func (w *WorkTime) Add(other WorkTime) {
	w.Gross += other.Gross
	w.Net += other.Net
}

// Interval is a reconstructed work session: a start instant in the
// reporting time zone and its accounted time. Intervals are derived values
// and are never persisted.
type Interval struct {
	Start time.Time
	Work  WorkTime
}

// NewInterval builds an interval for the session [start, end] under the
// given overhead. start and end must be in the reporting time zone with
// end >= start; events are pre-sorted, so a negative span is a caller bug.
func NewInterval(start, end time.Time, overhead time.Duration) Interval {
	return Interval{
		Start: start,
		Work:  WorkTimeFrom(end.Sub(start), overhead),
	}
}
