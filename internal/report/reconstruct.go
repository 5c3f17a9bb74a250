// Package report turns a project's ordered punch-event stream into the
// summary report: reconstructed work intervals, gross/net accounting, and
// day/week calendar buckets.
package report

import (
	"time"

	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/timeutil"
)

// Reconstruct walks events (type in/out only, ascending by instant) and
// emits one interval per completed in→out pair, plus one open interval from
// a trailing unmatched in-event to now.
//
// Leading out-events are dropped silently: the query window starts at an
// arbitrary instant, so a session that straddles the window boundary shows
// up first as an orphan out. That is expected, not a data error. Once
// reconstruction has started, any event that breaks the in/out alternation
// is discarded with a diagnostic and leaves the pending state untouched.
func Reconstruct(events []models.Event, overhead time.Duration, now time.Time, loc *time.Location) ([]models.Interval, []models.Diagnostic) {
	var (
		intervals   []models.Interval
		diagnostics []models.Diagnostic
		pendingIn   *models.Event
		expected    = models.EventIn
		leadIn      = true
	)

	for i := range events {
		event := events[i]
		if leadIn && event.Type == models.EventOut {
			continue
		}
		// The store already filters to punch events, but note events will
		// eventually need handling here, so skip them rather than trust the
		// query.
		if !event.IsPunch() {
			continue
		}
		if event.Type != expected {
			diagnostics = append(diagnostics, models.Diagnostic{
				Event:  event,
				Reason: "unexpected " + string(event.Type) + " event, expected " + string(expected),
			})
			continue
		}
		leadIn = false
		switch event.Type {
		case models.EventIn:
			pendingIn = &events[i]
			expected = models.EventOut
		case models.EventOut:
			intervals = append(intervals, models.NewInterval(
				timeutil.ToLocal(pendingIn.Clock, loc),
				timeutil.ToLocal(event.Clock, loc),
				overhead,
			))
			pendingIn = nil
			expected = models.EventIn
		}
	}

	// A work session in progress accounts its time up to the present.
	if pendingIn != nil {
		intervals = append(intervals, models.NewInterval(
			timeutil.ToLocal(pendingIn.Clock, loc),
			timeutil.ToLocal(now, loc),
			overhead,
		))
	}

	return intervals, diagnostics
}
