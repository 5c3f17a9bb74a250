package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/punch"
	"github.com/simmons/punch/internal/timeutil"
)

// maxReportEvents bounds the recent-events list in a summary.
const maxReportEvents = 10

// EventSource is the storage collaborator the builder reads from. Events
// come back filtered to in/out types, ascending by instant with ties broken
// by insertion order.
type EventSource interface {
	// Project loads per-project configuration, failing with the store's
	// not-found error for unknown projects.
	Project(ctx context.Context, projectID int64) (models.Project, error)
	// PunchEventsSince returns all in/out events at or after since.
	PunchEventsSince(ctx context.Context, projectID int64, since time.Time) ([]models.Event, error)
	// LastPunchEvent returns the most recent in/out event, or nil if none.
	LastPunchEvent(ctx context.Context, projectID int64) (*models.Event, error)
}

// Builder generates summary reports. It is stateless per invocation and
// safe for concurrent use.
type Builder struct {
	src EventSource
	loc *time.Location
	now func() time.Time
}

// NewBuilder creates a Builder reporting in the given time zone.
func NewBuilder(src EventSource, loc *time.Location) *Builder {
	return &Builder{src: src, loc: loc, now: time.Now}
}

// Summary builds the report for one project: next expected punch direction,
// daily totals for the current ISO week, six weekly totals, and the last
// ten events, all most-recent-first.
//
// "now" is captured once and reused for the open-interval end, so a single
// report is internally consistent.
func (b *Builder) Summary(ctx context.Context, projectID int64) (*models.SummaryReport, error) {
	project, err := b.src.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := b.now()
	today := models.DateOf(now.In(b.loc))
	startDay := timeutil.WindowStart(today)

	startUTC, err := timeutil.ToUTC(startDay, 0, 0, 0, b.loc)
	if err != nil {
		return nil, fmt.Errorf("computing report window: %w", err)
	}

	events, err := b.src.PunchEventsSince(ctx, projectID, startUTC)
	if err != nil {
		return nil, err
	}

	intervals, diagnostics := Reconstruct(events, project.OverheadDuration(), now, b.loc)
	for _, d := range diagnostics {
		log.Printf("project %d: discarded event %d: %s", projectID, d.Event.ID, d.Reason)
	}

	buckets := Aggregate(intervals, startDay, today)

	last, err := b.src.LastPunchEvent(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &models.SummaryReport{
		NextDirection: punch.NextDirection(last),
		Days:          buckets.Days,
		Weeks:         buckets.Weeks,
		RecentEvents:  recentEvents(events),
		Diagnostics:   diagnostics,
	}, nil
}

// recentEvents keeps the last maxReportEvents entries and reverses them to
// most-recent-first.
func recentEvents(events []models.Event) []models.Event {
	if len(events) > maxReportEvents {
		events = events[len(events)-maxReportEvents:]
	}
	out := make([]models.Event, len(events))
	for i, e := range events {
		out[len(events)-1-i] = e
	}
	return out
}
