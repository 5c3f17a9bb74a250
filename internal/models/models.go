package models

import "time"

// EventType classifies a stored event. Note events are reserved for
// timestamped annotations and never participate in time accounting.
type EventType string

const (
	EventIn   EventType = "in"
	EventOut  EventType = "out"
	EventNote EventType = "note"
)

// Direction is the subset of event types a punch submission may carry.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// ParseDirection validates a submitted direction string.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionIn, DirectionOut:
		return Direction(s), true
	}
	return "", false
}

// EventType returns the event type recorded for a punch in this direction.
func (d Direction) EventType() EventType {
	if d == DirectionIn {
		return EventIn
	}
	return EventOut
}

// Event is one immutable punch-clock record. Clock is always UTC.
type Event struct {
	ID        int64
	ProjectID int64
	Type      EventType
	Clock     time.Time
}

// IsPunch reports whether the event participates in time accounting.
func (e Event) IsPunch() bool {
	return e.Type == EventIn || e.Type == EventOut
}

// Project carries the per-project accounting configuration. Overhead is the
// ramp-up deduction per work session, in minutes, and is never negative.
type Project struct {
	ID       int64
	Owner    string
	Name     string
	Overhead int
}

// OverheadDuration returns the configured overhead as a duration.
func (p Project) OverheadDuration() time.Duration {
	return time.Duration(p.Overhead) * time.Minute
}
