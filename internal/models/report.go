package models

// DayTotal is the accumulated work time for one calendar date.
type DayTotal struct {
	Date Date
	Work WorkTime
}

// WeekTotal is the accumulated work time for one ISO week.
type WeekTotal struct {
	Week ISOWeek
	Work WorkTime
}

// Diagnostic records an anomalous event discarded during interval
// reconstruction. Anomalies never abort report generation.
type Diagnostic struct {
	Event  Event
	Reason string
}

// SummaryReport describes recent work activity for a project and is used to
// populate the dashboard. Days, Weeks and RecentEvents are ordered
// most-recent-first; Days covers the current ISO week only, Weeks always
// holds six entries (five prior full weeks plus the current one).
type SummaryReport struct {
	NextDirection Direction
	Days          []DayTotal
	Weeks         []WeekTotal
	RecentEvents  []Event
	Diagnostics   []Diagnostic
}
