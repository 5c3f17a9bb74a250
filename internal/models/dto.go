package models

// PunchRequest is the POST /projects/:id/punch payload.
// request_id is optional; best practice is to pass Idempotency-Key header
// for retries.
type PunchRequest struct {
	Direction string `json:"direction"`
	RequestID string `json:"request_id,omitempty"`
}

// PunchResponse is returned by POST /projects/:id/punch.
// Duplicate indicates idempotent success (the punch was already recorded).
type PunchResponse struct {
	EventID   int64  `json:"event_id"`
	Direction string `json:"direction"`
	Clock     string `json:"clock"`
	Duplicate bool   `json:"duplicate"`
}

// DayEntry is one daily bucket in the report response. Durations use the
// "<hours>h<minutes>m" convention with minutes floored.
type DayEntry struct {
	Date  string `json:"date"`
	Gross string `json:"gross"`
	Net   string `json:"net"`
}

// WeekEntry is one ISO-week bucket in the report response.
type WeekEntry struct {
	Year  int    `json:"iso_year"`
	Week  int    `json:"iso_week"`
	Gross string `json:"gross"`
	Net   string `json:"net"`
}

// EventEntry is one recent event in the report response.
type EventEntry struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Clock string `json:"clock"`
}

// SummaryResponse is returned by GET /projects/:id/report.
type SummaryResponse struct {
	NextDirection string       `json:"next_direction"`
	Days          []DayEntry   `json:"days"`
	Weeks         []WeekEntry  `json:"weeks"`
	RecentEvents  []EventEntry `json:"recent_events"`
	Anomalies     int          `json:"anomalies,omitempty"`
}
