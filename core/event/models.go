package event

import (
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Event is a single timetable variation as published by the school backend.
// Start and End are either a full RFC 3339 timestamp or a bare "YYYY-MM-DD"
// date for all-day entries; both forms are kept verbatim as received.
type Event struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	IsAllDay    bool   `json:"isAllDay,omitempty"`
}

// AllDay reports whether the event spans whole days, either flagged
// explicitly or implied by a date-only start.
func (ev Event) AllDay() bool {
	return ev.IsAllDay || (len(ev.Start) == len(dayLayout) && strings.Contains(ev.Start, "-"))
}

// StartTime parses the start instant. Date-only starts resolve to midnight UTC.
func (ev Event) StartTime() (time.Time, error) {
	return parseStamp(ev.Start)
}

// EndTime parses the end instant. Date-only ends resolve to midnight UTC.
func (ev Event) EndTime() (time.Time, error) {
	return parseStamp(ev.End)
}

func parseStamp(s string) (time.Time, error) {
	if len(s) == len(dayLayout) {
		return time.Parse(dayLayout, s)
	}
	return time.Parse(time.RFC3339, s)
}
