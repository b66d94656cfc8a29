package event

import (
	"sort"
	"strings"
	"time"

	"github.com/aamritt0/FermiToday-pwa/core"
)

// FilterByClass keeps the events whose extracted class-code set contains
// `code` (trimmed, case-insensitive, exact membership rather than substring).
func FilterByClass(events []Event, code string) []Event {
	code = core.CleanString(code, true /* upper */)
	var kept []Event
	for _, ev := range events {
		for _, c := range ClassCodes(ev.Summary) {
			if c == code {
				kept = append(kept, ev)
				break
			}
		}
	}
	return kept
}

// FilterByProfessor keeps the events naming `name` among their extracted
// professors. When extraction found nothing for an event, a looser fallback
// accepts it if the description mentions both "PROF" and the name; summaries
// are free text and sometimes only the description is well formed.
func FilterByProfessor(events []Event, name string) []Event {
	name = core.CleanString(name, true /* upper */)
	var kept []Event
	for _, ev := range events {
		if matchesProfessor(ev, name) {
			kept = append(kept, ev)
		}
	}
	return kept
}

func matchesProfessor(ev Event, upperName string) bool {
	for _, prof := range ProfessorNames(ev.Summary) {
		if prof == upperName {
			return true
		}
	}
	desc := strings.ToUpper(ev.Description)
	return strings.Contains(desc, "PROF") && strings.Contains(desc, upperName)
}

// SortByStart returns a new slice ordered ascending by start instant.
// Events with equal starts keep their input order; events whose start does
// not parse sort first.
func SortByStart(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := sorted[i].StartTime()
		tj, _ := sorted[j].StartTime()
		return ti.Before(tj)
	})
	return sorted
}

// OnDay keeps the events starting on the given calendar date. This is a
// date equality check on the start instant normalized to UTC, not a range
// overlap: multi-day events belong only to their start date.
func OnDay(events []Event, day time.Time) []Event {
	target := day.Format(dayLayout)
	var kept []Event
	for _, ev := range events {
		start, err := ev.StartTime()
		if err != nil {
			continue
		}
		if start.UTC().Format(dayLayout) == target {
			kept = append(kept, ev)
		}
	}
	return kept
}
