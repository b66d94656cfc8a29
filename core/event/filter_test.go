package event

import (
	"reflect"
	"testing"
	"time"
)

func TestFilterByClass(t *testing.T) {
	events := []Event{
		{ID: "1", Summary: "CLASSE 5A ENTRATA POSTICIPATA"},
		{ID: "2", Summary: "CLASSE 5AB USCITA ANTICIPATA"},
		{ID: "3", Summary: "CLASSI 5A, 5B AULA 12"},
		{ID: "4", Summary: "Assemblea di istituto"},
	}

	tests := []struct {
		name    string
		code    string
		wantIDs []string
	}{
		{name: "exact membership only", code: "5A", wantIDs: []string{"1", "3"}},
		{name: "no prefix matching", code: "5", wantIDs: nil},
		{name: "case insensitive", code: "5b", wantIDs: []string{"3"}},
		{name: "whitespace trimmed", code: "  5AB ", wantIDs: []string{"2"}},
		{name: "unknown code", code: "4C", wantIDs: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(FilterByClass(events, tt.code)); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("FilterByClass() = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestFilterByProfessor(t *testing.T) {
	events := []Event{
		{ID: "1", Summary: "PROF. ROSSI CLASSE 3C"},
		{ID: "2", Summary: "PROFF. BIANCHI, VERDI ASSENTE"},
		{ID: "3", Summary: "Variazione orario", Description: "Sostituzione prof Rossi ore 2-3"},
		{ID: "4", Summary: "Variazione orario", Description: "aula rossi chiusa"}, // no PROF marker
	}

	tests := []struct {
		name    string
		prof    string
		wantIDs []string
	}{
		{name: "extracted from summary", prof: "rossi", wantIDs: []string{"1", "3"}},
		{name: "list form", prof: "VERDI", wantIDs: []string{"2"}},
		{name: "description needs PROF marker", prof: "BIANCHI", wantIDs: []string{"2"}},
		{name: "unknown name", prof: "ESPOSITO", wantIDs: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(FilterByProfessor(events, tt.prof)); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("FilterByProfessor() = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestSortByStart(t *testing.T) {
	events := []Event{
		{ID: "1", Start: "2025-01-10T10:00:00Z"},
		{ID: "2", Start: "2025-01-10T08:00:00Z"},
		{ID: "3", Start: "not-a-date"}, // sorts first
		{ID: "4", Start: "2025-01-10T08:00:00Z"},
	}

	got := ids(SortByStart(events))
	want := []string{"3", "2", "4", "1"} // equal starts keep input order
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByStart() = %v, want %v", got, want)
	}

	// input untouched
	if events[0].ID != "1" {
		t.Error("SortByStart() mutated its input")
	}
}

func TestOnDay(t *testing.T) {
	events := []Event{
		{ID: "1", Start: "2025-01-10T08:00:00Z"},
		{ID: "2", Start: "2025-01-11T00:30:00+01:00"}, // 23:30 UTC the day before
		{ID: "3", Start: "2025-01-10"},                // date-only, parsed as UTC midnight
		{ID: "4", Start: "2025-01-11T08:00:00Z"},
		{ID: "5", Start: "garbage"}, // skipped
	}

	tests := []struct {
		name    string
		day     time.Time
		wantIDs []string
	}{
		{
			name:    "UTC day bucketing",
			day:     time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			wantIDs: []string{"1", "2", "3"},
		},
		{
			name:    "next day",
			day:     time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC),
			wantIDs: []string{"4"},
		},
		{
			name:    "empty day",
			day:     time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			wantIDs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(OnDay(events, tt.day)); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("OnDay() = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func ids(events []Event) []string {
	var out []string
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}
