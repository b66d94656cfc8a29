package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aamritt0/FermiToday-pwa/core/event"
)

// MakeEvent builds a variation event for fixtures.
func MakeEvent(id, summary, start string) event.Event {
	return event.Event{
		ID:      id,
		Summary: summary,
		Start:   start,
	}
}

// SampleEvents is a realistic day of published variations.
func SampleEvents(day string) []event.Event {
	return []event.Event{
		MakeEvent("1", "CLASSE 5A ENTRATA POSTICIPATA", day+"T10:00:00Z"),
		MakeEvent("2", "PROF. ROSSI CLASSE 3C", day+"T08:00:00Z"),
		MakeEvent("3", "CLASSI 5A, 5B AULA 12", day+"T09:00:00Z"),
		MakeEvent("4", "Assemblea di istituto", day),
	}
}

// FakeBackend is a stand-in school backend for HTTP tests. It serves a
// VAPID key, accepts registrations and publishes canned events.
func FakeBackend(t *testing.T, events []event.Event) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/vapid-public-key", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"publicKey": "BPzD-8gx5mUPLX1r"})
	})
	mux.HandleFunc("/register-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/unregister-token", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/update-preferences", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(events)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}
