package notification

import "testing"

func TestResolveClick(t *testing.T) {
	tests := []struct {
		name      string
		clients   []Client
		scope     string
		data      Data
		wantFocus string
		wantOpen  string
	}{
		{
			name:     "no clients opens target url",
			scope:    "/",
			data:     Data{URL: "/variazioni?section=5A"},
			wantOpen: "/variazioni?section=5A",
		},
		{
			name:     "no clients and no url opens root",
			scope:    "/",
			wantOpen: "/",
		},
		{
			name: "first in-scope client focused",
			clients: []Client{
				{ID: "a", URL: "https://other.example/page"},
				{ID: "b", URL: "/settings"},
				{ID: "c", URL: "/variazioni"},
			},
			scope:     "/",
			data:      Data{URL: "/variazioni"},
			wantFocus: "b",
		},
		{
			name:     "out-of-scope clients ignored",
			clients:  []Client{{ID: "a", URL: "/admin"}},
			scope:    "/app",
			wantOpen: "/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveClick(tt.clients, tt.scope, tt.data)
			if got.FocusClientID != tt.wantFocus {
				t.Errorf("FocusClientID = %q, want %q", got.FocusClientID, tt.wantFocus)
			}
			if got.OpenURL != tt.wantOpen {
				t.Errorf("OpenURL = %q, want %q", got.OpenURL, tt.wantOpen)
			}
			if tt.wantFocus != "" {
				if got.Message == nil || got.Message.Type != MessageNotificationClicked {
					t.Errorf("Message = %+v, want %s", got.Message, MessageNotificationClicked)
				}
			}
		})
	}
}
