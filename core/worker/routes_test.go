package worker

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func newRoutingContext(t *testing.T) *Context {
	t.Helper()
	origin, _ := url.Parse("https://app.test")
	backend, _ := url.Parse("https://backend.test")
	return NewContext("v1", nil, origin, backend, "/")
}

func TestContext_Route(t *testing.T) {
	wctx := newRoutingContext(t)

	tests := []struct {
		name string
		url  string
		want Policy
	}{
		{name: "shell", url: "/index.html", want: CacheFirst},
		{name: "asset", url: "/static/js/main.js", want: CacheFirst},
		{name: "backend origin", url: "https://backend.test/vapid-public-key", want: NetworkFirst},
		{name: "events path", url: "/events?date=2025-01-10", want: NetworkFirst},
		{name: "absolute events", url: "https://backend.test/events", want: NetworkFirst},
		{name: "third party", url: "https://cdn.other.test/font.woff2", want: CacheFirst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			if got := wctx.Route(req); got != tt.want {
				t.Errorf("Route(%s) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestContext_Resolve(t *testing.T) {
	wctx := newRoutingContext(t)

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "relative against origin", url: "/manifest.json", want: "https://app.test/manifest.json"},
		{name: "absolute untouched", url: "https://backend.test/events", want: "https://backend.test/events"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			if got := wctx.Resolve(req); got != tt.want {
				t.Errorf("Resolve(%s) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestContext_SameOrigin(t *testing.T) {
	wctx := newRoutingContext(t)

	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://app.test/index.html", want: true},
		{url: "https://backend.test/events", want: false},
		{url: "http://app.test/index.html", want: false}, // scheme matters
	}
	for _, tt := range tests {
		if got := wctx.SameOrigin(tt.url); got != tt.want {
			t.Errorf("SameOrigin(%s) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
