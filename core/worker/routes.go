package worker

import (
	"net/http"
	"strings"
)

// Policy selects how a fetch is answered.
type Policy int

const (
	// CacheFirst serves the cached entry when present and fills the cache
	// from the network on a miss (successful same-origin responses only).
	// Static shell and assets route here.
	CacheFirst Policy = iota

	// NetworkFirst races no one: it always tries the live network and only
	// falls back to the last cached entry when the network fails.
	// Timetable data routes here so the user always sees fresh variations.
	NetworkFirst
)

func (p Policy) String() string {
	if p == NetworkFirst {
		return "network-first"
	}
	return "cache-first"
}

// Route returns the policy for a request: network-first for anything on
// the backend origin or under /events, cache-first for the rest.
func (c *Context) Route(req *http.Request) Policy {
	if c.Backend != nil && req.URL.Host == c.Backend.Host {
		return NetworkFirst
	}
	if strings.Contains(req.URL.Path, "/events") {
		return NetworkFirst
	}
	return CacheFirst
}

// Resolve turns a fetch request into the absolute URL to hit on the
// network. Requests without a host are shell/asset requests against the
// worker's own origin.
func (c *Context) Resolve(req *http.Request) string {
	if req.URL.IsAbs() {
		return req.URL.String()
	}
	if c.Origin == nil {
		return req.URL.String()
	}
	return c.Origin.ResolveReference(req.URL).String()
}

// SameOrigin reports whether an effective response URL belongs to the
// worker's own origin ("basic" response); cross-origin responses are never
// written into the cache on the cache-first route.
func (c *Context) SameOrigin(effectiveURL string) bool {
	if c.Origin == nil {
		return false
	}
	return strings.HasPrefix(effectiveURL, c.Origin.Scheme+"://"+c.Origin.Host)
}
