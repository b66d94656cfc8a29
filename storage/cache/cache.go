package cachestore

import "net/http"

type (
	// Response is a stored response snapshot. Entries carry no TTL;
	// freshness is the routing policy's job, not the store's.
	Response struct {
		URL    string
		Status int
		Header http.Header
		Body   []byte
	}

	// Cache is one named namespace of response snapshots keyed by effective
	// request URL. Put and Match are atomic per key.
	Cache interface {
		Name() string
		Put(key string, resp Response) error
		Match(key string) (Response, bool, error)
		Keys() ([]string, error)
	}

	// Store owns every cache namespace of the worker.
	Store interface {
		// Open returns the named cache, creating it when absent.
		Open(name string) (Cache, error)
		Names() ([]string, error)
		// Delete drops a whole namespace; reports whether it existed.
		Delete(name string) (bool, error)
	}
)

// Clone deep-copies a response snapshot so a stored entry can never be
// mutated through a previously returned value.
func Clone(resp Response) Response {
	cp := resp
	cp.Header = make(http.Header, len(resp.Header))
	for k, v := range resp.Header {
		vals := make([]string, len(v))
		copy(vals, v)
		cp.Header[k] = vals
	}
	cp.Body = make([]byte, len(resp.Body))
	copy(cp.Body, resp.Body)
	return cp
}
