package backendsvc

import (
	"context"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core/worker"
	cachestore "github.com/aamritt0/FermiToday-pwa/storage/cache"
)

// httpFetcher is the live-network worker.Fetcher. Timeout policy is left to
// the transport's defaults; the routing policy handles failures.
type httpFetcher struct {
	http *http.Client
}

var _ worker.Fetcher = (*httpFetcher)(nil)

func NewFetcher() worker.Fetcher {
	return &httpFetcher{http: &http.Client{}}
}

func (f *httpFetcher) Get(ctx context.Context, url string) (cachestore.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return cachestore.Response{}, errors.Wrapf(err, "building request for %s", url)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return cachestore.Response{}, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return cachestore.Response{}, errors.Wrapf(err, "reading response body for %s", url)
	}

	effective := url
	if resp.Request != nil && resp.Request.URL != nil {
		effective = resp.Request.URL.String() // after redirects
	}
	return cachestore.Response{
		URL:    effective,
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}
