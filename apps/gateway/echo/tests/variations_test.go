package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type variationsResponse struct {
	Date   string `json:"date"`
	Events []struct {
		ID      string `json:"id"`
		Summary string `json:"summary"`
		Start   string `json:"start"`
	} `json:"events"`
}

func Test_variationsApi_query(t *testing.T) {
	rig := setup(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantIDs  []string
	}{
		{
			name:     "by section, sorted by start",
			path:     "/variazioni?date=2025-01-10&section=5A",
			wantCode: http.StatusOK,
			wantIDs:  []string{"3", "1"}, // 09:00 before 10:00
		},
		{
			name:     "section is exact, not a prefix",
			path:     "/variazioni?date=2025-01-10&section=5",
			wantCode: http.StatusOK,
			wantIDs:  []string{},
		},
		{
			name:     "by professor, case insensitive",
			path:     "/variazioni?date=2025-01-10&professor=rossi",
			wantCode: http.StatusOK,
			wantIDs:  []string{"2"},
		},
		{
			name:     "whole day unfiltered",
			path:     "/variazioni?date=2025-01-10",
			wantCode: http.StatusOK,
			wantIDs:  []string{"4", "2", "3", "1"}, // all-day entry first
		},
		{
			name:     "day without variations",
			path:     "/variazioni?date=2025-03-01",
			wantCode: http.StatusOK,
			wantIDs:  []string{},
		},
		{
			name:     "bad date",
			path:     "/variazioni?date=not-a-date",
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			rig.app.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var body variationsResponse
			decodeBody(t, rec, &body)
			ids := make([]string, 0, len(body.Events))
			for _, ev := range body.Events {
				ids = append(ids, ev.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func Test_variationsApi_offlineFallback(t *testing.T) {
	rig := setup(t)

	// warm the cache with a live answer
	req, rec := newRequest(http.MethodGet, "/variazioni?date=2025-01-10&section=5A")
	rig.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	rig.driver.Wait()

	rig.backend.Close() // backend unreachable

	req, rec = newRequest(http.MethodGet, "/variazioni?date=2025-01-10&section=5A")
	rig.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body variationsResponse
	decodeBody(t, rec, &body)
	assert.Len(t, body.Events, 2)
}

func Test_variationsApi_offlineNoCache(t *testing.T) {
	rig := setup(t)
	rig.backend.Close()

	req, rec := newRequest(http.MethodGet, "/variazioni?date=2025-01-10")
	rig.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
