package backendsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/event"
	"github.com/aamritt0/FermiToday-pwa/core/subscription"
)

// Client consumes the school backend HTTP API. All bodies are JSON.
type Client struct {
	baseURL string
	http    *http.Client
	log     core.Logger
}

var _ subscription.Backend = (*Client)(nil)

func NewClient(baseURL string, log core.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log,
	}
}

type (
	publicKeyResponse struct {
		PublicKey string `json:"publicKey"`
	}

	registerPayload struct {
		Subscription    subscription.Record `json:"subscription"`
		Section         null.String         `json:"section"`
		Professor       null.String         `json:"professor"`
		DigestEnabled   bool                `json:"digestEnabled"`
		DigestTime      string              `json:"digestTime"`
		RealtimeEnabled bool                `json:"realtimeEnabled"`
	}

	tokenPayload struct {
		Token string `json:"token"`
	}

	preferencesPayload struct {
		Token           string      `json:"token"`
		Section         null.String `json:"section"`
		Professor       null.String `json:"professor"`
		DigestEnabled   bool        `json:"digestEnabled"`
		DigestTime      string      `json:"digestTime"`
		RealtimeEnabled bool        `json:"realtimeEnabled"`
	}
)

func optional(s string) null.String {
	return null.NewString(s, s != "")
}

// PublicKey fetches the server's VAPID public key. Any transport or shape
// problem surfaces as core.ErrKeyUnavailable.
func (c *Client) PublicKey(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/vapid-public-key", nil)
	if err != nil {
		return "", errors.Wrap(err, "building key request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(core.ErrKeyUnavailable, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Wrap(core.ErrKeyUnavailable, core.BackendRejectedError{Status: resp.StatusCode}.Error())
	}

	var data publicKeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", errors.Wrap(core.ErrKeyUnavailable, err.Error())
	}
	if data.PublicKey == "" {
		return "", core.ErrKeyUnavailable
	}
	return data.PublicKey, nil
}

// Register sends a subscription plus its delivery preferences to the backend.
func (c *Client) Register(ctx context.Context, rec subscription.Record, prefs subscription.Preferences) error {
	return c.post(ctx, "/register-token", registerPayload{
		Subscription:    rec,
		Section:         optional(prefs.Section),
		Professor:       optional(prefs.Professor),
		DigestEnabled:   prefs.DigestEnabled,
		DigestTime:      prefs.DigestTime,
		RealtimeEnabled: prefs.RealtimeEnabled,
	})
}

// Unregister removes the backend's record of a subscription by endpoint.
func (c *Client) Unregister(ctx context.Context, endpoint string) error {
	return c.post(ctx, "/unregister-token", tokenPayload{Token: endpoint})
}

// UpdatePreferences re-sends the delivery preferences for an existing
// subscription.
func (c *Client) UpdatePreferences(ctx context.Context, endpoint string, prefs subscription.Preferences) error {
	return c.post(ctx, "/update-preferences", preferencesPayload{
		Token:           endpoint,
		Section:         optional(prefs.Section),
		Professor:       optional(prefs.Professor),
		DigestEnabled:   prefs.DigestEnabled,
		DigestTime:      prefs.DigestTime,
		RealtimeEnabled: prefs.RealtimeEnabled,
	})
}

// Events fetches the published variations for a calendar date, optionally
// narrowed server-side to a section.
func (c *Client) Events(ctx context.Context, day time.Time, section string) ([]event.Event, error) {
	params := make(url.Values)
	params.Set("date", day.Format("2006-01-02"))
	if section != "" {
		params.Set("section", section)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building events request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(core.ErrNetworkUnavailable, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, core.BackendRejectedError{Status: resp.StatusCode}
	}

	var events []event.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, errors.Wrap(err, "decoding events")
	}
	return events, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "marshalling %s payload", path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "building %s request", path)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(core.ErrNetworkUnavailable, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.BackendRejectedError{Status: resp.StatusCode}
	}
	return nil
}
