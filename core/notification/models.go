package notification

import (
	"encoding/json"
	"time"

	"github.com/aamritt0/FermiToday-pwa/core"
)

type (
	// Data rides along a notification and is handed back on click for
	// deep-linking into the app.
	Data struct {
		URL       string `json:"url,omitempty"`
		Section   string `json:"section,omitempty"`
		Professor string `json:"professor,omitempty"`
	}

	Action struct {
		Action string `json:"action"`
		Title  string `json:"title"`
		Icon   string `json:"icon,omitempty"`
	}

	// Payload is a fully-defaulted notification ready for display. Inbound
	// push bodies are validated once at the boundary (ParsePayload); from
	// there on every field is guaranteed to hold a usable value.
	Payload struct {
		Title              string    `json:"title"`
		Body               string    `json:"body"`
		Icon               string    `json:"icon"`
		Badge              string    `json:"badge"`
		Tag                string    `json:"tag"`
		Data               Data      `json:"data"`
		RequireInteraction bool      `json:"requireInteraction"`
		Silent             bool      `json:"silent"`
		Timestamp          time.Time `json:"timestamp"`
		Vibrate            []int     `json:"vibrate"`
		Actions            []Action  `json:"actions,omitempty"`
	}
)

const defaultBody = "Nuove variazioni dell'orario disponibili"

var defaultVibration = []int{200, 100, 200}

// inbound wire shape; pointers distinguish absent fields from zero values
type rawPayload struct {
	Title              *string  `json:"title"`
	Body               *string  `json:"body"`
	Icon               *string  `json:"icon"`
	Badge              *string  `json:"badge"`
	Tag                *string  `json:"tag"`
	Data               *Data    `json:"data"`
	RequireInteraction *bool    `json:"requireInteraction"`
	Silent             *bool    `json:"silent"`
	Timestamp          *int64   `json:"timestamp"` // epoch millis
	Vibrate            []int    `json:"vibrate"`
	Actions            []Action `json:"actions"`
}

// ParsePayload turns an inbound push body into a displayable Payload,
// defaulting every absent field. A body that is not valid JSON degrades to
// a plain-text notification body; the returned error is then
// core.ErrParsePayloadFailed and the Payload is still usable.
func ParsePayload(raw []byte, deliveredAt time.Time) (Payload, error) {
	p := Payload{
		Title:     core.Conf.GetString("appName"),
		Body:      defaultBody,
		Icon:      core.Conf.GetString("notificationIcon"),
		Badge:     core.Conf.GetString("notificationBadge"),
		Tag:       "default",
		Timestamp: deliveredAt,
		Vibrate:   defaultVibration,
	}
	if len(raw) == 0 {
		return p, nil
	}

	var in rawPayload
	if err := json.Unmarshal(raw, &in); err != nil {
		p.Body = string(raw)
		return p, core.ErrParsePayloadFailed
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Body != nil {
		p.Body = *in.Body
	}
	if in.Icon != nil {
		p.Icon = *in.Icon
	}
	if in.Badge != nil {
		p.Badge = *in.Badge
	}
	if in.Tag != nil {
		p.Tag = *in.Tag
	}
	if in.Data != nil {
		p.Data = *in.Data
	}
	if in.RequireInteraction != nil {
		p.RequireInteraction = *in.RequireInteraction
	}
	if in.Silent != nil {
		p.Silent = *in.Silent
	}
	if in.Timestamp != nil {
		ms := *in.Timestamp
		p.Timestamp = time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond))
	}
	if in.Vibrate != nil {
		p.Vibrate = in.Vibrate
	}
	if in.Actions != nil {
		p.Actions = in.Actions
	}
	return p, nil
}
