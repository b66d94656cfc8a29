package worker

import (
	"net/http"

	"github.com/aamritt0/FermiToday-pwa/core/notification"
)

// Effect is a tagged variant describing one side effect a handler asks
// for. The Driver executes effects and extends the event's lifetime until
// every asynchronous one has completed.
type Effect interface {
	isEffect()
}

type (
	// PrecacheShell fetches and stores the app shell, all-or-nothing.
	PrecacheShell struct {
		Assets []string
	}

	// SkipWaiting promotes the installed worker without waiting for
	// existing clients to release control.
	SkipWaiting struct{}

	// CleanStaleCaches deletes every cache namespace but the current one.
	CleanStaleCaches struct{}

	// ClaimClients takes control of all open pages immediately.
	ClaimClients struct{}

	// FetchRoute answers a fetch through the routing policy.
	FetchRoute struct {
		Request *http.Request
		Policy  Policy
	}

	// Reply answers a runtime message over its reply channel.
	Reply struct {
		To chan<- string
	}

	// ShowNotification displays a fully-defaulted payload.
	ShowNotification struct {
		Payload notification.Payload
	}

	// CloseNotification dismisses the notification group with this tag.
	CloseNotification struct {
		Tag string
	}

	// FocusClient brings an open window to the foreground.
	FocusClient struct {
		ClientID string
	}

	// PostMessage delivers a structured message to an open window.
	PostMessage struct {
		ClientID string
		Message  interface{}
	}

	// OpenWindow opens a new window at URL.
	OpenWindow struct {
		URL string
	}

	// RecoverSubscription renews an invalidated push subscription.
	RecoverSubscription struct{}
)

func (PrecacheShell) isEffect()       {}
func (SkipWaiting) isEffect()         {}
func (CleanStaleCaches) isEffect()    {}
func (ClaimClients) isEffect()        {}
func (FetchRoute) isEffect()          {}
func (Reply) isEffect()               {}
func (ShowNotification) isEffect()    {}
func (CloseNotification) isEffect()   {}
func (FocusClient) isEffect()         {}
func (PostMessage) isEffect()         {}
func (OpenWindow) isEffect()          {}
func (RecoverSubscription) isEffect() {}
