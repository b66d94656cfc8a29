package worker

import (
	"net/http"
	"net/url"
	"time"

	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/notification"
)

// Worker-to-page message types.
const (
	MessageSkipWaiting = "SKIP_WAITING"
	MessageGetVersion  = "GET_VERSION"
)

type (
	// Kind names a lifecycle or transport event delivered to the worker.
	Kind string

	// Event is one occurrence of a Kind with its payload. Only the fields
	// relevant to the kind are set.
	Event struct {
		Kind        Kind
		Request     *http.Request // KindFetch
		Message     *Message      // KindMessage
		Payload     []byte        // KindPush
		DeliveredAt time.Time     // KindPush
		Clicked     *Clicked      // KindNotificationClick
	}

	// Message is a page-to-worker runtime message. Reply, when non-nil, is
	// the channel a synchronous answer is sent over.
	Message struct {
		Type  string        `json:"type"`
		Reply chan<- string `json:"-"`
	}

	// Clicked describes a clicked notification and the windows open at
	// that moment.
	Clicked struct {
		Tag     string
		Data    notification.Data
		Clients []notification.Client
	}

	// Context is the immutable per-instance configuration of a worker.
	// Construct one per worker instantiation; tests can run several
	// independent ones side by side.
	Context struct {
		Version     string   // current cache namespace
		ShellAssets []string // precached app shell
		Origin      *url.URL // own origin, shell assets resolve against it
		Backend     *url.URL // school backend origin (network-first)
		Scope       string   // registration scope for click routing
		Now         func() time.Time
	}

	// Handler turns an event into the effects it requires. Handlers are
	// pure: all I/O happens in the Driver executing the effects.
	Handler func(Event, *Context) ([]Effect, error)
)

const (
	KindInstall            Kind = "install"
	KindActivate           Kind = "activate"
	KindFetch              Kind = "fetch"
	KindMessage            Kind = "message"
	KindPush               Kind = "push"
	KindNotificationClick  Kind = "notificationclick"
	KindSubscriptionChange Kind = "pushsubscriptionchange"
)

// NewContext builds a worker context from configuration values.
func NewContext(version string, shellAssets []string, origin, backend *url.URL, scope string) *Context {
	if scope == "" {
		scope = "/"
	}
	if version == "" {
		version = core.Conf.GetString("cacheVersion")
	}
	return &Context{
		Version:     version,
		ShellAssets: shellAssets,
		Origin:      origin,
		Backend:     backend,
		Scope:       scope,
		Now:         time.Now,
	}
}

// Handlers is the dispatch table mapping event kinds to their handlers.
func Handlers() map[Kind]Handler {
	return map[Kind]Handler{
		KindInstall:            handleInstall,
		KindActivate:           handleActivate,
		KindFetch:              handleFetch,
		KindMessage:            handleMessage,
		KindPush:               handlePush,
		KindNotificationClick:  handleNotificationClick,
		KindSubscriptionChange: handleSubscriptionChange,
	}
}
