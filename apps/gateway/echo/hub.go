package echoapi

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core/notification"
	"github.com/aamritt0/FermiToday-pwa/core/worker"
)

// clientHub tracks the application windows currently attached to the
// worker and queues worker-to-page messages until each window drains them.
// It is the gateway's worker.Messenger and worker.Displayer.
type clientHub struct {
	mutex         sync.Mutex
	clients       map[string]*hubClient
	notifications map[string]notification.Payload // by tag; same tag collapses
}

type hubClient struct {
	id       string
	url      string
	messages []interface{}
}

var (
	_ worker.Messenger = (*clientHub)(nil)
	_ worker.Displayer = (*clientHub)(nil)

	errClientNotFound = errors.New("client not found")
)

func newClientHub() *clientHub {
	return &clientHub{
		clients:       make(map[string]*hubClient),
		notifications: make(map[string]notification.Payload),
	}
}

// Register attaches a window and returns its client ID.
func (h *clientHub) Register(url string) string {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	id := uuid.New().String()
	h.clients[id] = &hubClient{id: id, url: url}
	return id
}

func (h *clientHub) Unregister(id string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, id)
}

// Clients lists the attached windows, for click routing.
func (h *clientHub) Clients() []notification.Client {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	list := make([]notification.Client, 0, len(h.clients))
	for _, c := range h.clients {
		list = append(list, notification.Client{ID: c.id, URL: c.url})
	}
	return list
}

// Drain returns and clears the queued messages for a window.
func (h *clientHub) Drain(id string) ([]interface{}, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return nil, errClientNotFound
	}
	msgs := c.messages
	c.messages = nil
	return msgs, nil
}

// worker.Messenger

func (h *clientHub) Post(clientID string, msg interface{}) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	c, ok := h.clients[clientID]
	if !ok {
		return errClientNotFound
	}
	c.messages = append(c.messages, msg)
	return nil
}

func (h *clientHub) Focus(clientID string) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[clientID]; !ok {
		return errClientNotFound
	}
	return nil // nothing to raise in a headless gateway
}

func (h *clientHub) Open(url string) error {
	// windows are opened by the pages themselves; the hub only records the
	// intent as a broadcast so any polling page can navigate
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, c := range h.clients {
		c.messages = append(c.messages, map[string]string{"type": "OPEN_WINDOW", "url": url})
	}
	return nil
}

func (h *clientHub) Claim() error {
	return nil // all attached windows already talk to this worker instance
}

// worker.Displayer

func (h *clientHub) Show(payload notification.Payload) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.notifications[payload.Tag] = payload
	return nil
}

func (h *clientHub) Close(tag string) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.notifications, tag)
	return nil
}

// Notifications lists the currently displayed notifications.
func (h *clientHub) Notifications() []notification.Payload {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	list := make([]notification.Payload, 0, len(h.notifications))
	for _, p := range h.notifications {
		list = append(list, p)
	}
	return list
}

// Notification returns the displayed notification with this tag, if any.
func (h *clientHub) Notification(tag string) (notification.Payload, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	p, ok := h.notifications[tag]
	return p, ok
}
