package pushsvc

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core/subscription"
)

// Manager is an in-process subscription.Platform. It stands in for the
// host platform's push manager: it gates on notification permission, mints
// endpoint/key material for new subscriptions, and can invalidate the
// active subscription the way a real push service does, firing the
// subscription-change hook.
type Manager struct {
	granted  bool
	onChange func()

	mutex     sync.Mutex
	serverKey []byte
	sub       *subscription.Record
}

var _ subscription.Platform = (*Manager)(nil)

func NewManager(permissionGranted bool) *Manager {
	return &Manager{granted: permissionGranted}
}

// OnSubscriptionChange registers the hook fired when the platform
// invalidates the active subscription.
func (m *Manager) OnSubscriptionChange(fn func()) {
	m.onChange = fn
}

func (m *Manager) RequestPermission(_ context.Context) (bool, error) {
	return m.granted, nil
}

// Subscribe creates a user-visible-only subscription bound to the server
// key. Subscribing again with the same key returns the existing record.
func (m *Manager) Subscribe(_ context.Context, serverKey []byte) (subscription.Record, error) {
	if len(serverKey) == 0 {
		return subscription.Record{}, errors.New("empty application server key")
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.sub != nil && bytes.Equal(m.serverKey, serverKey) {
		return *m.sub, nil
	}

	rec := subscription.Record{
		Endpoint: "https://push.invalid/send/" + uuid.New().String(),
		Keys: subscription.Keys{
			P256dh: randomKey(65),
			Auth:   randomKey(16),
		},
	}
	m.serverKey = append([]byte(nil), serverKey...)
	m.sub = &rec
	return rec, nil
}

func (m *Manager) Subscription(_ context.Context) (*subscription.Record, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.sub == nil {
		return nil, nil
	}
	rec := *m.sub
	return &rec, nil
}

func (m *Manager) Unsubscribe(_ context.Context, endpoint string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.sub != nil && m.sub.Endpoint == endpoint {
		m.sub = nil
		m.serverKey = nil
	}
	return nil
}

// Invalidate drops the active subscription without the app asking for it,
// then fires the subscription-change hook. This is the platform-initiated
// path that triggers recovery.
func (m *Manager) Invalidate() {
	m.mutex.Lock()
	m.sub = nil
	m.mutex.Unlock()
	if m.onChange != nil {
		m.onChange()
	}
}

func randomKey(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
