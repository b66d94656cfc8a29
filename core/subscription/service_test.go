package subscription

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core"
)

// fakes

type fakePlatform struct {
	granted      bool
	permCalls    int
	subscribeErr error

	sub        *Record
	unsubCalls []string
}

func (p *fakePlatform) RequestPermission(context.Context) (bool, error) {
	p.permCalls++
	return p.granted, nil
}

func (p *fakePlatform) Subscribe(_ context.Context, serverKey []byte) (Record, error) {
	if p.subscribeErr != nil {
		return Record{}, p.subscribeErr
	}
	if p.sub != nil {
		return *p.sub, nil
	}
	rec := Record{
		Endpoint: "https://push.test/send/abc",
		Keys:     Keys{P256dh: "p256", Auth: "auth"},
	}
	p.sub = &rec
	return rec, nil
}

func (p *fakePlatform) Subscription(context.Context) (*Record, error) {
	return p.sub, nil
}

func (p *fakePlatform) Unsubscribe(_ context.Context, endpoint string) error {
	p.unsubCalls = append(p.unsubCalls, endpoint)
	p.sub = nil
	return nil
}

type fakeBackend struct {
	key           string
	registerErr   error
	unregisterErr error

	registered   []string
	unregistered []string
	updated      []Preferences
}

func (b *fakeBackend) PublicKey(context.Context) (string, error) {
	if b.key == "" {
		return "", core.ErrKeyUnavailable
	}
	return b.key, nil
}

func (b *fakeBackend) Register(_ context.Context, rec Record, _ Preferences) error {
	if b.registerErr != nil {
		return b.registerErr
	}
	b.registered = append(b.registered, rec.Endpoint)
	return nil
}

func (b *fakeBackend) Unregister(_ context.Context, endpoint string) error {
	b.unregistered = append(b.unregistered, endpoint)
	return b.unregisterErr
}

func (b *fakeBackend) UpdatePreferences(_ context.Context, _ string, prefs Preferences) error {
	b.updated = append(b.updated, prefs)
	return nil
}

type fakeStore struct {
	rec     *Record
	saveErr error
}

func (s *fakeStore) SavedSubscription(context.Context) (*Record, error) { return s.rec, nil }

func (s *fakeStore) SaveSubscription(_ context.Context, rec *Record) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.rec = rec
	return nil
}

func (s *fakeStore) ClearSubscription(context.Context) error {
	s.rec = nil
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

const testKey = "BPzD-8gx5mUPLX1r" // any decodable url-safe base64

func newTestService(platform *fakePlatform, backend *fakeBackend, store *fakeStore) *Service {
	return NewService(platform, backend, store, nopLogger{})
}

// tests

func TestService_Enable(t *testing.T) {
	prefs := Preferences{Section: "5A", DigestTime: "06:00", DigestEnabled: true}

	t.Run("ok", func(t *testing.T) {
		platform := &fakePlatform{granted: true}
		backend := &fakeBackend{key: testKey}
		store := &fakeStore{}

		rec, err := newTestService(platform, backend, store).Enable(context.Background(), prefs)
		if err != nil {
			t.Fatalf("Enable() error = %v", err)
		}
		if rec.Endpoint == "" {
			t.Error("Enable() returned empty endpoint")
		}
		if len(backend.registered) != 1 {
			t.Errorf("backend registrations = %d, want 1", len(backend.registered))
		}
		if store.rec == nil || store.rec.Endpoint != rec.Endpoint {
			t.Error("subscription not persisted")
		}
	})

	t.Run("missing server key", func(t *testing.T) {
		platform := &fakePlatform{granted: true}
		backend := &fakeBackend{}
		store := &fakeStore{}

		_, err := newTestService(platform, backend, store).Enable(context.Background(), prefs)
		if errors.Cause(err) != core.ErrKeyUnavailable {
			t.Errorf("Enable() error = %v, want %v", err, core.ErrKeyUnavailable)
		}
		if platform.permCalls != 0 {
			t.Error("permission requested before key was available")
		}
	})

	t.Run("permission denied", func(t *testing.T) {
		platform := &fakePlatform{granted: false}
		backend := &fakeBackend{key: testKey}
		store := &fakeStore{}

		_, err := newTestService(platform, backend, store).Enable(context.Background(), prefs)
		if errors.Cause(err) != core.ErrPermissionDenied {
			t.Errorf("Enable() error = %v, want %v", err, core.ErrPermissionDenied)
		}
		if platform.sub != nil {
			t.Error("subscribed despite denied permission")
		}
	})

	t.Run("register fails, subscription rolled back", func(t *testing.T) {
		platform := &fakePlatform{granted: true}
		backend := &fakeBackend{key: testKey, registerErr: core.BackendRejectedError{Status: 500}}
		store := &fakeStore{}

		_, err := newTestService(platform, backend, store).Enable(context.Background(), prefs)
		if !core.IsBackendRejected(err) {
			t.Errorf("Enable() error = %v, want backend rejection", err)
		}
		if len(platform.unsubCalls) != 1 {
			t.Errorf("unsubscribe calls = %d, want 1", len(platform.unsubCalls))
		}
		if store.rec != nil {
			t.Error("failed enable left a persisted subscription")
		}
	})

	t.Run("persist fails, registration rolled back", func(t *testing.T) {
		platform := &fakePlatform{granted: true}
		backend := &fakeBackend{key: testKey}
		store := &fakeStore{saveErr: errors.New("disk full")}

		_, err := newTestService(platform, backend, store).Enable(context.Background(), prefs)
		if err == nil {
			t.Fatal("Enable() error = nil, want error")
		}
		if len(backend.unregistered) != 1 {
			t.Errorf("backend unregister calls = %d, want 1", len(backend.unregistered))
		}
		if len(platform.unsubCalls) != 1 {
			t.Errorf("unsubscribe calls = %d, want 1", len(platform.unsubCalls))
		}
	})
}

func TestService_Disable(t *testing.T) {
	rec := Record{Endpoint: "https://push.test/send/abc"}

	t.Run("ok", func(t *testing.T) {
		platform := &fakePlatform{sub: &rec}
		backend := &fakeBackend{key: testKey}
		store := &fakeStore{rec: &rec}

		if err := newTestService(platform, backend, store).Disable(context.Background()); err != nil {
			t.Fatalf("Disable() error = %v", err)
		}
		if store.rec != nil {
			t.Error("persisted subscription not cleared")
		}
		if platform.sub != nil {
			t.Error("platform subscription not dropped")
		}
	})

	t.Run("backend unregister failure does not block opt-out", func(t *testing.T) {
		platform := &fakePlatform{sub: &rec}
		backend := &fakeBackend{key: testKey, unregisterErr: errors.New("boom")}
		store := &fakeStore{rec: &rec}

		if err := newTestService(platform, backend, store).Disable(context.Background()); err != nil {
			t.Fatalf("Disable() error = %v", err)
		}
		if store.rec != nil {
			t.Error("persisted subscription not cleared")
		}
	})

	t.Run("no subscription is a no-op", func(t *testing.T) {
		platform := &fakePlatform{}
		backend := &fakeBackend{key: testKey}
		store := &fakeStore{}

		if err := newTestService(platform, backend, store).Disable(context.Background()); err != nil {
			t.Fatalf("Disable() error = %v", err)
		}
		if len(backend.unregistered) != 0 {
			t.Error("unregistered a subscription that never existed")
		}
	})
}

func TestService_SyncPreferences(t *testing.T) {
	prefs := Preferences{Professor: "ROSSI", DigestTime: "06:00"}

	t.Run("skipped without subscription", func(t *testing.T) {
		backend := &fakeBackend{key: testKey}
		newTestService(&fakePlatform{}, backend, &fakeStore{}).SyncPreferences(context.Background(), prefs)
		if len(backend.updated) != 0 {
			t.Error("preferences synced without a subscription")
		}
	})

	t.Run("synced when subscribed", func(t *testing.T) {
		rec := Record{Endpoint: "https://push.test/send/abc"}
		backend := &fakeBackend{key: testKey}
		newTestService(&fakePlatform{sub: &rec}, backend, &fakeStore{rec: &rec}).SyncPreferences(context.Background(), prefs)
		if len(backend.updated) != 1 {
			t.Fatalf("backend updates = %d, want 1", len(backend.updated))
		}
		if backend.updated[0].Professor != "ROSSI" {
			t.Errorf("synced professor = %q, want ROSSI", backend.updated[0].Professor)
		}
	})
}

func TestService_Recover(t *testing.T) {
	platform := &fakePlatform{granted: false} // permission must not be consulted
	backend := &fakeBackend{key: testKey}
	store := &fakeStore{}

	rec, err := newTestService(platform, backend, store).Recover(context.Background(), Preferences{DigestTime: "06:00"})
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if platform.permCalls != 0 {
		t.Error("Recover() prompted for permission")
	}
	if len(backend.registered) != 1 {
		t.Errorf("backend registrations = %d, want 1", len(backend.registered))
	}
	if store.rec == nil || store.rec.Endpoint != rec.Endpoint {
		t.Error("renewed subscription not persisted")
	}
}
