package subscription

import (
	"context"

	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core"
)

type (
	// Platform is the push manager of the host platform. Subscribe must be
	// idempotent: subscribing while a subscription for the same server key
	// exists returns the existing one.
	Platform interface {
		RequestPermission(ctx context.Context) (bool, error)
		Subscribe(ctx context.Context, serverKey []byte) (Record, error)
		Subscription(ctx context.Context) (*Record, error)
		Unsubscribe(ctx context.Context, endpoint string) error
	}

	// Backend is the school backend's subscription API.
	Backend interface {
		PublicKey(ctx context.Context) (string, error)
		Register(ctx context.Context, rec Record, prefs Preferences) error
		Unregister(ctx context.Context, endpoint string) error
		UpdatePreferences(ctx context.Context, endpoint string, prefs Preferences) error
	}

	// Store persists the active subscription record locally.
	Store interface {
		SavedSubscription(ctx context.Context) (*Record, error)
		SaveSubscription(ctx context.Context, rec *Record) error
		ClearSubscription(ctx context.Context) error
	}

	Service struct {
		platform Platform
		backend  Backend
		store    Store
		log      core.Logger
	}
)

func NewService(platform Platform, backend Backend, store Store, log core.Logger) *Service {
	return &Service{
		platform: platform,
		backend:  backend,
		store:    store,
		log:      log,
	}
}

// Enable opts the user in: fetch the server key, ask permission, create the
// platform subscription, register it with the backend and persist it, in
// that order. A failure at any step rolls everything back; no partial
// local or remote state survives.
func (svc *Service) Enable(ctx context.Context, prefs Preferences) (Record, error) {
	key, err := svc.backend.PublicKey(ctx)
	if err != nil {
		return Record{}, err
	}
	rawKey, err := DecodeServerKey(key)
	if err != nil {
		return Record{}, err
	}

	granted, err := svc.platform.RequestPermission(ctx)
	if err != nil {
		return Record{}, errors.Wrap(err, "requesting notification permission")
	}
	if !granted {
		return Record{}, core.ErrPermissionDenied
	}

	rec, err := svc.platform.Subscribe(ctx, rawKey)
	if err != nil {
		return Record{}, errors.Wrap(err, "creating push subscription")
	}

	if err := svc.backend.Register(ctx, rec, prefs); err != nil {
		svc.rollback(ctx, rec)
		return Record{}, err
	}
	if err := svc.store.SaveSubscription(ctx, &rec); err != nil {
		if uerr := svc.backend.Unregister(ctx, rec.Endpoint); uerr != nil {
			svc.log.Warn("rollback: backend unregister failed", uerr)
		}
		svc.rollback(ctx, rec)
		return Record{}, errors.Wrap(err, "persisting subscription")
	}
	return rec, nil
}

func (svc *Service) rollback(ctx context.Context, rec Record) {
	if err := svc.platform.Unsubscribe(ctx, rec.Endpoint); err != nil {
		svc.log.Warn("rollback: platform unsubscribe failed", err)
	}
}

// Disable opts the user out. The backend unregister is best-effort and the
// persisted record is cleared last, so a crash mid-way leaves the opt-out
// retry-able.
func (svc *Service) Disable(ctx context.Context) error {
	rec, err := svc.store.SavedSubscription(ctx)
	if err != nil {
		return errors.Wrap(err, "loading saved subscription")
	}
	if rec != nil {
		if err := svc.backend.Unregister(ctx, rec.Endpoint); err != nil {
			svc.log.Warn("backend unregister failed; proceeding with local unsubscribe", err)
		}
		if cur, err := svc.platform.Subscription(ctx); err != nil {
			return errors.Wrap(err, "reading platform subscription")
		} else if cur != nil {
			if err := svc.platform.Unsubscribe(ctx, cur.Endpoint); err != nil {
				return errors.Wrap(err, "unsubscribing")
			}
		}
	}
	return svc.store.ClearSubscription(ctx)
}

// SyncPreferences pushes changed preferences to the backend. Skipped
// entirely when no subscription exists; failures are logged, never raised.
func (svc *Service) SyncPreferences(ctx context.Context, prefs Preferences) {
	rec, err := svc.store.SavedSubscription(ctx)
	if err != nil {
		svc.log.Warn("loading saved subscription", err)
		return
	}
	if rec == nil {
		return
	}
	if err := svc.backend.UpdatePreferences(ctx, rec.Endpoint, prefs); err != nil {
		svc.log.Warn("preference sync failed", err)
	}
}

// Recover replaces a subscription the platform has invalidated. It runs
// detached from any page, so it never prompts: permission was granted when
// the user first opted in.
func (svc *Service) Recover(ctx context.Context, prefs Preferences) (Record, error) {
	key, err := svc.backend.PublicKey(ctx)
	if err != nil {
		return Record{}, err
	}
	rawKey, err := DecodeServerKey(key)
	if err != nil {
		return Record{}, err
	}

	rec, err := svc.platform.Subscribe(ctx, rawKey)
	if err != nil {
		return Record{}, errors.Wrap(err, "renewing push subscription")
	}
	if err := svc.backend.Register(ctx, rec, prefs); err != nil {
		return Record{}, err
	}
	if err := svc.store.SaveSubscription(ctx, &rec); err != nil {
		return Record{}, errors.Wrap(err, "persisting renewed subscription")
	}
	return rec, nil
}
