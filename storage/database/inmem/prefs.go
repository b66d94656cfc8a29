package inmemdb

import (
	"context"
	"sync"

	"github.com/aamritt0/FermiToday-pwa/core/prefs"
	"github.com/aamritt0/FermiToday-pwa/core/subscription"
)

// prefsRepository is the in-memory prefs.Repository used in tests and when
// running without a database.
type prefsRepository struct {
	settings *prefs.Settings
	sub      *subscription.Record
	mutex    sync.RWMutex
}

var _ prefs.Repository = (*prefsRepository)(nil)

func NewPrefsRepository() prefs.Repository {
	return &prefsRepository{}
}

func (repo *prefsRepository) GetSettings(_ context.Context) (prefs.Settings, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	if repo.settings == nil {
		return prefs.DefaultSettings(), nil
	}
	return *repo.settings, nil
}

func (repo *prefsRepository) SaveSettings(_ context.Context, s prefs.Settings) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	repo.settings = &s
	return nil
}

func (repo *prefsRepository) SavedSubscription(_ context.Context) (*subscription.Record, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	if repo.sub == nil {
		return nil, nil
	}
	rec := *repo.sub
	return &rec, nil
}

func (repo *prefsRepository) SaveSubscription(_ context.Context, rec *subscription.Record) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	if rec == nil {
		repo.sub = nil
		return nil
	}
	cp := *rec
	repo.sub = &cp
	return nil
}

func (repo *prefsRepository) ClearSubscription(_ context.Context) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	repo.sub = nil
	return nil
}
