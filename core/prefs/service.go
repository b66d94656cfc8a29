package prefs

import (
	"context"
	"time"

	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/subscription"
)

type (
	// Repository persists settings and the active push subscription.
	// It doubles as the subscription.Store the lifecycle service needs.
	Repository interface {
		subscription.Store

		GetSettings(ctx context.Context) (Settings, error)
		SaveSettings(ctx context.Context, s Settings) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Get(ctx context.Context) (Settings, error) {
	return svc.repo.GetSettings(ctx)
}

func (svc *Service) Save(ctx context.Context, s Settings) error {
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.SaveSettings(ctx, s)
}

// AddSection appends a class code to the quick-access shortlist, ignoring
// duplicates.
func (svc *Service) AddSection(ctx context.Context, code string) (Settings, error) {
	code = core.CleanString(code, true /* upper */)
	s, err := svc.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, err
	}
	if code == "" || contains(s.SavedSections, code) {
		return s, nil
	}
	s.SavedSections = append(s.SavedSections, code)
	return s, svc.Save(ctx, s)
}

func (svc *Service) RemoveSection(ctx context.Context, code string) (Settings, error) {
	code = core.CleanString(code, true /* upper */)
	s, err := svc.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, err
	}
	s.SavedSections = remove(s.SavedSections, code)
	return s, svc.Save(ctx, s)
}

// AddProfessor appends a professor name to the quick-access shortlist,
// ignoring duplicates.
func (svc *Service) AddProfessor(ctx context.Context, name string) (Settings, error) {
	name = core.CleanString(name, true /* upper */)
	s, err := svc.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, err
	}
	if name == "" || contains(s.SavedProfessors, name) {
		return s, nil
	}
	s.SavedProfessors = append(s.SavedProfessors, name)
	return s, svc.Save(ctx, s)
}

func (svc *Service) RemoveProfessor(ctx context.Context, name string) (Settings, error) {
	name = core.CleanString(name, true /* upper */)
	s, err := svc.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, err
	}
	s.SavedProfessors = remove(s.SavedProfessors, name)
	return s, svc.Save(ctx, s)
}

func (svc *Service) SetNotification(ctx context.Context, enabled bool, n subscription.Preferences) (Settings, error) {
	s, err := svc.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, err
	}
	s.NotificationsEnabled = enabled
	s.Notification = n
	return s, svc.Save(ctx, s)
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	kept := list[:0]
	for _, it := range list {
		if it != s {
			kept = append(kept, it)
		}
	}
	return kept
}
