package prefs

import (
	"time"

	"github.com/aamritt0/FermiToday-pwa/core/subscription"
)

// Theme modes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Settings are the locally persisted user preferences, loaded at startup
// and written back on every change.
type Settings struct {
	ThemeMode            string                   `json:"themeMode"`
	SavedSections        []string                 `json:"savedSections"`
	SavedProfessors      []string                 `json:"savedProfessors"`
	NotificationsEnabled bool                     `json:"notificationsEnabled"`
	Notification         subscription.Preferences `json:"notification"`
	OnboardingComplete   bool                     `json:"onboardingComplete"`
	UpdatedAt            time.Time                `json:"updated_at"` // UTC
}

// DefaultSettings are the values first-time users start from.
func DefaultSettings() Settings {
	return Settings{
		ThemeMode: ThemeAuto,
		Notification: subscription.Preferences{
			DigestEnabled:   true,
			DigestTime:      "06:00",
			RealtimeEnabled: true,
		},
	}
}
