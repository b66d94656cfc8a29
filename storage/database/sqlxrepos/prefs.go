package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/aamritt0/FermiToday-pwa/core/prefs"
	"github.com/aamritt0/FermiToday-pwa/core/subscription"
)

type prefsRepository struct {
	db *sqlx.DB
}

var _ prefs.Repository = (*prefsRepository)(nil)

func NewPrefsRepository(db *sql.DB) prefs.Repository {
	return &prefsRepository{db: sqlx.NewDb(db, "postgres")}
}

type settingsRow struct {
	ThemeMode            string         `db:"theme_mode"`
	SavedSections        pq.StringArray `db:"saved_sections"`
	SavedProfessors      pq.StringArray `db:"saved_professors"`
	NotificationsEnabled bool           `db:"notifications_enabled"`
	Section              null.String    `db:"section"`
	Professor            null.String    `db:"professor"`
	DigestEnabled        bool           `db:"digest_enabled"`
	DigestTime           string         `db:"digest_time"`
	RealtimeEnabled      bool           `db:"realtime_enabled"`
	OnboardingComplete   bool           `db:"onboarding_complete"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

func (row settingsRow) toSettings() prefs.Settings {
	return prefs.Settings{
		ThemeMode:            row.ThemeMode,
		SavedSections:        []string(row.SavedSections),
		SavedProfessors:      []string(row.SavedProfessors),
		NotificationsEnabled: row.NotificationsEnabled,
		Notification: subscription.Preferences{
			Section:         row.Section.String,
			Professor:       row.Professor.String,
			DigestEnabled:   row.DigestEnabled,
			DigestTime:      row.DigestTime,
			RealtimeEnabled: row.RealtimeEnabled,
		},
		OnboardingComplete: row.OnboardingComplete,
		UpdatedAt:          row.UpdatedAt,
	}
}

func (repo *prefsRepository) GetSettings(ctx context.Context) (prefs.Settings, error) {
	var row settingsRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT theme_mode, saved_sections, saved_professors, notifications_enabled,
		       section, professor, digest_enabled, digest_time, realtime_enabled,
		       onboarding_complete, updated_at
		FROM settings WHERE id = 1`)
	if err == sql.ErrNoRows {
		return prefs.DefaultSettings(), nil
	}
	if err != nil {
		return prefs.Settings{}, errors.Wrap(err, "querying settings")
	}
	return row.toSettings(), nil
}

func (repo *prefsRepository) SaveSettings(ctx context.Context, s prefs.Settings) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO settings (
			id, theme_mode, saved_sections, saved_professors, notifications_enabled,
			section, professor, digest_enabled, digest_time, realtime_enabled,
			onboarding_complete, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			theme_mode = EXCLUDED.theme_mode,
			saved_sections = EXCLUDED.saved_sections,
			saved_professors = EXCLUDED.saved_professors,
			notifications_enabled = EXCLUDED.notifications_enabled,
			section = EXCLUDED.section,
			professor = EXCLUDED.professor,
			digest_enabled = EXCLUDED.digest_enabled,
			digest_time = EXCLUDED.digest_time,
			realtime_enabled = EXCLUDED.realtime_enabled,
			onboarding_complete = EXCLUDED.onboarding_complete,
			updated_at = EXCLUDED.updated_at`,
		s.ThemeMode,
		pq.StringArray(s.SavedSections),
		pq.StringArray(s.SavedProfessors),
		s.NotificationsEnabled,
		null.NewString(s.Notification.Section, s.Notification.Section != ""),
		null.NewString(s.Notification.Professor, s.Notification.Professor != ""),
		s.Notification.DigestEnabled,
		s.Notification.DigestTime,
		s.Notification.RealtimeEnabled,
		s.OnboardingComplete,
		s.UpdatedAt,
	)
	return errors.Wrap(err, "saving settings")
}

func (repo *prefsRepository) SavedSubscription(ctx context.Context) (*subscription.Record, error) {
	var row struct {
		Endpoint string `db:"endpoint"`
		P256dh   string `db:"p256dh"`
		Auth     string `db:"auth"`
	}
	err := repo.db.GetContext(ctx, &row,
		`SELECT endpoint, p256dh, auth FROM push_subscription ORDER BY created_at DESC LIMIT 1`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying subscription")
	}
	return &subscription.Record{
		Endpoint: row.Endpoint,
		Keys:     subscription.Keys{P256dh: row.P256dh, Auth: row.Auth},
	}, nil
}

func (repo *prefsRepository) SaveSubscription(ctx context.Context, rec *subscription.Record) error {
	if rec == nil {
		return repo.ClearSubscription(ctx)
	}
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	// only one subscription is ever active
	if _, err := tx.ExecContext(ctx, `DELETE FROM push_subscription`); err != nil {
		return errors.Wrap(err, "clearing previous subscription")
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO push_subscription (endpoint, p256dh, auth) VALUES ($1, $2, $3)`,
		rec.Endpoint, rec.Keys.P256dh, rec.Keys.Auth,
	); err != nil {
		return errors.Wrap(err, "saving subscription")
	}
	return errors.Wrap(tx.Commit(), "committing subscription")
}

func (repo *prefsRepository) ClearSubscription(ctx context.Context) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM push_subscription`)
	return errors.Wrap(err, "clearing subscription")
}
