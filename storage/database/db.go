package database

import (
	"database/sql"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/aamritt0/FermiToday-pwa/core"
	appfs "github.com/aamritt0/FermiToday-pwa/fs"
)

func Open() (*sql.DB, error) {
	conf := core.Conf

	var user *url.Userinfo
	if conf.GetString("database.user") != "" {
		user = url.UserPassword(conf.GetString("database.user"), conf.GetString("database.password"))
	}

	sslMode := "require"
	if conf.GetBool("database.disableTLS") {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.GetString("database.engine"),
		User:     user,
		Host:     conf.GetString("database.host") + ":" + conf.GetString("database.port"),
		Path:     conf.GetString("database.name"),
		RawQuery: q.Encode(),
	}
	return sql.Open(conf.GetString("database.engine"), u.String())
}

// Ping waits for the database to be ready. Waits 100ms longer between each attempt.
func Ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate runs a goose command ("up", "down", "status", ...) against the
// embedded migrations.
func Migrate(db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Run(command, db, "migrations", args...)
}
