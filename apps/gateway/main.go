package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/aamritt0/FermiToday-pwa/apps/gateway/echo"
	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/prefs"
	"github.com/aamritt0/FermiToday-pwa/core/subscription"
	"github.com/aamritt0/FermiToday-pwa/core/worker"
	backendsvc "github.com/aamritt0/FermiToday-pwa/services/backend"
	logsvc "github.com/aamritt0/FermiToday-pwa/services/logger"
	pushsvc "github.com/aamritt0/FermiToday-pwa/services/push"
	cachestore "github.com/aamritt0/FermiToday-pwa/storage/cache"
	"github.com/aamritt0/FermiToday-pwa/storage/database"
	inmemdb "github.com/aamritt0/FermiToday-pwa/storage/database/inmem"
	"github.com/aamritt0/FermiToday-pwa/storage/database/sqlxrepos"
)

const shutdownTimeout = 20 * time.Second

func main() {
	debug := core.Conf.GetBool("debug")

	// =========================================================================
	// Set up Dependencies

	std := log.New(os.Stdout, "GATEWAY : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std)
	}

	// set up storage
	var repo prefs.Repository
	if debug {
		repo = inmemdb.NewPrefsRepository()
	} else {
		db, err := database.Open()
		if err != nil {
			logger.Fatal("setting up database", err)
		}
		defer db.Close()
		repo = sqlxrepos.NewPrefsRepository(db)
	}
	prefsSvc := prefs.NewService(repo)

	// set up services
	backend := backendsvc.NewClient(core.Conf.GetString("backendURL"), logger)
	platform := pushsvc.NewManager(true /* permission granted */)
	subSvc := subscription.NewService(platform, backend, repo, logger)

	// =========================================================================
	// Initialize Worker

	origin, err := url.Parse(core.Conf.GetString("originURL"))
	if err != nil {
		logger.Fatal("parsing originURL", err)
	}
	backendURL, err := url.Parse(core.Conf.GetString("backendURL"))
	if err != nil {
		logger.Fatal("parsing backendURL", err)
	}

	wctx := worker.NewContext(
		core.Conf.GetString("cacheVersion"),
		core.Conf.GetStringSlice("shellAssets"),
		origin,
		backendURL,
		core.Conf.GetString("registrationScope"),
	)

	hub := echoapi.NewHub()
	driver := worker.NewDriver(
		wctx,
		cachestore.NewMemoryStore(),
		backendsvc.NewFetcher(),
		hub,
		hub,
		recoverer{subSvc: subSvc, prefsSvc: prefsSvc},
		logger,
	)

	// a dropped platform subscription re-enters the worker as an event
	platform.OnSubscriptionChange(func() {
		if _, err := driver.Dispatch(context.Background(), worker.Event{Kind: worker.KindSubscriptionChange}); err != nil {
			logger.Error("dispatching subscription change", err)
		}
	})

	ctx := context.Background()
	if err := driver.Install(ctx); err != nil {
		// serve without an offline shell rather than not at all
		logger.Warn("shell precache failed; continuing without offline shell", err)
	}
	if err := driver.Activate(ctx); err != nil {
		logger.Fatal("activating worker", err)
	}
	logger.Info(fmt.Sprintf("worker %s active", driver.Version()))

	// =========================================================================
	// Start Gateway

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:         core.Conf.GetString("serverAddr"),
			Driver:          driver,
			Hub:             hub,
			SubscriptionSvc: subSvc,
			PrefsSvc:        prefsSvc,
			Logger:          logger,
			Validate:        validate,
			Translator:      translator,
		},
		func() { shutdown <- syscall.SIGTERM },
	)

	go server.Start()

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(stopCtx); err != nil {
		logger.Error("could not stop server gracefully", err)
	}

	// let in-flight worker operations finish
	driver.Wait()
	logger.Info("Application stopped")
}

// recoverer renews the push subscription with the preferences on record.
type recoverer struct {
	subSvc   *subscription.Service
	prefsSvc *prefs.Service
}

func (r recoverer) Recover(ctx context.Context) error {
	s, err := r.prefsSvc.Get(ctx)
	if err != nil {
		return err
	}
	if !s.NotificationsEnabled {
		return nil // nothing to renew
	}
	_, err = r.subSvc.Recover(ctx, s.Notification)
	return err
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
