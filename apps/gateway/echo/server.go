package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/prefs"
	"github.com/aamritt0/FermiToday-pwa/core/subscription"
	"github.com/aamritt0/FermiToday-pwa/core/worker"
)

type (
	Options struct {
		Address         string
		DisableReqLogs  bool
		Driver          *worker.Driver
		Hub             *Hub
		SubscriptionSvc *subscription.Service
		PrefsSvc        *prefs.Service
		Logger          core.Logger
		Validate        *validator.Validate
		Translator      ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

// Hub is the gateway's in-process client registry; exposed so main can
// share one instance between the Driver and the HTTP surface.
type Hub = clientHub

func NewHub() *Hub { return newClientHub() }

var _ Server = (*server)(nil)

func NewServer(opts *Options, signalShutdown func()) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup(signalShutdown)
	return s
}

func (s *server) setup(signalShutdown func()) {
	debug := core.Conf.GetBool("debug")

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.GetBool("testMode")) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, signalShutdown)
	s.app.Debug = debug

	registerWorkerAPI(s.app, s.opts.Driver, s.opts.Hub)
	registerVariationsAPI(s.app, s.opts.Driver)
	registerSubscriptionAPI(s.app, s.opts.SubscriptionSvc, s.opts.PrefsSvc, s.opts.Validate, s.opts.Translator)
	registerSettingsAPI(s.app, s.opts.PrefsSvc)

	// everything else is the app shell, served through the worker cache
	s.app.GET("/*", shellHandler(s.opts.Driver))
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
