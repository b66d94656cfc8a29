package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/aamritt0/FermiToday-pwa/apps/gateway/echo"
	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/prefs"
	"github.com/aamritt0/FermiToday-pwa/core/subscription"
	"github.com/aamritt0/FermiToday-pwa/core/worker"
	backendsvc "github.com/aamritt0/FermiToday-pwa/services/backend"
	pushsvc "github.com/aamritt0/FermiToday-pwa/services/push"
	cachestore "github.com/aamritt0/FermiToday-pwa/storage/cache"
	inmemdb "github.com/aamritt0/FermiToday-pwa/storage/database/inmem"
	testutil "github.com/aamritt0/FermiToday-pwa/tests"
)

const testVersion = "fermitoday-test-v1"

type rig struct {
	app      Server
	hub      *Hub
	driver   *worker.Driver
	platform *pushsvc.Manager
	repo     prefs.Repository
	shell    *httptest.Server
	backend  *httptest.Server
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) *rig {
	t.Helper()

	backendSrv := testutil.FakeBackend(t, testutil.SampleEvents("2025-01-10"))

	shellMux := http.NewServeMux()
	shellMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>shell</html>"))
	})
	shellSrv := httptest.NewServer(shellMux)
	t.Cleanup(shellSrv.Close)

	// the variations handler resolves the backend from configuration
	core.Conf.Set("backendURL", backendSrv.URL)

	origin, _ := url.Parse(shellSrv.URL)
	backendURL, _ := url.Parse(backendSrv.URL)
	wctx := worker.NewContext(testVersion, []string{"/", "/index.html"}, origin, backendURL, "/")

	logger := nopLogger{}
	repo := inmemdb.NewPrefsRepository()
	prefsSvc := prefs.NewService(repo)
	backend := backendsvc.NewClient(backendSrv.URL, logger)
	platform := pushsvc.NewManager(true)
	subSvc := subscription.NewService(platform, backend, repo, logger)

	hub := NewHub()
	driver := worker.NewDriver(
		wctx,
		cachestore.NewMemoryStore(),
		backendsvc.NewFetcher(),
		hub,
		hub,
		testRecoverer{subSvc: subSvc, prefsSvc: prefsSvc},
		logger,
	)
	platform.OnSubscriptionChange(func() {
		_, _ = driver.Dispatch(context.Background(), worker.Event{Kind: worker.KindSubscriptionChange})
	})
	if err := driver.Install(context.Background()); err != nil {
		t.Fatalf("installing worker: %v", err)
	}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	app := NewServer(
		&Options{
			DisableReqLogs:  true,
			Driver:          driver,
			Hub:             hub,
			SubscriptionSvc: subSvc,
			PrefsSvc:        prefsSvc,
			Logger:          logger,
			Validate:        validate,
			Translator:      translator,
		},
		func() {},
	)

	return &rig{
		app:      app,
		hub:      hub,
		driver:   driver,
		platform: platform,
		repo:     repo,
		shell:    shellSrv,
		backend:  backendSrv,
	}
}

// testRecoverer renews the push subscription with the preferences on record.
type testRecoverer struct {
	subSvc   *subscription.Service
	prefsSvc *prefs.Service
}

func (r testRecoverer) Recover(ctx context.Context) error {
	s, err := r.prefsSvc.Get(ctx)
	if err != nil {
		return err
	}
	if !s.NotificationsEnabled {
		return nil
	}
	_, err = r.subSvc.Recover(ctx, s.Notification)
	return err
}

type httpErr struct {
	Error string `json:"error"`
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}
