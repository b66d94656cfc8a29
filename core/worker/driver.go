package worker

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/notification"
	cachestore "github.com/aamritt0/FermiToday-pwa/storage/cache"
)

type (
	// Fetcher performs the actual network round trip for a URL.
	Fetcher interface {
		Get(ctx context.Context, url string) (cachestore.Response, error)
	}

	// Displayer shows notifications to the user.
	Displayer interface {
		Show(payload notification.Payload) error
		Close(tag string) error
	}

	// Messenger reaches the open application windows.
	Messenger interface {
		Post(clientID string, msg interface{}) error
		Focus(clientID string) error
		Open(url string) error
		Claim() error
	}

	// Recoverer renews an invalidated push subscription.
	Recoverer interface {
		Recover(ctx context.Context) error
	}
)

// State is the worker lifecycle state.
type State int

const (
	StateNew State = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActive
)

func (s State) String() string {
	switch s {
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	}
	return "new"
}

// Driver owns one worker instance: it dispatches events through the
// handler table and executes the resulting effects. Every asynchronous
// operation is registered on a WaitGroup so the worker is not torn down
// mid-operation; Wait drains it.
type Driver struct {
	wctx      *Context
	handlers  map[Kind]Handler
	store     cachestore.Store
	fetch     Fetcher
	display   Displayer
	messenger Messenger
	recoverer Recoverer
	log       core.Logger

	mutex         sync.Mutex
	state         State
	skipRequested bool
	pending       sync.WaitGroup
}

func NewDriver(
	wctx *Context,
	store cachestore.Store,
	fetch Fetcher,
	display Displayer,
	messenger Messenger,
	recoverer Recoverer,
	log core.Logger,
) *Driver {
	return &Driver{
		wctx:      wctx,
		handlers:  Handlers(),
		store:     store,
		fetch:     fetch,
		display:   display,
		messenger: messenger,
		recoverer: recoverer,
		log:       log,
	}
}

func (d *Driver) Version() string { return d.wctx.Version }

func (d *Driver) State() State {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mutex.Lock()
	d.state = s
	d.mutex.Unlock()
}

// Wait blocks until every registered asynchronous operation has completed.
func (d *Driver) Wait() {
	d.pending.Wait()
}

// async runs fn with the event-lifetime extension the platform's waitUntil
// would provide.
func (d *Driver) async(fn func()) {
	d.pending.Add(1)
	go func() {
		defer d.pending.Done()
		fn()
	}()
}

// Install runs the install step. Failure aborts activation of this version
// entirely; a previously active version keeps serving.
func (d *Driver) Install(ctx context.Context) error {
	d.setState(StateInstalling)
	if _, err := d.Dispatch(ctx, Event{Kind: KindInstall}); err != nil {
		d.setState(StateNew)
		return errors.Wrap(err, "install failed")
	}
	d.setState(StateInstalled)

	d.mutex.Lock()
	skip := d.skipRequested
	d.mutex.Unlock()
	if skip {
		return d.Activate(ctx)
	}
	return nil
}

// Activate cleans up stale cache versions and takes control of all clients.
func (d *Driver) Activate(ctx context.Context) error {
	d.setState(StateActivating)
	if _, err := d.Dispatch(ctx, Event{Kind: KindActivate}); err != nil {
		return errors.Wrap(err, "activate failed")
	}
	d.setState(StateActive)
	return nil
}

// Dispatch routes an event through the handler table and executes the
// resulting effects. For fetch events the routed response is returned;
// a nil response with a nil error means "no response" (offline, no cache).
func (d *Driver) Dispatch(ctx context.Context, ev Event) (*cachestore.Response, error) {
	handler, ok := d.handlers[ev.Kind]
	if !ok {
		return nil, errors.Errorf("no handler for event kind %q", ev.Kind)
	}
	effects, err := handler(ev, d.wctx)
	if err != nil {
		return nil, err
	}

	var resp *cachestore.Response
	for _, effect := range effects {
		r, err := d.exec(ctx, effect)
		if err != nil {
			return nil, err
		}
		if r != nil {
			resp = r
		}
	}
	return resp, nil
}

func (d *Driver) exec(ctx context.Context, effect Effect) (*cachestore.Response, error) {
	switch ef := effect.(type) {
	case PrecacheShell:
		return nil, d.precache(ctx, ef.Assets)

	case SkipWaiting:
		d.mutex.Lock()
		d.skipRequested = true
		installed := d.state == StateInstalled
		d.mutex.Unlock()
		if installed {
			return nil, d.Activate(ctx)
		}
		return nil, nil

	case CleanStaleCaches:
		return nil, d.cleanStaleCaches()

	case ClaimClients:
		if err := d.messenger.Claim(); err != nil {
			d.log.Warn("claiming clients failed", err)
		}
		return nil, nil

	case FetchRoute:
		return d.execFetch(ctx, ef)

	case Reply:
		ef.To <- d.wctx.Version
		return nil, nil

	case ShowNotification:
		d.async(func() {
			if err := d.display.Show(ef.Payload); err != nil {
				d.log.Error("showing notification failed", err)
			}
		})
		return nil, nil

	case CloseNotification:
		if err := d.display.Close(ef.Tag); err != nil {
			d.log.Warn("closing notification failed", err)
		}
		return nil, nil

	case FocusClient:
		if err := d.messenger.Focus(ef.ClientID); err != nil {
			d.log.Warn("focusing client failed", err)
		}
		return nil, nil

	case PostMessage:
		if err := d.messenger.Post(ef.ClientID, ef.Message); err != nil {
			d.log.Warn("posting message to client failed", err)
		}
		return nil, nil

	case OpenWindow:
		if err := d.messenger.Open(ef.URL); err != nil {
			d.log.Warn("opening window failed", err)
		}
		return nil, nil

	case RecoverSubscription:
		d.async(func() {
			if err := d.recoverer.Recover(context.Background()); err != nil {
				d.log.Error("subscription recovery failed", err)
			}
		})
		return nil, nil
	}
	return nil, errors.Errorf("unknown effect %T", effect)
}

// precache fetches and stores the whole app shell; any failure fails the
// install step.
func (d *Driver) precache(ctx context.Context, assets []string) error {
	cache, err := d.store.Open(d.wctx.Version)
	if err != nil {
		return errors.Wrap(err, "opening cache")
	}
	for _, asset := range assets {
		url := asset
		if d.wctx.Origin != nil {
			url = d.wctx.Origin.String() + asset
		}
		resp, err := d.fetch.Get(ctx, url)
		if err != nil {
			return errors.Wrapf(err, "fetching shell asset %s", asset)
		}
		if err := cache.Put(url, resp); err != nil {
			return errors.Wrapf(err, "caching shell asset %s", asset)
		}
	}
	return nil
}

func (d *Driver) cleanStaleCaches() error {
	names, err := d.store.Names()
	if err != nil {
		return errors.Wrap(err, "listing caches")
	}
	for _, name := range names {
		if name == d.wctx.Version {
			continue
		}
		if _, err := d.store.Delete(name); err != nil {
			return errors.Wrapf(err, "deleting stale cache %s", name)
		}
	}
	return nil
}

func (d *Driver) execFetch(ctx context.Context, ef FetchRoute) (*cachestore.Response, error) {
	key := d.wctx.Resolve(ef.Request)
	cache, err := d.store.Open(d.wctx.Version)
	if err != nil {
		return nil, errors.Wrap(err, "opening cache")
	}

	switch ef.Policy {
	case NetworkFirst:
		resp, err := d.fetch.Get(ctx, key)
		if err == nil {
			d.cachePut(cache, key, resp)
			return &resp, nil
		}
		if cached, ok, cerr := cache.Match(key); cerr == nil && ok {
			return &cached, nil
		}
		return nil, nil // no response: offline and nothing cached

	default: // CacheFirst
		if cached, ok, err := cache.Match(key); err == nil && ok {
			return &cached, nil
		}
		resp, err := d.fetch.Get(ctx, key)
		if err != nil {
			return nil, errors.Wrap(core.ErrNetworkUnavailable, err.Error())
		}
		if resp.Status == 200 && d.wctx.SameOrigin(resp.URL) {
			d.cachePut(cache, key, resp)
		}
		return &resp, nil
	}
}

// cachePut writes fire-and-forget: a failed write must never fail the
// response being returned to the page.
func (d *Driver) cachePut(cache cachestore.Cache, key string, resp cachestore.Response) {
	d.async(func() {
		if err := cache.Put(key, resp); err != nil {
			d.log.Warn("cache write failed", err)
		}
	})
}
