package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/BurgerClient_Go/internal/apiclient"
	"github.com/osse101/BurgerClient_Go/internal/builder"
	"github.com/osse101/BurgerClient_Go/internal/burgerapi"
	"github.com/osse101/BurgerClient_Go/internal/catalog"
	"github.com/osse101/BurgerClient_Go/internal/config"
	"github.com/osse101/BurgerClient_Go/internal/credentials"
	"github.com/osse101/BurgerClient_Go/internal/event"
	"github.com/osse101/BurgerClient_Go/internal/orders"
	"github.com/osse101/BurgerClient_Go/internal/scheduler"
	"github.com/osse101/BurgerClient_Go/internal/session"
	"github.com/osse101/BurgerClient_Go/internal/worker"
)

// App is the fully wired client
type App struct {
	Config  *config.Config
	Bus     *event.MemoryBus
	Store   *credentials.Store
	Client  *apiclient.Client
	API     *burgerapi.Service
	Catalog *catalog.Catalog
	Builder *builder.Builder
	Orders  *orders.Collections
	Session *session.Session

	mu      sync.Mutex
	closers []io.Closer
	watches []ShutdownComponents
}

// New opens the credential store named by cfg.StateDB and wires the client
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, closer, err := OpenCredentialStore(ctx, cfg.StateDB)
	if err != nil {
		return nil, err
	}
	app := NewWithStore(cfg, store)
	app.closers = append(app.closers, closer)
	return app, nil
}

// NewWithStore wires the client around an existing credential store
func NewWithStore(cfg *config.Config, store *credentials.Store) *App {
	bus := InitializeEventSystem()
	client := apiclient.NewClient(cfg.APIBaseURL, store, bus, cfg.RequestTimeout)
	api := burgerapi.NewService(client, store)

	app := &App{
		Config:  cfg,
		Bus:     bus,
		Store:   store,
		Client:  client,
		API:     api,
		Catalog: catalog.New(api),
		Builder: builder.New(api, bus),
		Orders:  orders.New(api, cfg.OrderCacheSize, cfg.OrderCacheTTL),
		Session: session.New(api, store, bus),
	}

	RegisterEventHandlers(EventHandlerDependencies{
		EventBus: bus,
		Orders:   app.Orders,
		Session:  app.Session,
	})
	return app
}

// Warm loads the catalog, probes the session and fetches the feed
// concurrently. Every step runs to completion; the first failure is returned.
func (a *App) Warm(ctx context.Context) error {
	var g errgroup.Group
	steps := map[string]func(context.Context) error{
		"catalog": a.Catalog.Load,
		"session": a.Session.Probe,
		"feed":    a.Orders.FetchFeed,
	}
	for name, step := range steps {
		g.Go(func() error {
			if err := step(ctx); err != nil {
				slog.Warn(LogMsgWarmupFailed, "step", name, "error", err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// WatchFeed polls the feed every interval, starting right away, and passes
// changes to notify. The returned function stops the watch; Close stops any
// watch still running.
func (a *App) WatchFeed(ctx context.Context, interval time.Duration, notify func(context.Context, worker.FeedUpdate)) func() {
	pool := worker.NewPool(FeedWatchWorkers, FeedWatchQueueSize)
	pool.Start(ctx)
	sched := scheduler.New(pool)
	sched.Schedule(interval, worker.NewFeedWatchJob(a.Orders, notify), true)
	slog.Debug(LogMsgFeedWatchStarted, "interval", interval)

	watch := ShutdownComponents{Scheduler: sched, Pool: pool}
	a.mu.Lock()
	a.watches = append(a.watches, watch)
	a.mu.Unlock()

	return func() {
		stopWatch(watch)
		slog.Debug(LogMsgFeedWatchStopped)
	}
}

// Close stops feed watches and releases the credential store
func (a *App) Close() error {
	a.mu.Lock()
	components := ShutdownComponents{Closers: a.closers}
	watches := a.watches
	a.closers, a.watches = nil, nil
	a.mu.Unlock()

	for _, w := range watches {
		stopWatch(w)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return GracefulShutdown(ctx, components)
}
