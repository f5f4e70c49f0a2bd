package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
	"github.com/entrepeneur4lyf/sqlpilot/internal/config"
	"github.com/entrepeneur4lyf/sqlpilot/internal/events"
	"github.com/entrepeneur4lyf/sqlpilot/internal/notifications"
	"github.com/entrepeneur4lyf/sqlpilot/internal/router"
	"github.com/entrepeneur4lyf/sqlpilot/internal/store"
)

// Snapshot names for persisted store state
const (
	snapshotAuth  = "auth"
	snapshotQuery = "query"
)

// App wires the client together: configuration, the event bus, the HTTP
// gateway, and the state stores. Everything is instance-scoped so tests
// can build isolated copies.
type App struct {
	Config        *config.Config
	Bus           *events.Bus
	Notifications *notifications.Manager
	Client        *api.Client

	Auth     *store.AuthStore
	Query    *store.QueryStore
	Training *store.TrainingStore
	UI       *store.UIStore

	Guard       *router.Guard
	Persistence *store.Persistence
	Logger      *log.Logger
}

// New creates an application with all systems initialized and persisted
// state restored
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = log.Default()
	}

	bus := events.NewBus()
	notifier := notifications.NewManager(bus)

	client := api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithNotifier(notifier),
		api.WithLogger(logger),
	)

	app := &App{
		Config:        cfg,
		Bus:           bus,
		Notifications: notifier,
		Client:        client,
		Auth:          store.NewAuthStore(api.NewAuthAPI(client), bus, logger),
		Query:         store.NewQueryStore(api.NewQueryAPI(client), logger),
		Training:      store.NewTrainingStore(api.NewTrainingAPI(client), notifier, logger),
		UI:            store.NewUIStore(cfg, bus, logger),
		Persistence:   store.NewPersistence(cfg.SnapshotDir(), logger),
		Logger:        logger,
	}

	app.Guard = router.NewGuard(app.Auth)

	// The session store owns the token; the client reads it per request.
	client.SetTokenSource(app.Auth)
	client.SetUnauthorizedHandler(func() {
		app.Auth.Logout()
		bus.Navigation.Publish(events.NavigationRequested, events.NavigationPayload{Path: router.PathLogin})
	})

	app.Persistence.Restore(snapshotAuth, app.Auth)
	app.Persistence.Restore(snapshotQuery, app.Query)

	app.UI.Initialize()
	if err := app.Auth.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	return app, nil
}

// Shutdown persists store snapshots and stops the event bus
func (a *App) Shutdown() {
	if err := a.Persistence.Save(snapshotAuth, a.Auth.Snapshot()); err != nil {
		a.Logger.Warn("saving auth snapshot failed", "error", err)
	}
	if err := a.Persistence.Save(snapshotQuery, a.Query.Snapshot()); err != nil {
		a.Logger.Warn("saving query snapshot failed", "error", err)
	}
	a.Bus.Shutdown()
}
