package cli

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/internal/config"
	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
	"github.com/fastygo/trucar/internal/infrastructure/buffer"
	"github.com/fastygo/trucar/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/trucar/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/trucar/internal/infrastructure/redis"
	"github.com/fastygo/trucar/internal/middleware"
	"github.com/fastygo/trucar/internal/services"
	"github.com/fastygo/trucar/internal/services/lifecycle"
	"github.com/fastygo/trucar/repository"
	boltRepo "github.com/fastygo/trucar/repository/bolt"
	pgRepo "github.com/fastygo/trucar/repository/postgres"
	redisRepo "github.com/fastygo/trucar/repository/redis"
	"github.com/fastygo/trucar/repository/rest"
	"github.com/fastygo/trucar/usecase"
	"github.com/fastygo/trucar/usecase/admin"
	"github.com/fastygo/trucar/usecase/client"
	"github.com/fastygo/trucar/usecase/cost"
	"github.com/fastygo/trucar/usecase/dashboard"
	"github.com/fastygo/trucar/usecase/document"
	"github.com/fastygo/trucar/usecase/freight"
	"github.com/fastygo/trucar/usecase/fuellog"
	"github.com/fastygo/trucar/usecase/implement"
	"github.com/fastygo/trucar/usecase/journey"
	"github.com/fastygo/trucar/usecase/maintenance"
	"github.com/fastygo/trucar/usecase/notification"
	"github.com/fastygo/trucar/usecase/part"
	"github.com/fastygo/trucar/usecase/session"
	"github.com/fastygo/trucar/usecase/terminology"
	"github.com/fastygo/trucar/usecase/tire"
	"github.com/fastygo/trucar/usecase/user"
	"github.com/fastygo/trucar/usecase/vehicle"
)

const (
	redisStatePrefix = "trucar:state:"
	outboxBucket     = "outbox"
)

// App holds every wired component of one CLI invocation.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Client   *apiclient.Client
	Sessions *session.Manager
	Terms    *terminology.Resolver

	Vehicles      *vehicle.Store
	Journeys      *journey.Store
	Maintenance   *maintenance.Store
	FuelLogs      *fuellog.Store
	Parts         *part.Store
	Tires         *tire.Store
	Costs         *cost.Store
	Freight       *freight.Store
	Clients       *client.Store
	Documents     *document.Store
	Users         *user.Store
	Implements    *implement.Store
	Notifications *notification.Store
	Dashboard     *dashboard.Store
	Admin         *admin.Store

	// Monitor and Outbox are nil when the outbox is disabled.
	Monitor *monitor.Monitor
	Outbox  *services.BufferProcessor

	lifecycle *lifecycle.Manager
}

// Dependencies are the pieces of Bootstrap callers may replace.
type Dependencies struct {
	Logger   *zap.Logger
	Notifier usecase.Notifier
	// Dial replaces the TCP dialer of the API client.
	Dial fasthttp.DialFunc
}

// Bootstrap opens local storage, builds the API client and every store, and
// restores the persisted session.
func Bootstrap(ctx context.Context, cfg *config.Config, deps Dependencies) (*App, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		lifecycle: lifecycle.New(cfg.Context.ShutdownTimeout, logger),
	}
	if err := app.wire(ctx, deps); err != nil {
		_ = app.Close(context.Background())
		return nil, err
	}
	return app, nil
}

func (a *App) wire(ctx context.Context, deps Dependencies) error {
	cfg := a.Config

	db, err := buffer.OpenDB(cfg.Storage.BoltPath)
	if err != nil {
		return fmt.Errorf("open local state %s: %w", cfg.Storage.BoltPath, err)
	}
	a.lifecycle.RegisterCloser("bolt", db.Close)

	state, err := a.openState(ctx, db)
	if err != nil {
		return err
	}
	a.lifecycle.RegisterCloser("state", state.Close)

	// The unauthorized hook needs the manager, which needs the client.
	var sessions *session.Manager
	a.Client = apiclient.New(apiclient.Options{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.Context.RequestTimeout,
		MaxConnsPerHost: cfg.API.MaxConnsPerHost,
		Breaker:         cfg.API.Breaker,
		Logger:          a.Logger,
		Dial:            deps.Dial,
		Middlewares: []apiclient.Middleware{
			middleware.RequestID(),
			middleware.Logging(a.Logger),
			middleware.OnUnauthorized(func(ctx context.Context) {
				if sessions != nil {
					_ = sessions.Logout(ctx)
				}
			}, a.Logger),
		},
	})

	a.Terms = terminology.New()
	sessions = session.New(rest.NewAuthRepository(a.Client), state, a.Client, a.Terms, deps.Notifier, a.Logger)
	a.Sessions = sessions
	if err := sessions.Init(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	dispatcher := usecase.NewDispatcher()
	var outbox usecase.Outbox
	if cfg.Outbox.Enabled {
		store, err := buffer.New(db, outboxBucket, cfg.Outbox.MaxSize)
		if err != nil {
			return fmt.Errorf("open outbox: %w", err)
		}
		a.Monitor = monitor.New(a.Client, store, cfg.API.MonitorInterval, a.Logger)
		currentUser := func() int {
			if u := sessions.User(); u != nil {
				return u.ID
			}
			return 0
		}
		a.Outbox = services.NewBufferProcessor(store, a.Monitor, dispatcher, a.Logger, services.ProcessorConfig{
			Interval:    cfg.Outbox.SyncInterval,
			MaxRetries:  cfg.Outbox.MaxRetry,
			MaxAge:      cfg.Outbox.MaxAge,
			CurrentUser: currentUser,
		})
		outbox = services.NewBufferBridge(a.Outbox, currentUser)
	}

	notifier := deps.Notifier
	a.Vehicles = vehicle.New(rest.NewVehicleRepository(a.Client), notifier, a.Logger)
	a.Journeys = journey.New(rest.NewJourneyRepository(a.Client), sessions, a.Terms, a.Vehicles, notifier, a.Logger)
	a.Maintenance = maintenance.New(rest.NewMaintenanceRepository(a.Client), outbox, notifier, a.Logger)
	a.FuelLogs = fuellog.New(rest.NewFuelLogRepository(a.Client), outbox, notifier, a.Logger)
	a.Parts = part.New(rest.NewPartRepository(a.Client), notifier, a.Logger)
	a.Tires = tire.New(rest.NewTireRepository(a.Client), notifier, a.Logger)
	a.Costs = cost.New(rest.NewCostRepository(a.Client), notifier, a.Logger)
	a.Freight = freight.New(rest.NewFreightRepository(a.Client), notifier, a.Logger)
	a.Clients = client.New(rest.NewClientRepository(a.Client), notifier, a.Logger)
	a.Documents = document.New(rest.NewDocumentRepository(a.Client), notifier, a.Logger)
	a.Users = user.New(rest.NewUserRepository(a.Client), notifier, a.Logger)
	a.Implements = implement.New(rest.NewImplementRepository(a.Client), notifier, a.Logger)
	a.Notifications = notification.New(rest.NewNotificationRepository(a.Client), a.Logger)
	a.Dashboard = dashboard.New(rest.NewDashboardRepository(a.Client), a.Logger)
	a.Admin = admin.New(rest.NewAdminRepository(a.Client), sessions, notifier, a.Logger)

	a.Maintenance.RegisterCommands(dispatcher)
	a.FuelLogs.RegisterCommands(dispatcher)

	stop := sessions.ResetOnChange(
		a.Vehicles, a.Journeys, a.Maintenance, a.FuelLogs, a.Parts, a.Tires,
		a.Costs, a.Freight, a.Clients, a.Documents, a.Users, a.Implements,
		a.Notifications, a.Dashboard, a.Admin,
	)
	a.lifecycle.Register("session_listeners", func(context.Context) error {
		stop()
		return nil
	})

	a.Logger.Debug("client ready",
		zap.Strings("components", a.lifecycle.Components()),
		zap.String("api", cfg.API.BaseURL),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("outbox", cfg.Outbox.Enabled),
		zap.Strings("commands", dispatcher.Commands()))
	return nil
}

func (a *App) openState(ctx context.Context, db *bolt.DB) (repository.StateStore, error) {
	cfg := a.Config
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		rdb, err := redisInfra.NewClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return redisRepo.NewStateRepository(rdb, redisStatePrefix), nil
	case config.StoragePostgres:
		if err := pgInfra.RunMigrations(cfg, a.Logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return pgRepo.NewStateRepository(pool, cfg.AppName, func() {
			pgInfra.Close(pool, a.Logger)
		}), nil
	default:
		return boltRepo.NewStateRepository(db)
	}
}

// StartBackground runs the connectivity monitor and the scheduled outbox
// drain until Close.
func (a *App) StartBackground() {
	if a.Outbox == nil {
		return
	}
	a.Monitor.Start()
	a.lifecycle.Register("monitor", func(context.Context) error {
		a.Monitor.Stop()
		return nil
	})
	a.Outbox.Start()
	a.lifecycle.Register("outbox_processor", func(ctx context.Context) error {
		a.Outbox.Stop(ctx)
		return nil
	})
}

// Close releases everything Bootstrap and StartBackground acquired, in
// reverse order.
func (a *App) Close(ctx context.Context) error {
	if a == nil || a.lifecycle == nil {
		return nil
	}
	return a.lifecycle.Shutdown(ctx)
}
