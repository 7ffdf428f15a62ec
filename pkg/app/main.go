package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghuser/itemboard/migrations/item"
	"github.com/ghuser/itemboard/pkg/config"
	"github.com/ghuser/itemboard/pkg/database"
	"github.com/ghuser/itemboard/pkg/events"
	"github.com/ghuser/itemboard/pkg/kv"
	"github.com/ghuser/itemboard/pkg/logger"
	"github.com/ghuser/itemboard/pkg/migrator"
	itemevents "github.com/ghuser/itemboard/services/item/domain/events"
)

// Application holds shared infrastructure dependencies for all services.
// Only the handles the configured DB_DRIVER needs are opened; the rest stay nil.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item created", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to list items", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database // postgres, mysql, sqlite
	Logger   logger.Logger
	EventBus *events.EventBus // postgres with EVENTS_ENABLED
	Redis    *kv.RedisClient  // redis
}

// Options tunes what New opens beyond the store itself.
type Options struct {
	// Migrate applies pending goose migrations to the SQL store.
	Migrate bool
	// Forwarder routes outbox writes through the forwarder queue and starts
	// the forwarder daemon.
	Forwarder bool
}

// New opens the infrastructure selected by cfg. On error everything opened so
// far is closed.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*Application, error) {
	a := &Application{Config: cfg, Logger: log}
	if err := a.open(ctx, opts); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Application) open(ctx context.Context, opts Options) error {
	cfg, log := a.Config, a.Logger

	switch cfg.DBDriver {
	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
		if err := a.openDatabase(ctx, opts.Migrate); err != nil {
			return err
		}
	case config.DriverRedis:
		rc, err := kv.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		a.Redis = rc
		log.Info("redis connected")
	case config.DriverMemory:
		log.Warn("using in-memory item store; items are lost on restart")
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if !cfg.EventsEnabled {
		return nil
	}
	if cfg.DBDriver != config.DriverPostgres {
		log.Warn("EVENTS_ENABLED requires the postgres driver; item.created events are disabled", "driver", cfg.DBDriver)
		return nil
	}
	bus, err := events.NewEventBus(a.Db.DB(), events.Options{
		ConsumerGroup: cfg.ServiceName + "-consumer",
		UseForwarder:  opts.Forwarder,
	}, log)
	if err != nil {
		return fmt.Errorf("setup event bus: %w", err)
	}
	a.EventBus = bus
	if err := bus.InitTopics(itemevents.TopicItemCreated); err != nil {
		return err
	}
	if opts.Forwarder {
		if err := bus.StartForwarder(ctx); err != nil {
			return fmt.Errorf("start event forwarder: %w", err)
		}
	}
	return nil
}

func (a *Application) openDatabase(ctx context.Context, migrate bool) error {
	dsn, err := a.Config.DSN()
	if err != nil {
		return err
	}
	pool, err := database.NewPool(ctx, a.Config.SQLDriverName(), dsn, a.Logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	a.Db = pool
	a.Logger.Info("database pool connected", "driver", pool.Driver())

	if !migrate {
		return nil
	}
	files, err := item.FS(pool.Driver())
	if err != nil {
		return err
	}
	if err := migrator.RunMigrations(ctx, pool.DB(), pool.Driver(), files, a.Logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases every opened handle. The event bus is closed before the
// database it writes to.
func (a *Application) Close() error {
	var errs []error
	if a.EventBus != nil {
		errs = append(errs, a.EventBus.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.Db != nil {
		errs = append(errs, a.Db.Close())
	}
	return errors.Join(errs...)
}
