package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/listener"
	"github.com/phrazzld/roster-api/internal/platform/kafka"
	"github.com/phrazzld/roster-api/internal/platform/memory"
	"github.com/phrazzld/roster-api/internal/platform/metrics"
	"github.com/phrazzld/roster-api/internal/platform/postgres"
	"github.com/phrazzld/roster-api/internal/platform/redis"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/service/auth"
	"github.com/phrazzld/roster-api/internal/store"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *goredis.Client
	sink  *kafka.Sink

	metrics   *metrics.Metrics
	pool      *events.WorkerPool
	bus       *events.Bus
	uow       store.UnitOfWork
	listeners *listener.Listeners

	jwtService    auth.JWTService
	people        service.PersonService
	organizations service.OrganizationService
	jobs          service.JobService
}

// newApplication wires every dependency described by cfg. On error, whatever
// was already opened is released.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}
	defer func() {
		if err != nil {
			app.cleanup(context.Background())
		}
	}()

	app.pool = events.NewWorkerPool(events.WorkerPoolConfig{
		WorkerCount: cfg.Events.AsyncWorkers,
		QueueSize:   cfg.Events.AsyncQueueSize,
	}, logger)
	app.bus = events.NewBus(logger,
		events.WithScheduler(app.pool),
		events.WithMetrics(app.metrics),
	)

	if err := app.setupStorage(ctx); err != nil {
		return nil, err
	}

	deps, err := app.listenerDeps(ctx)
	if err != nil {
		return nil, err
	}
	app.listeners = listener.Register(app.bus, deps)

	if err := app.setupServices(); err != nil {
		return nil, err
	}

	logger.Info("application initialized", "version", version)
	return app, nil
}

func (app *application) setupStorage(ctx context.Context) error {
	switch app.config.Database.Driver {
	case config.DriverMemory:
		app.uow = memory.NewStore(app.logger)
		app.logger.Warn("using in-memory storage, data is lost on restart")
		return nil
	case config.DriverPostgres:
		db, err := openDatabase(ctx, app.config.Database, app.logger)
		if err != nil {
			return err
		}
		app.db = db
		if err := postgres.Migrate(ctx, db, app.logger); err != nil {
			return err
		}
		app.uow = postgres.NewUnitOfWork(db, app.logger)
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}
}

func (app *application) listenerDeps(ctx context.Context) (listener.Deps, error) {
	cfg := app.config
	ttl := time.Duration(cfg.Redis.IdempotencyTTLMinutes) * time.Minute

	deps := listener.Deps{
		Logger:      app.logger,
		Notifier:    listener.NewLoggingNotifier(app.logger),
		JournalSize: cfg.Events.JournalSize,
		JobMetrics:  app.metrics,
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return deps, err
	}
	if client != nil {
		app.redis = client
		idem, err := redis.NewIdempotencyStore(client, ttl)
		if err != nil {
			return deps, err
		}
		deps.Idempotency = idem
		app.logger.Info("notification idempotency backed by redis")
	} else {
		deps.Idempotency = listener.NewMemoryIdempotencyStore(ttl, listener.DefaultIdempotencyCapacity)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := kafka.NewSink(cfg.Kafka, app.logger)
		if err != nil {
			return deps, err
		}
		app.sink = sink
		deps.Sink = sink
		app.logger.Info("event export enabled", "topic", cfg.Kafka.Topic)
	}

	return deps, nil
}

func (app *application) setupServices() error {
	var err error
	if app.people, err = service.NewPersonService(app.uow, app.bus, app.logger); err != nil {
		return fmt.Errorf("failed to create person service: %w", err)
	}
	if app.organizations, err = service.NewOrganizationService(app.uow, app.bus, app.logger); err != nil {
		return fmt.Errorf("failed to create organization service: %w", err)
	}
	if app.jobs, err = service.NewJobService(app.bus, app.logger); err != nil {
		return fmt.Errorf("failed to create job service: %w", err)
	}

	if app.config.Auth.Enabled {
		if app.jwtService, err = auth.NewJWTService(app.config.Auth); err != nil {
			return fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		app.logger.Info("bearer authentication enabled",
			"token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes)
	}
	return nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	return app.serve(ctx, app.routes())
}

// announceStartup publishes ApplicationStarted once the listener is bound.
func (app *application) announceStartup(ctx context.Context) {
	if err := app.bus.Publish(ctx, events.NewApplicationStarted(version)); err != nil {
		app.logger.Error("failed to publish startup event", "error", err)
	}
}

// cleanup drains the async listeners and then closes outbound connections.
func (app *application) cleanup(ctx context.Context) {
	var errs []error
	if app.pool != nil {
		if err := app.pool.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("event worker pool: %w", err))
		}
	}
	if app.sink != nil {
		app.sink.Close()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		app.logger.Error("application shutdown completed with errors", "error", err)
		return
	}
	app.logger.Info("application shutdown completed")
}
