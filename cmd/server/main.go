// Package main implements the entry point for the Roster API server, which
// manages people and organizations and fans domain events out to listeners.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/platform/postgres"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.yaml if present)")
	migrateCmd := flag.String("migrate", "", "run a migration command and exit: up or version")
	flag.Parse()

	cfg, l, err := initializeApp(*configPath)
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *migrateCmd != "" {
		if err := runMigrationCommand(ctx, cfg, l, *migrateCmd); err != nil {
			l.Error("migration command failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		l.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"auth_enabled", cfg.Auth.Enabled,
		"redis_enabled", cfg.Redis.URL != "",
		"kafka_enabled", len(cfg.Kafka.Brokers) > 0)
	return cfg, l, nil
}

func runMigrationCommand(ctx context.Context, cfg *config.Config, logger *slog.Logger, cmd string) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations need the postgres driver, got %q", cfg.Database.Driver)
	}

	db, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	switch cmd {
	case "up":
		return postgres.Migrate(ctx, db, logger)
	case "version":
		v, err := postgres.MigrationVersion(ctx, db, logger)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	default:
		return fmt.Errorf("unknown migration command %q", cmd)
	}
}

func fatal(err error) {
	log.Fatalf("roster-api: %v", err)
}
