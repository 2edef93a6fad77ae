package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/keyring-api/internal/config"
	"github.com/phrazzld/keyring-api/internal/platform/postgres"
)

// runMigrations applies a goose command to the PostgreSQL schema. The other
// drivers carry their schema in code and have nothing to migrate.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the %s driver, configured driver is %q",
			config.DriverPostgres, cfg.Database.Driver)
	}

	switch command {
	case postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion:
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	logger.Info("running migration", slog.String("command", command))
	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	logger.Info("migration finished", slog.String("command", command))
	return nil
}
