package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/keyring-api/internal/config"
	"github.com/phrazzld/keyring-api/internal/platform/memory"
	"github.com/phrazzld/keyring-api/internal/platform/mongodb"
	"github.com/phrazzld/keyring-api/internal/platform/postgres"
	"github.com/phrazzld/keyring-api/internal/store"
)

const connectTimeout = 5 * time.Second

// openUserStore builds the store selected by database.driver. The returned
// func releases its connections.
func openUserStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (store.UserStore, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", slog.String("error", err.Error()))
			}
		}
		return postgres.NewPostgresUserStore(db, logger), closeDB, nil

	case config.DriverMongoDB:
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		db, err := mongodb.Connect(connCtx, cfg.Database.URL, cfg.Database.Name, logger)
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				logger.Error("failed to disconnect from mongodb", slog.String("error", err.Error()))
			}
		}
		if err := mongodb.EnsureIndexes(connCtx, db); err != nil {
			closeClient()
			return nil, nil, err
		}
		logger.Info("mongodb connection established", slog.String("database", cfg.Database.Name))
		return mongodb.NewMongoUserStore(db, logger), closeClient, nil

	case config.DriverMemory:
		logger.Warn("using in-memory user store, data is lost on restart")
		return memory.NewUserStore(logger), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// setupAppDatabase opens a PostgreSQL pool and verifies it with a ping.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}
