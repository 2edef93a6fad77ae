package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/keyring-api/internal/config"
	"github.com/phrazzld/keyring-api/internal/platform/metrics"
	"github.com/phrazzld/keyring-api/internal/service"
	"github.com/phrazzld/keyring-api/internal/service/auth"
	"github.com/phrazzld/keyring-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore   store.UserStore
	userService service.UserService

	registry *prometheus.Registry
	metrics  metrics.Recorder

	closers []func()
}

// newApplication connects the configured user store and wires the service
// and metrics on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	userStore, closeStore, err := openUserStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}
	app.userStore = userStore
	app.closers = append(app.closers, closeStore)

	hasher := auth.NewBcryptHasher(cfg.Security.BcryptCost)
	app.userService = service.NewUserService(app.userStore, hasher, logger)

	app.registry = prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		app.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		app.metrics = metrics.NewCollector(app.registry)
	} else {
		app.metrics = metrics.NopRecorder{}
	}

	logger.Info("application initialized",
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("metrics_enabled", cfg.Metrics.Enabled))
	return app, nil
}

// cleanup releases resources in reverse order of acquisition.
func (app *application) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
}
