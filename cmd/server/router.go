package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/keyring-api/internal/api"
	apiMiddleware "github.com/phrazzld/keyring-api/internal/api/middleware"
	"github.com/phrazzld/keyring-api/internal/platform/metrics"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewMetricsMiddleware(app.metrics))
	r.Use(middleware.Recoverer)

	userHandler := api.NewUserHandler(app.userService, app.logger)
	r.Route("/v1", userHandler.RegisterRoutes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	if app.config.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))
	}

	return r
}
