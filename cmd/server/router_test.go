package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/keyring-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(metricsEnabled bool) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            0,
			LogLevel:        "error",
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		Security: config.SecurityConfig{BcryptCost: 4},
		Metrics:  config.MetricsConfig{Enabled: metricsEnabled},
	}
}

func newTestApp(t *testing.T, metricsEnabled bool) *application {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), testConfig(metricsEnabled), log)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func TestRouter_Health(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestRouter_UserRoundTripAndMetrics(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	body := `{"email":"a@x.com","password":"password1","name":"Alice","role":"user"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password1")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/users", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalResults":1`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `keyring_http_requests_total{method="POST"`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	router := newTestApp(t, false).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunMigrations_RejectsNonPostgres(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := runMigrations(context.Background(), testConfig(false), log, "up")
	assert.ErrorContains(t, err, "require the postgres driver")

	cfg := testConfig(false)
	cfg.Database.Driver = config.DriverPostgres
	err = runMigrations(context.Background(), cfg, log, "sideways")
	assert.ErrorContains(t, err, `unknown migration command "sideways"`)
}

func TestOpenUserStore_UnknownDriver(t *testing.T) {
	cfg := testConfig(false)
	cfg.Database.Driver = "sqlite"
	_, _, err := openUserStore(context.Background(), cfg, slog.Default())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestStartHTTPServer_StopsOnCancel(t *testing.T) {
	app := newTestApp(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, app.setupRouter()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
