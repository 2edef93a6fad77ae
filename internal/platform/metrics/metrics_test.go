package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/v1/users", http.StatusOK, 20*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/v1/users", http.StatusOK, 30*time.Millisecond)
	c.RecordRequest(http.MethodPost, "/v1/users", http.StatusBadRequest, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/v1/users", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("POST", "/v1/users", "400")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.latency))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest(http.MethodDelete, "/v1/users/{userId}", http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "keyring_http_requests_total")
	assert.Contains(t, string(body), "keyring_http_request_duration_seconds")
}

func TestNopRecorder(t *testing.T) {
	assert.NotPanics(t, func() {
		NopRecorder{}.RecordRequest("GET", "/", 200, time.Second)
	})
}
