// Package metrics collects HTTP request metrics and exposes them for
// Prometheus scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the HTTP layer needs from a metrics backend.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
}

// Collector records request counts and latencies in Prometheus metrics.
type Collector struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keyring_http_requests_total",
			Help: "HTTP requests handled, by method, route and status code",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keyring_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(c.requests, c.latency)
	return c
}

// RecordRequest records one completed request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopRecorder discards everything. Used when metrics are disabled.
type NopRecorder struct{}

// RecordRequest implements Recorder.
func (NopRecorder) RecordRequest(string, string, int, time.Duration) {}
