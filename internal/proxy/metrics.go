package proxy

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the proxy's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Requests counts summarize requests by type and HTTP status.
	Requests *prometheus.CounterVec

	// UpstreamDuration measures language-model calls.
	UpstreamDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "newsdeck",
				Subsystem: "proxy",
				Name:      "requests_total",
				Help:      "Total number of summarize requests",
			},
			[]string{"type", "status"},
		),
		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "newsdeck",
				Subsystem: "proxy",
				Name:      "upstream_duration_seconds",
				Help:      "Duration of language model calls in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"provider"},
		),
	}
}

// RecordRequest counts one summarize request.
func (m *Metrics) RecordRequest(kind string, status int) {
	m.Requests.WithLabelValues(kind, statusLabel(status)).Inc()
}

// ObserveUpstream records the duration of one provider call.
func (m *Metrics) ObserveUpstream(provider string, d time.Duration) {
	m.UpstreamDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status == http.StatusTooManyRequests:
		return "429"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
