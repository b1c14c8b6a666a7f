package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the reservation client:
// outbound backend calls and background availability refreshes.
type Metrics struct {
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	refreshTotal       *prometheus.CounterVec
	refreshSkipped     prometheus.Counter
}

// New creates and registers the collectors on the default registry.
// serviceName becomes the "service" const label on every metric.
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "backend_requests_total",
				Help:        "Outbound requests to the reservation backend by operation and status code.",
				ConstLabels: labels,
			},
			[]string{"operation", "status"},
		),
		apiRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "backend_request_duration_seconds",
				Help:        "Outbound request latency by operation.",
				ConstLabels: labels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		refreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "availability_refresh_total",
				Help:        "Background availability refreshes by result.",
				ConstLabels: labels,
			},
			[]string{"result"},
		),
		refreshSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "availability_refresh_skipped_total",
				Help:        "Refresh ticks skipped because a refresh was still in flight.",
				ConstLabels: labels,
			},
		),
	}

	prometheus.MustRegister(
		m.apiRequestsTotal,
		m.apiRequestDuration,
		m.refreshTotal,
		m.refreshSkipped,
	)

	return m
}

// ObserveAPIRequest records one outbound backend call
func (m *Metrics) ObserveAPIRequest(operation, status string, duration time.Duration) {
	m.apiRequestsTotal.WithLabelValues(operation, status).Inc()
	m.apiRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncRefresh records the result of a background refresh ("success" or "error")
func (m *Metrics) IncRefresh(result string) {
	m.refreshTotal.WithLabelValues(result).Inc()
}

// IncRefreshSkipped records a tick skipped by the re-entrancy guard
func (m *Metrics) IncRefreshSkipped() {
	m.refreshSkipped.Inc()
}
