// internal/metrics/prometheus.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP server metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Remote catalog metrics
	CatalogRequests *prometheus.CounterVec
	CatalogDuration *prometheus.HistogramVec
}

// NewMetrics creates Prometheus metrics and registers them with reg.
// A nil reg registers with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "locatecar_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "locatecar_http_request_duration_seconds",
				Help:    "Duration of HTTP request processing",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		CatalogRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "locatecar_catalog_requests_total",
				Help: "Total number of requests sent to the remote catalog",
			},
			[]string{"operation", "outcome"},
		),

		CatalogDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "locatecar_catalog_request_duration_seconds",
				Help:    "Latency of remote catalog requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// ObserveCatalog records the outcome of one remote catalog call. Safe on a nil receiver.
func (m *Metrics) ObserveCatalog(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.CatalogRequests.WithLabelValues(operation, outcome).Inc()
	m.CatalogDuration.WithLabelValues(operation).Observe(seconds)
}

// ObserveRequest records one served HTTP request. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}
