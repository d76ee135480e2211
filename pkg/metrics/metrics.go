package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records remote catalog call outcomes and latency.
type CatalogMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Duration of remote catalog calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"call"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_request_success",
		Help: "Successful remote catalog calls.",
	}, []string{"call"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_request_failure",
		Help: "Failed remote catalog calls.",
	}, []string{"call"})
	reg.MustRegister(duration, success, failure)
	return &CatalogMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named catalog call.
func (c *CatalogMetrics) ObserveDuration(call string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(call)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named catalog call.
func (c *CatalogMetrics) IncSuccess(call string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(call)).Inc()
}

// IncFailure increments the failure counter for the named catalog call.
func (c *CatalogMetrics) IncFailure(call string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(call)).Inc()
}

func normalizeLabel(call string) string {
	if call == "" {
		return "unknown"
	}
	return call
}
