// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ResolutionsTotal tracks resolved messages by the pipeline step that
	// produced the reply.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_resolutions_total",
			Help: "Messages resolved, labeled by resolver",
		},
		[]string{"resolver"},
	)

	// PredictionDuration tracks external prediction call duration.
	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "External prediction call duration",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"provider", "status"},
	)

	// PredictionsTotal tracks external prediction calls.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total external prediction calls",
		},
		[]string{"provider", "status"},
	)

	// EscalationsTotal tracks learning escalations.
	EscalationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escalations_total",
			Help: "Total learning escalations",
		},
		[]string{"category", "kind"},
	)

	// CacheHits tracks cache hits by cache name.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Cache hits",
		},
		[]string{"cache"},
	)

	// CacheMisses tracks cache misses by cache name.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Cache misses",
		},
		[]string{"cache"},
	)

	// SessionsActive tracks live conversation sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of live conversation sessions",
		},
	)

	// ExportedRecords tracks records written by the knowledge export job.
	ExportedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "knowledge_exported_records",
			Help: "Records written by the last knowledge export",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordPrediction records metrics for one external prediction call.
func RecordPrediction(provider, status string, duration float64) {
	PredictionDuration.WithLabelValues(provider, status).Observe(duration)
	PredictionsTotal.WithLabelValues(provider, status).Inc()
}

// RecordResolution records which pipeline step resolved a message.
func RecordResolution(resolver string) {
	ResolutionsTotal.WithLabelValues(resolver).Inc()
}

// RecordEscalation records a learning escalation.
func RecordEscalation(category, kind string) {
	EscalationsTotal.WithLabelValues(category, kind).Inc()
}
