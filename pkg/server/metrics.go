package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the server's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "formkit").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for submit duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Metrics holds the server's Prometheus metrics.
type Metrics struct {
	eventsTotal      *prometheus.CounterVec
	eventErrors      *prometheus.CounterVec
	submissionsTotal *prometheus.CounterVec
	submitDuration   prometheus.Histogram
	activeSessions   prometheus.Gauge
	wsErrors         *prometheus.CounterVec
}

// NewMetrics registers and returns the server metrics.
//
// Metrics collected:
//   - formkit_form_events_total: Counter of form events by type
//   - formkit_form_event_errors_total: Counter of rejected events by reason
//   - formkit_form_submissions_total: Counter of submissions by status
//   - formkit_form_submit_duration_seconds: Histogram of submit callback duration
//   - formkit_active_sessions: Gauge of live WebSocket sessions
//   - formkit_websocket_errors_total: Counter of WebSocket errors by type
func NewMetrics(config MetricsConfig) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "formkit"
	}
	if config.Buckets == nil {
		config.Buckets = prometheus.DefBuckets
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "form_events_total",
			Help:        "Total number of form events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "form_event_errors_total",
			Help:        "Total number of rejected form events",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		submissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "form_submissions_total",
			Help:        "Total number of submission attempts by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		submitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "form_submit_duration_seconds",
			Help:        "Submit attempt duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// RecordEvent records one processed form event.
func (m *Metrics) RecordEvent(eventType string) {
	if m != nil {
		m.eventsTotal.WithLabelValues(eventType).Inc()
	}
}

// RecordEventError records one rejected form event.
func (m *Metrics) RecordEventError(reason string) {
	if m != nil {
		m.eventErrors.WithLabelValues(reason).Inc()
	}
}

// RecordSubmission records one submission attempt and its duration.
func (m *Metrics) RecordSubmission(status string, seconds float64) {
	if m != nil {
		m.submissionsTotal.WithLabelValues(status).Inc()
		m.submitDuration.Observe(seconds)
	}
}

// SessionOpened records a new live session.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.activeSessions.Inc()
	}
}

// SessionClosed records a finished live session.
func (m *Metrics) SessionClosed() {
	if m != nil {
		m.activeSessions.Dec()
	}
}

// RecordWebSocketError records one WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	if m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}
