// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the dialbridge webhook.
package observability

import "github.com/prometheus/client_golang/prometheus"

// EngineBuckets defines histogram buckets suited for dialogue engine
// round trips, ranging from 25ms to 30s.
var EngineBuckets = []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

var (
	// RequestsTotal counts all HTTP requests by method, status class and route.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialbridge_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "route"},
	)

	// RequestDuration records HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dialbridge_request_duration_seconds",
			Help:    "Request duration",
			Buckets: EngineBuckets,
		},
		[]string{"method", "route"},
	)

	// EngineRequestsTotal counts calls to the dialogue engine by outcome.
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialbridge_engine_requests_total",
			Help: "Engine requests",
		},
		[]string{"provider", "status"},
	)

	// EngineLatency records dialogue engine latency in seconds.
	EngineLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dialbridge_engine_latency_seconds",
			Help:    "Engine latency",
			Buckets: EngineBuckets,
		},
		[]string{"provider"},
	)

	// EngineFailuresTotal counts engine failures answered with the fallback
	// prompt, by failure type.
	EngineFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialbridge_engine_failures_total",
			Help: "Engine failures answered with a fallback prompt",
		},
		[]string{"type"},
	)

	// DirectivesTotal counts emitted directives by kind.
	DirectivesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialbridge_directives_total",
			Help: "Directives emitted",
		},
		[]string{"kind"},
	)

	// SessionEntries tracks the number of call-to-session mappings held.
	SessionEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dialbridge_session_entries",
			Help: "Call session entries",
		},
	)

	// JournalErrorsTotal counts failed turn journal writes.
	JournalErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dialbridge_journal_errors_total",
			Help: "Turn journal write failures",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		EngineRequestsTotal,
		EngineLatency,
		EngineFailuresTotal,
		DirectivesTotal,
		SessionEntries,
		JournalErrorsTotal,
	)
}
