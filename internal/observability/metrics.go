package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	JobsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_jobs_started_total",
		Help: "Periodic job executions started",
	}, []string{"job"})
	JobsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_jobs_skipped_total",
		Help: "Periodic job cycles skipped because the task lock was held",
	}, []string{"job"})
	JobsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_jobs_failed_total",
		Help: "Periodic job executions that returned an error",
	}, []string{"job"})
	JobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleet_job_duration_seconds",
		Help:    "Periodic job wall time",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})

	IngestConnections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_ingest_connections_total",
		Help: "Tracker TCP connections accepted",
	})
	RawMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_raw_telemetry_total",
		Help: "Raw tracker records received",
	})
	DecodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_telemetry_decode_errors_total",
		Help: "Raw tracker records dropped as malformed or unresolvable",
	})
	FixesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_vehicle_fixes_total",
		Help: "Decoded vehicle fixes persisted",
	})
)

// MetricsHandler exposes the default prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
