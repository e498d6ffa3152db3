package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ScheduleComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_computations_total",
			Help: "Number of monthly schedule computations",
		},
	)

	ScheduleCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_cache_hits_total",
			Help: "Monthly schedule responses served from Redis",
		},
	)

	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "PDF reports generated by kind",
		},
		[]string{"kind"},
	)

	AuditEntriesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_entries_written_total",
			Help: "Audit trail entries written by action",
		},
		[]string{"action"},
	)
)
