package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TasksTotal counts processed background tasks by kind and outcome.
	TasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoutd_tasks_total",
			Help: "Total number of background tasks processed",
		},
		[]string{"kind", "outcome"},
	)

	// TaskDuration tracks the duration of background tasks in seconds.
	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scoutd_task_duration_seconds",
			Help:    "Duration of background tasks in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"kind"},
	)

	// WorkersActive tracks the number of currently busy workers.
	WorkersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scoutd_workers_active",
			Help: "Number of currently active worker goroutines",
		},
	)

	// GeneratorFailures counts report generator call failures.
	GeneratorFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoutd_generator_failures_total",
			Help: "Total number of report generator call failures",
		},
	)
)
