package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysisJobsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_jobs_completed_total",
			Help: "Total number of analysis jobs that reached the completed state",
		},
	)

	AnalysisJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_jobs_failed_total",
			Help: "Total number of analysis jobs that reached the failed state",
		},
		[]string{"error_code"},
	)

	AnalysisJobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "analysis_job_duration_seconds",
			Help: "Duration of analysis job processing in seconds",
		},
	)

	AnalysisJobsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analysis_jobs_active",
			Help: "Number of analysis jobs currently processing",
		},
	)

	AnalysisJobsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_jobs_evicted_total",
			Help: "Total number of analysis jobs evicted by the retention sweep",
		},
	)

	RecommendationsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_computed_total",
			Help: "Total number of size recommendations computed",
		},
		[]string{"confidence"},
	)
)
