// Package metrics provides Prometheus metrics for the HTTP surface, the
// generation pipeline, image generation and the job queue.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "blogsmith"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Pipeline metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each generation stage in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"stage"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "generations_total",
			Help:      "Total blog generations by outcome and the stage they ended in",
		},
		[]string{"outcome", "stage"},
	)

	Degradations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "degradations_total",
			Help:      "Stage failures absorbed by a fallback, by stage",
		},
		[]string{"stage"},
	)

	ParseFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "parse_fallbacks_total",
			Help:      "Fields filled with a default because the model response did not provide them",
		},
		[]string{"parser", "field"},
	)

	// Image metrics
	ImagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "total",
			Help:      "Image generation requests by result",
		},
		[]string{"result"},
	)

	// Job metrics
	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "total",
			Help:      "Generation jobs processed by final status",
		},
		[]string{"status"},
	)

	JobsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "in_progress",
			Help:      "Number of generation jobs currently being processed",
		},
	)
)

// Generation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ObserveStage records how long a pipeline stage took.
func ObserveStage(stage string, d time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveGeneration records the end of a pipeline run.
func ObserveGeneration(outcome, stage string) {
	GenerationsTotal.WithLabelValues(outcome, stage).Inc()
}

// ObserveDegradation records a failure absorbed by a stage fallback.
func ObserveDegradation(stage string) {
	Degradations.WithLabelValues(stage).Inc()
}

// ObserveParseFallbacks records every field a parser had to default.
func ObserveParseFallbacks(parser string, fields []string) {
	for _, f := range fields {
		ParseFallbacks.WithLabelValues(parser, f).Inc()
	}
}

// ObserveImage records an image generation result ("success", "rejected",
// "failure").
func ObserveImage(result string) {
	ImagesTotal.WithLabelValues(result).Inc()
}

// StartJob increments the in-progress gauge for generation jobs.
func StartJob() {
	JobsInProgress.Inc()
}

// EndJob decrements the in-progress gauge and counts the final status.
func EndJob(status string) {
	JobsInProgress.Dec()
	JobsTotal.WithLabelValues(status).Inc()
}

// Timer is a helper for measuring operation duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the time since the timer was created.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time since the timer was created
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(time.Since(t.start).Seconds())
}
