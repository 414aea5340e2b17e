package metrics

import (
	"time"

	"mercator-hq/lexicon/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ValidationMetrics tracks collection validation and watch activity.
//
// Metrics:
//   - lexicon_notation_validations_total: Validation runs by mode and result
//   - lexicon_notation_validation_issues_total: Problems found by kind
//   - lexicon_notation_validation_duration_seconds: Validation duration
//   - lexicon_notation_watch_events_total: Watched file events by operation
type ValidationMetrics struct {
	runsTotal   *prometheus.CounterVec
	issuesTotal *prometheus.CounterVec
	duration    prometheus.Histogram
	watchEvents *prometheus.CounterVec
}

// NewValidationMetrics creates and registers validation metrics with the provided registry.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of collection validation runs",
			},
			[]string{"mode", "result"},
		),

		issuesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_issues_total",
				Help:      "Total number of validation problems by kind",
			},
			[]string{"kind"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of collection validation in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
			},
		),

		watchEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_events_total",
				Help:      "Total number of watched file events handled",
			},
			[]string{"op"},
		),
	}

	registry.MustRegister(
		vm.runsTotal,
		vm.issuesTotal,
		vm.duration,
		vm.watchEvents,
	)

	return vm
}

// RecordRun records one validation run and the kinds of the problems it found.
func (vm *ValidationMetrics) RecordRun(mode string, kinds []string, duration time.Duration) {
	result := "clean"
	if len(kinds) > 0 {
		result = "invalid"
	}

	vm.runsTotal.WithLabelValues(mode, result).Inc()
	vm.duration.Observe(duration.Seconds())
	for _, kind := range kinds {
		vm.issuesTotal.WithLabelValues(kind).Inc()
	}
}

// RecordWatchEvent counts one handled file event.
func (vm *ValidationMetrics) RecordWatchEvent(op string) {
	vm.watchEvents.WithLabelValues(op).Inc()
}
