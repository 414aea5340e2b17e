package metrics

import (
	"time"

	"mercator-hq/lexicon/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks metrics related to loading notation sources.
//
// Metrics:
//   - lexicon_notation_lines_total: Lines by status ("parsed", "failed")
//   - lexicon_notation_parse_errors_total: Failed loads by error kind
//   - lexicon_notation_load_duration_seconds: Load duration
//   - lexicon_notation_entries: Entries in the last successful load per source
type ParseMetrics struct {
	linesTotal   *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	loadDuration prometheus.Histogram
	entries      *prometheus.GaugeVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		linesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lines_total",
				Help:      "Total number of notation lines processed",
			},
			[]string{"status"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_errors_total",
				Help:      "Total number of rejected notation lines by error kind",
			},
			[]string{"kind"},
		),

		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "load_duration_seconds",
				Help:      "Duration of loading one notation source in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to 26s
			},
		),

		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "entries",
				Help:      "Number of entries in the last successful load of a source",
			},
			[]string{"source"},
		),
	}

	registry.MustRegister(
		pm.linesTotal,
		pm.errorsTotal,
		pm.loadDuration,
		pm.entries,
	)

	return pm
}

// RecordLoad records one load. An empty kind marks a successful load.
func (pm *ParseMetrics) RecordLoad(source string, entries int, duration time.Duration, kind string) {
	pm.loadDuration.Observe(duration.Seconds())

	if kind != "" {
		pm.linesTotal.WithLabelValues("failed").Inc()
		pm.errorsTotal.WithLabelValues(kind).Inc()
		return
	}

	pm.linesTotal.WithLabelValues("parsed").Add(float64(entries))
	pm.entries.WithLabelValues(source).Set(float64(entries))
}
