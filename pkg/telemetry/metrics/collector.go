package metrics

import (
	"sync"
	"time"

	"mercator-hq/lexicon/pkg/config"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"

	"github.com/prometheus/client_golang/prometheus"
)

// maxSources bounds the number of distinct source labels; further sources
// are aggregated under "other".
const maxSources = 1000

// Collector is the main orchestrator for all Prometheus metrics in lexicon.
// It manages metric registration and provides a unified interface for
// recording parse, validation and watch activity.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Parse metrics
	parseMetrics *ParseMetrics

	// Validation metrics
	validationMetrics *ValidationMetrics

	// Cardinality tracking for the source label
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "lexicon",
//		Subsystem: "notation",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(maxSources),
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.validationMetrics = NewValidationMetrics(cfg, registry)

	return c
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordLoad records the outcome of loading one notation source.
//
// Parameters:
//   - source: Source identity (file path or "<string>")
//   - entries: Number of entries loaded (ignored when err is set)
//   - duration: Time spent loading
//   - err: Load error, if any; its kind becomes the error label
func (c *Collector) RecordLoad(source string, entries int, duration time.Duration, err error) {
	if !c.config.Enabled {
		return
	}

	if !c.cardinalityLimiter.Allow(source) {
		source = "other"
	}

	c.parseMetrics.RecordLoad(source, entries, duration, kindLabel(err))
}

// RecordValidation records one validation run.
//
// Parameters:
//   - mode: "all" or "first"
//   - errs: Problems found (nil or empty for a clean run)
//   - duration: Time spent validating
func (c *Collector) RecordValidation(mode string, errs *nerrors.ErrorList, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	var kinds []string
	if errs != nil {
		for _, e := range errs.Errors {
			kinds = append(kinds, string(e.Type))
		}
	}
	c.validationMetrics.RecordRun(mode, kinds, duration)
}

// RecordWatchEvent records a file event handled in watch mode.
//
// Parameters:
//   - op: Event operation ("write", "create", "remove", "rename")
func (c *Collector) RecordWatchEvent(op string) {
	if !c.config.Enabled {
		return
	}

	c.validationMetrics.RecordWatchEvent(op)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func kindLabel(err error) string {
	if err == nil {
		return ""
	}
	if kind := nerrors.KindOf(err); kind != "" {
		return string(kind)
	}
	return "unknown"
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label value is allowed. Returns true if the value
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this value would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
