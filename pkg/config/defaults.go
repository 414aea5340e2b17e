package config

import (
	"slices"
	"time"
)

// Default values for configuration fields.
const (
	// Notation defaults
	DefaultPlaceholder   = "~"
	DefaultMergeOnAdd    = false
	DefaultMaxLineLength = 4096

	// Validation defaults
	DefaultValidationMode = ValidationModeAll

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsEnabled   = false
	DefaultMetricsNamespace = "lexicon"
	DefaultMetricsSubsystem = "notation"

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond
)

// Validation modes.
const (
	ValidationModeAll   = "all"
	ValidationModeFirst = "first"
)

// DefaultExtensions are the notation file extensions used when none are configured.
var DefaultExtensions = []string{".lex", ".txt"}

// NewDefaultConfig returns a configuration with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every unset field of cfg with its default value.
// Boolean fields default to false and are left untouched.
func ApplyDefaults(cfg *Config) {
	// Notation defaults
	if cfg.Notation.Placeholder == "" {
		cfg.Notation.Placeholder = DefaultPlaceholder
	}
	if cfg.Notation.MaxLineLength == 0 {
		cfg.Notation.MaxLineLength = DefaultMaxLineLength
	}
	if len(cfg.Notation.Extensions) == 0 {
		cfg.Notation.Extensions = slices.Clone(DefaultExtensions)
	}

	// Validation defaults
	if cfg.Validation.Mode == "" {
		cfg.Validation.Mode = DefaultValidationMode
	}

	// Telemetry defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
