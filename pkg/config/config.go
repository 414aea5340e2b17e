package config

import "time"

// Config is the root configuration structure for lexicon.
// It contains the notation, validation, telemetry and watch settings used by
// the command line tool.
type Config struct {
	// Notation contains parsing and rendering settings for notation files.
	Notation NotationConfig `yaml:"notation"`

	// Validation selects how collection validation reports problems.
	Validation ValidationConfig `yaml:"validation"`

	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Watch contains settings for the watch command.
	Watch WatchConfig `yaml:"watch"`
}

// NotationConfig contains settings for reading and writing notation files.
type NotationConfig struct {
	// Placeholder replaces the headword when rendering sub-entry shortcuts.
	// Default: "~"
	Placeholder string `yaml:"placeholder"`

	// MergeOnAdd folds entries with the same headword together when several
	// files are combined into one collection.
	// Default: false
	MergeOnAdd bool `yaml:"merge_on_add"`

	// MaxLineLength is the longest line accepted by the parser, in bytes.
	// Default: 4096
	MaxLineLength int `yaml:"max_line_length"`

	// Extensions lists the file extensions treated as notation files when
	// scanning directories.
	// Default: [".lex", ".txt"]
	Extensions []string `yaml:"extensions"`
}

// ValidationConfig contains collection validation settings.
type ValidationConfig struct {
	// Mode is "all" to collect every problem or "first" to stop at the first.
	// Default: "all"
	Mode string `yaml:"mode"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "lexicon"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "notation"
	Subsystem string `yaml:"subsystem"`

	// Textfile is a path the collected metrics are written to in Prometheus
	// text format after each run. Empty disables the export.
	Textfile string `yaml:"textfile"`
}

// WatchConfig contains settings for watching notation files.
type WatchConfig struct {
	// Debounce is how long the watcher waits for further changes before
	// re-checking a file.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`
}
