package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment variable read by applyEnvOverrides.
const EnvPrefix = "LEXICON_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention LEXICON_SECTION_FIELD (e.g., LEXICON_LOGGING_LEVEL).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// LoadOptional behaves like LoadConfigWithEnvOverrides, except that a missing
// file yields the default configuration (still subject to environment
// overrides). It is used for the implicit default config path.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return finish(NewDefaultConfig())
	}
	return LoadConfigWithEnvOverrides(path)
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format LEXICON_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Notation overrides
	if val := os.Getenv(EnvPrefix + "NOTATION_PLACEHOLDER"); val != "" {
		cfg.Notation.Placeholder = val
	}
	if val := os.Getenv(EnvPrefix + "NOTATION_MERGE_ON_ADD"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Notation.MergeOnAdd = b
		}
	}
	if val := os.Getenv(EnvPrefix + "NOTATION_MAX_LINE_LENGTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Notation.MaxLineLength = i
		}
	}
	if val := os.Getenv(EnvPrefix + "NOTATION_EXTENSIONS"); val != "" {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		cfg.Notation.Extensions = exts
	}

	// Validation overrides
	if val := os.Getenv(EnvPrefix + "VALIDATION_MODE"); val != "" {
		cfg.Validation.Mode = val
	}

	// Telemetry overrides
	if val := os.Getenv(EnvPrefix + "LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv(EnvPrefix + "LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
	if val := os.Getenv(EnvPrefix + "METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "METRICS_TEXTFILE"); val != "" {
		cfg.Metrics.Textfile = val
	}

	// Watch overrides
	if val := os.Getenv(EnvPrefix + "WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
}
