package config

import (
	"fmt"
	"slices"
	"strings"

	"mercator-hq/lexicon/pkg/notation/syntax"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "notation.placeholder").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateNotation(&cfg.Notation)...)
	errs = append(errs, validateValidation(&cfg.Validation)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateNotation validates notation configuration.
func validateNotation(cfg *NotationConfig) []FieldError {
	var errs []FieldError

	// The placeholder is rendered in place of a headword, so it must not
	// contain notation markers.
	if cfg.Placeholder == "" {
		errs = append(errs, FieldError{
			Field:   "notation.placeholder",
			Message: "placeholder is required",
		})
	} else if syntax.HasReserved(cfg.Placeholder, syntax.AnnotationOpen, syntax.AnnotationClose,
		syntax.SubEntrySeparator, syntax.SubRedirectMarker, syntax.ListSeparator) {
		errs = append(errs, FieldError{
			Field:   "notation.placeholder",
			Message: fmt.Sprintf("placeholder %q must not contain [ ] | > or ,", cfg.Placeholder),
		})
	}

	if cfg.MaxLineLength <= 0 {
		errs = append(errs, FieldError{
			Field:   "notation.max_line_length",
			Message: "max line length must be positive",
		})
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("notation.extensions[%d]", i),
				Message: fmt.Sprintf("extension %q must start with '.'", ext),
			})
		}
	}

	return errs
}

// validateValidation validates the validation mode.
func validateValidation(cfg *ValidationConfig) []FieldError {
	var errs []FieldError

	validModes := []string{ValidationModeAll, ValidationModeFirst}
	if !slices.Contains(validModes, cfg.Mode) {
		errs = append(errs, FieldError{
			Field:   "validation.mode",
			Message: fmt.Sprintf("invalid mode %q, must be one of: %s", cfg.Mode, strings.Join(validModes, ", ")),
		})
	}

	return errs
}

// validateLogging validates logging configuration.
func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Level)) {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid log level %q, must be one of: %s", cfg.Level, strings.Join(validLevels, ", ")),
		})
	}

	validFormats := []string{"json", "text", "console"}
	if !slices.Contains(validFormats, strings.ToLower(cfg.Format)) {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid log format %q, must be one of: %s", cfg.Format, strings.Join(validFormats, ", ")),
		})
	}

	return errs
}

// validateMetrics validates metrics configuration.
func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if cfg.Namespace == "" {
		errs = append(errs, FieldError{
			Field:   "metrics.namespace",
			Message: "namespace is required",
		})
	}
	if strings.ContainsAny(cfg.Namespace+cfg.Subsystem, " -.") {
		errs = append(errs, FieldError{
			Field:   "metrics.namespace",
			Message: "namespace and subsystem may only contain letters, digits and '_'",
		})
	}

	return errs
}

// validateWatch validates watch configuration.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must not be negative",
		})
	}

	return errs
}
