// Package config provides configuration management for lexicon.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in three ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("lexicon.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("lexicon.yaml")
//
//  3. From an optional file, falling back to defaults when it is missing:
//     cfg, err := config.LoadOptional("lexicon.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention LEXICON_SECTION_FIELD.
// For example:
//
//   - LEXICON_NOTATION_PLACEHOLDER overrides notation.placeholder
//   - LEXICON_NOTATION_EXTENSIONS overrides notation.extensions (comma separated)
//   - LEXICON_LOGGING_LEVEL overrides logging.level
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails if invalid, reporting every bad field)
//
// # Example Configuration
//
//	notation:
//	  placeholder: "~"
//	  merge_on_add: false
//	  max_line_length: 4096
//	  extensions: [".lex", ".txt"]
//
//	validation:
//	  mode: all
//
//	logging:
//	  level: info
//	  format: text
//
//	metrics:
//	  enabled: true
//	  textfile: /var/lib/node_exporter/lexicon.prom
//
//	watch:
//	  debounce: 200ms
package config
