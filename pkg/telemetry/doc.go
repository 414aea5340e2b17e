// Package telemetry groups the observability packages of lexicon.
//
// # Components
//
//   - logging: Structured logging on log/slog with session and source fields
//   - metrics: Prometheus metrics for parsing and validation, exported to a
//     textfile for the node exporter's textfile collector
package telemetry
