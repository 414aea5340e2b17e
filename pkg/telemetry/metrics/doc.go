// Package metrics provides Prometheus metrics collection for lexicon.
//
// # Metrics
//
//   - lexicon_notation_lines_total: Lines turned into entries or rejected, by status
//   - lexicon_notation_parse_errors_total: Rejected lines by error kind
//   - lexicon_notation_load_duration_seconds: Time to load one source
//   - lexicon_notation_entries: Entries in the last load of each source
//   - lexicon_notation_validations_total: Validation runs by mode and result
//   - lexicon_notation_validation_issues_total: Validation problems by kind
//   - lexicon_notation_validation_duration_seconds: Time to validate a collection
//   - lexicon_notation_watch_events_total: File events handled by the watcher
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	collector.RecordLoad("words.lex", c.Len(), time.Since(start), err)
//	collector.RecordValidation("all", errs, time.Since(start))
//
//	// After the run
//	if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil { ... }
//
// A collector built from a disabled configuration records nothing.
package metrics
