// Package logging provides structured logging for the lexicon tools.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with session ids and notation sources
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	    Writer: os.Stderr,
//	})
//
//	logger.Info("Loaded notation file",
//	    "path", "words.lex",
//	    "entries", 1234,
//	)
//
//	// Context fields are prepended by the *Context methods
//	ctx = logging.WithSession(ctx, uuid.NewString())
//	ctx = logging.WithSource(ctx, "words.lex")
//	logger.InfoContext(ctx, "Validation finished")
//
// The notation packages never log. They accept a *slog.Logger for debug
// tracing, which Slog returns.
package logging
