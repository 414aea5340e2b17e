package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// SessionKey is the context key for the CLI session id.
	SessionKey contextKey = "session"

	// SourceKey is the context key for the notation source being processed.
	SourceKey contextKey = "source"

	// CommandKey is the context key for the running command name.
	CommandKey contextKey = "command"
)

// WithSession adds a session identifier to the context.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession retrieves the session identifier from the context.
func GetSession(ctx context.Context) string {
	if session, ok := ctx.Value(SessionKey).(string); ok {
		return session
	}
	return ""
}

// WithSource adds a notation source identity to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the notation source identity from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// WithCommand adds the command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand retrieves the command name from the context.
func GetCommand(ctx context.Context) string {
	if command, ok := ctx.Value(CommandKey).(string); ok {
		return command
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if session := GetSession(ctx); session != "" {
		fields = append(fields, "session", session)
	}
	if command := GetCommand(ctx); command != "" {
		fields = append(fields, "command", command)
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, "source", source)
	}

	return fields
}
