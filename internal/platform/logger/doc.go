// Package logger builds the process-wide JSON slog logger from the server
// config and carries a request-scoped logger, tagged with the trace ID,
// through context.Context.
package logger
