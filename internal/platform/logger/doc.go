// Package logger provides structured logging for the item service.
//
// It builds JSON slog loggers from configuration and carries request- or
// batch-scoped loggers through context.Context.
package logger
