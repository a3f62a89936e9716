// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The package standardises structured logging across the queue binaries by
// exposing a single factory, New, that creates a *slog.Logger configured by a
// set of Option functions:
//
//   - Select an output format (text or json)
//   - Set the minimum log level
//   - Supply default slog.Attr values applied to every record
//   - Register ContextExtractor callbacks that inject attributes pulled from
//     a context value every time Handle is invoked
//
// # Architecture
//
// New picks the concrete slog.Handler (slog.NewTextHandler or
// slog.NewJSONHandler) based on the configured Format, then wraps it with
// LogHandlerDecorator which runs the registered ContextExtractor callbacks
// before delegating to the underlying handler.
//
// Helper constructors such as Group, Error, JobID and Queue live in attr.go
// and keep attribute naming consistent across the codebase.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithProduction("queue-worker"),
//	    logger.WithContextValue("job_id", ctxKeyJobID),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "job processed",
//	    logger.Queue("emails"),
//	    logger.Duration(time.Since(start)),
//	)
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil, so they can be passed unconditionally.
package logger
