// Package logging provides structured logging configuration for conduit-mock.
//
// This package wraps log/slog so the server, the CLI and the store share one
// logging setup. It supports configurable log levels and output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 3001)
//
// # Request scoping
//
// The engine stores a request-scoped logger in the request context with
// WithLogger. Handlers retrieve it with FromContext, which falls back to the
// supplied default when nothing was stored.
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via a setter.
// If no logger is provided, use logging.Nop() for a no-op logger.
package logging
