// Package logging provides a shared, structured logger for splitview.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same output handler and
// log level. The log level can be controlled at startup via the
// SPLITVIEW_LOG_LEVEL environment variable (debug, info, warn, error).
// If unset, the default level is INFO.
//
// Output goes to stderr unless SPLITVIEW_LOG_FILE names a file, in which case
// entries are appended there. The file form is handy while the alternate
// screen owns the terminal.
//
// Usage:
//
//	log := logging.New("config")       // creates a logger tagged with component="config"
//	log.Info("loaded config", "path", p)
//	log.Error("failed to save", "error", err)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	levelEnv = "SPLITVIEW_LOG_LEVEL"
	fileEnv  = "SPLITVIEW_LOG_FILE"
)

var (
	// initLogger ensures the base logger is created exactly once across all
	// goroutines, even if multiple components call New concurrently.
	initLogger sync.Once

	// baseLogger is the singleton logger instance shared by all components.
	// Component-specific loggers are derived from this via With().
	baseLogger *slog.Logger
)

// New returns a structured logger scoped to the given component name.
//
// The component name is added as a "component" attribute to every log entry
// produced by the returned logger (e.g. "app", "config", "engine").
//
// If component is empty, the base logger is returned without any additional
// attributes.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(openOutput(os.Getenv(fileEnv)), &slog.HandlerOptions{
			Level: parseLevel(os.Getenv(levelEnv)),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// openOutput returns the append-mode log file at path, or stderr when path is
// blank or cannot be opened.
func openOutput(path string) io.Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
