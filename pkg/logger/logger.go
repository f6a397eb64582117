// Package logger configures the process-wide structured logger.
package logger

import (
	"fmt"
	"log/slog"
	"os"
)

var globalLogger *slog.Logger

// ParseLevel maps a level name (debug, info, warn, error) to its slog
// level.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", name)
	}
}

// InitLogger installs a text handler at the given level as the default
// logger. Records go to stderr, keeping stdout free for help output, and
// carry an "app" attribute so lines are attributable when the process
// runs under a supervisor.
func InitLogger(level string) error {
	slogLevel, err := ParseLevel(level)
	if err != nil {
		return err
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel,
	})

	globalLogger = slog.New(handler).With("app", "midi-performer")
	slog.SetDefault(globalLogger)

	return nil
}

// GetLogger returns the global logger, or the slog default if InitLogger
// has not been called yet.
func GetLogger() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}
