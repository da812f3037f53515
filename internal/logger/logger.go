package logger

import (
	"log/slog"
	"os"
)

var globalLogger *slog.Logger = slog.Default()

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// Init initializes the structured logger with sensible defaults.
func Init() {
	InitWithConfig(Config{Level: slog.LevelInfo, Format: "text"})
}

// InitWithConfig initializes the logger with custom config.
func InitWithConfig(config Config) {
	opts := &slog.HandlerOptions{Level: config.Level}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	globalLogger.Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	globalLogger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	globalLogger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	globalLogger.Error(msg, args...)
}
