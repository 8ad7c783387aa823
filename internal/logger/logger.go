// Package logger defines the structured logging port used across homehub and
// its slog, fluent and fan-out implementations.
package logger

import (
	"log/slog"
	"strings"
)

// Fields carries structured key/value context for a log line.
type Fields map[string]interface{}

// Logger is the logging port components receive by injection.
type Logger interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)
	WithFields(fields Fields) Logger
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Nop discards everything.
type Nop struct{}

func (Nop) Info(string, Fields)         {}
func (Nop) Warn(string, Fields)         {}
func (Nop) Error(string, error, Fields) {}
func (Nop) Debug(string, Fields)        {}
func (n Nop) WithFields(Fields) Logger  { return n }
