// Package logger provides a simple logging interface for lazyconn components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "LAZYCONN_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// verbose forces debug output on regardless of the environment (--verbose).
var verbose bool

// SetVerbose toggles debug output for every env logger.
func SetVerbose(v bool) {
	verbose = v
}

func debugEnabled() bool {
	return verbose || os.Getenv(DebugEnv) != ""
}

// envLogger implements Logger on top of a zerolog console writer.
// Debug messages are only printed when LAZYCONN_DEBUG is set or verbose is on.
type envLogger struct {
	prefix string
	zl     zerolog.Logger
}

// NewEnvLogger creates a logger writing to stderr.
// The prefix is prepended to all log messages (e.g., "[aws]" or "[ssh]").
func NewEnvLogger(prefix string) Logger {
	return NewEnvLoggerWithOutput(prefix, os.Stderr)
}

// NewEnvLoggerWithOutput creates an env logger writing to w.
func NewEnvLoggerWithOutput(prefix string, w io.Writer) Logger {
	cw := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return &envLogger{prefix: prefix, zl: zerolog.New(cw)}
}

func (l *envLogger) msg(format string) string {
	if l.prefix == "" {
		return format
	}
	return l.prefix + " " + format
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if debugEnabled() {
		l.zl.Debug().Msgf(l.msg(format), args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(l.msg(format), args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(l.msg(format), args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(l.msg(format), args...)
}

// noopLogger implements Logger but discards all messages.
// Useful for testing or when logging is not desired.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Exported for use in test assertions.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
// Useful for testing that code logs expected messages.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "debug", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "info", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "warn", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "error", Message: fmt.Sprintf(format, args...)})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Contains returns true if any captured message contains substr.
func (l *BufferLogger) Contains(substr string) bool {
	for _, m := range l.Messages {
		if strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

var defaultLogger = NewEnvLogger("")

// Default returns the unprefixed stderr logger.
func Default() Logger {
	return defaultLogger
}
