// Package log provides the structured JSON logger shared by all
// safelite components.
package log

import (
	"io"
	"log/slog"
)

// Logger is a custom structured logger on top of slog.Logger
// that logs in JSON format.
type Logger struct {
	slogger *slog.Logger
}

// NewLogger creates a new Logger that writes to the given writer.
// The writer is typically os.Stdout but can be any io.Writer.
func NewLogger(writer io.Writer) Logger {
	return NewLoggerWithLevel(writer, slog.LevelInfo)
}

// NewLoggerWithLevel creates a new Logger that writes to the given
// writer, emitting records at or above the given level.
func NewLoggerWithLevel(writer io.Writer, level slog.Level) Logger {
	slogger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	return Logger{
		slogger: slogger,
	}
}

// Noop returns a Logger that discards everything it is given. Useful
// for tests and for library callers that do not want log output.
func Noop() Logger {
	return NewLogger(io.Discard)
}

// IsInitialized returns whether the Logger was built through one of the
// constructors. The zero Logger is not usable.
func (l *Logger) IsInitialized() bool {
	return l.slogger != nil
}

// Info logs structured info message.
//
// Accepts a message and a list of key-value pairs to be logged.
func (l *Logger) Info(msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgs(keyVals...)...)
}

// InfoNs logs structured info message with a namespace.
//
// The namespace differentiates logs from different components and is
// included as the first key-value pair in the record.
func (l *Logger) InfoNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Debug logs structured debug message.
//
// Accepts a message and a list of key-value pairs to be logged.
func (l *Logger) Debug(msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgs(keyVals...)...)
}

// DebugNs logs structured debug message with a namespace.
//
// The namespace differentiates logs from different components and is
// included as the first key-value pair in the record.
func (l *Logger) DebugNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Warn logs structured warning message.
//
// Accepts a message and a list of key-value pairs to be logged.
func (l *Logger) Warn(msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgs(keyVals...)...)
}

// WarnNs logs structured warning message with a namespace.
//
// The namespace differentiates logs from different components and is
// included as the first key-value pair in the record.
func (l *Logger) WarnNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Error logs structured error message.
//
// Accepts a message and a list of key-value pairs to be logged.
func (l *Logger) Error(msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgs(keyVals...)...)
}

// ErrorNs logs structured error message with a namespace.
//
// The namespace differentiates logs from different components and is
// included as the first key-value pair in the record.
func (l *Logger) ErrorNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgsNs(namespace, keyVals...)...)
}
