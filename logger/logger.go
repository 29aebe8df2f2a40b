// Package logger is the logging facade used by go-fine503.
//
// Every package logs through the Logger interface so applications can plug in
// their own logging framework. The default implementation is backed by log/slog
// and writes JSON lines; set FINE503_LOG_FORMAT=console to get the colored
// human-readable output of console-slog instead. FINE503_LOG_LEVEL sets the
// level of the default logger.
//
// Log Levels:
//
//   - DebugLevel: wire traffic and other detail, disabled by default.
//   - InfoLevel: connection lifecycle and echoed traffic.
//   - WarnLevel: recoverable problems such as a forced port close.
//   - ErrorLevel: failures that abort an operation.
//   - FatalLevel: the process exits after logging.
package logger

// Level indicates the logging severity level.
type Level = int8

const (
	// DebugLevel logs are voluminous, and are usually disabled in production.
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel
	// ErrorLevel logs are high-priority.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// Logger defines a common interface for structured logging with key-value pairs.
type Logger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at InfoLevel.
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at WarnLevel.
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at ErrorLevel.
	Error(msg string, keysAndValues ...any)
	// Fatal logs a message at FatalLevel, then calls os.Exit(1).
	Fatal(msg string, keysAndValues ...any)
	// With creates a child logger carrying the given key-values.
	// The child doesn't affect the parent, and vice versa.
	With(keyValues ...any) Logger
	// Level returns the minimum enabled level.
	Level() Level
	// SetLevel sets the minimum enabled level.
	SetLevel(level Level)
}
