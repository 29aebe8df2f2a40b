package logger

import (
	"fmt"
	"os"
	"strings"
)

// LevelEnv is the environment variable setting the level of the default logger,
// one of "debug", "info", "warn", "error" or "fatal".
const LevelEnv = "FINE503_LOG_LEVEL"

// defLogger is used by every component not given a logger explicitly.
var defLogger = newDefault()

func newDefault() Logger {
	level, err := ParseLevel(os.Getenv(LevelEnv))
	l := NewSlog(level, false)
	if err != nil {
		l.Warn("logger: ignoring "+LevelEnv, "error", err)
	}

	return l
}

// ParseLevel parses a level name. The empty string is InfoLevel.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("logger: unknown level %q", name)
	}
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	return defLogger
}

// SetLevel sets the level of the default logger.
func SetLevel(level Level) {
	defLogger.SetLevel(level)
}
