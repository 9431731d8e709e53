// Package logger provides the leveled logging utility used across Stride.
// It wraps the standard `log` package and filters messages by severity.
package logger

import (
	"fmt"
	"log"
	"strings"
)

// LogLevel represents a logging severity level.
type LogLevel int

const (
	// LevelDebug is used for detailed diagnostic output, including per-record
	// activity and query traces.
	LevelDebug LogLevel = iota
	// LevelInfo is used for general informational messages.
	LevelInfo
	// LevelWarn is used for recoverable problems worth the operator's attention.
	LevelWarn
	// LevelError is used for errors that do not terminate the process on their own.
	LevelError
	// LevelFatal is used for errors that terminate the process.
	LevelFatal
)

// logLevel is the currently active global level. Messages below it are dropped.
var logLevel = LevelInfo

// SetLogLevel sets the global log level from its string form.
// Valid values are "DEBUG", "INFO", "WARN", "ERROR" and "FATAL"
// (case-insensitive); anything else falls back to INFO with a warning.
func SetLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = LevelDebug
	case "INFO":
		logLevel = LevelInfo
	case "WARN":
		logLevel = LevelWarn
	case "ERROR":
		logLevel = LevelError
	case "FATAL":
		logLevel = LevelFatal
	default:
		fmt.Printf("Unknown log level '%s' specified. Defaulting to INFO level.\n", level)
		logLevel = LevelInfo
	}
}

// Level returns the currently active global log level.
func Level() LogLevel {
	return logLevel
}

// IsDebugEnabled reports whether DEBUG messages are currently emitted.
// Callers use this to decide between terse and fully detailed error output.
func IsDebugEnabled() bool {
	return logLevel <= LevelDebug
}

// Debugf formats and emits a DEBUG level message.
func Debugf(format string, v ...interface{}) {
	if logLevel <= LevelDebug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

// Infof formats and emits an INFO level message.
func Infof(format string, v ...interface{}) {
	if logLevel <= LevelInfo {
		log.Printf("[INFO] "+format, v...)
	}
}

// Warnf formats and emits a WARN level message.
func Warnf(format string, v ...interface{}) {
	if logLevel <= LevelWarn {
		log.Printf("[WARN] "+format, v...)
	}
}

// Errorf formats and emits an ERROR level message.
func Errorf(format string, v ...interface{}) {
	if logLevel <= LevelError {
		log.Printf("[ERROR] "+format, v...)
	}
}

// Fatalf formats and emits a FATAL level message, then terminates the
// process via os.Exit(1).
func Fatalf(format string, v ...interface{}) {
	log.Fatalf("[FATAL] "+format, v...)
}
