// Package logger provides the leveled logging utility used across fantasyload.
// It wraps the standard `log` package and filters messages by severity; the
// level is set once at startup from configuration.
package logger

import (
	"log"
	"strings"
)

// Level represents a logging severity. Lower values are more verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	// LevelSilent suppresses all output except Fatalf.
	LevelSilent
)

var currentLevel = LevelInfo

// SetLogLevel sets the global log level from its string form
// ("DEBUG", "INFO", "WARN", "ERROR", "FATAL", "SILENT", case-insensitive).
// Unknown values fall back to INFO with a warning.
func SetLogLevel(level string) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		currentLevel = LevelDebug
	case "INFO", "":
		currentLevel = LevelInfo
	case "WARN", "WARNING":
		currentLevel = LevelWarn
	case "ERROR":
		currentLevel = LevelError
	case "FATAL":
		currentLevel = LevelFatal
	case "SILENT":
		currentLevel = LevelSilent
	default:
		log.Printf("[WARN] unknown log level %q, defaulting to INFO", level)
		currentLevel = LevelInfo
	}
}

// Debugf logs a DEBUG level message.
func Debugf(format string, v ...interface{}) {
	if currentLevel <= LevelDebug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

// Infof logs an INFO level message.
func Infof(format string, v ...interface{}) {
	if currentLevel <= LevelInfo {
		log.Printf("[INFO] "+format, v...)
	}
}

// Warnf logs a WARN level message.
func Warnf(format string, v ...interface{}) {
	if currentLevel <= LevelWarn {
		log.Printf("[WARN] "+format, v...)
	}
}

// Errorf logs an ERROR level message.
func Errorf(format string, v ...interface{}) {
	if currentLevel <= LevelError {
		log.Printf("[ERROR] "+format, v...)
	}
}

// Fatalf logs a FATAL level message and terminates the process.
func Fatalf(format string, v ...interface{}) {
	log.Fatalf("[FATAL] "+format, v...)
}
