// Package logging is the leveled logger used across drover. It wraps the
// standard library logger with level filtering and a global kill switch so
// CLI commands can keep their output clean.
package logging

import (
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level is a log severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	disabled atomic.Bool
	minLevel atomic.Int32
	logger   = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	minLevel.Store(int32(LevelInfo))
}

// ParseLevel maps a config string to a Level. Unknown strings mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel sets the minimum severity that gets written.
func SetLevel(l Level) {
	minLevel.Store(int32(l))
}

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Disable turns off all logging.
func Disable() {
	disabled.Store(true)
}

// Enable turns logging back on.
func Enable() {
	disabled.Store(false)
}

func enabled(l Level) bool {
	return !disabled.Load() && int32(l) >= minLevel.Load()
}

func logf(l Level, prefix, format string, v ...any) {
	if enabled(l) {
		logger.Printf(prefix+format, v...)
	}
}

// Debugf logs a formatted debug message.
func Debugf(format string, v ...any) {
	logf(LevelDebug, "DEBUG ", format, v...)
}

// Infof logs a formatted info message.
func Infof(format string, v ...any) {
	logf(LevelInfo, "INFO ", format, v...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, v ...any) {
	logf(LevelWarn, "WARN ", format, v...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...any) {
	logf(LevelError, "ERROR ", format, v...)
}
