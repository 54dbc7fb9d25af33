package logger

import (
	"strings"
	"sync"
)

// Values understood in LOG_LEVEL. Anything else logs at info.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	procLogger *Logger
	procOnce   sync.Once
)

// Get hands out the logger shared by the whole run. The level passed on the
// first call wins.
func Get(level string) *Logger {
	procOnce.Do(func() {
		procLogger = newZapLogger(normalizeLevel(level))
	})
	return procLogger
}

// normalizeLevel folds case and accepts "warning" for warn.
func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return WarnLevel
	}
	return level
}
