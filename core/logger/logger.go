package logger

import (
	"github.com/wanderdata/wanderdata/core/domain/interfaces"
	"github.com/wanderdata/wanderdata/core/infrastructure/logging"
)

const (
	LogLevelError = logging.LogLevelError
	LogLevelWarn  = logging.LogLevelWarn
	LogLevelInfo  = logging.LogLevelInfo
	LogLevelDebug = logging.LogLevelDebug
)

// Logger is the tagged logger handed out by New
type Logger = interfaces.Logger

// New creates a logger instance with a tag
func New(tag string) Logger {
	return logging.New(tag)
}

// SetLogLevel sets the global log level
func SetLogLevel(level int) {
	logging.SetLogLevel(level)
}

// GetLogLevel returns the current global log level
func GetLogLevel() int {
	return logging.GetLogLevel()
}

// SetTagFilter sets the tag filter
func SetTagFilter(filterStr string) {
	logging.SetTagFilter(filterStr)
}

// SetLogFile enables log file streaming
func SetLogFile() (string, error) {
	return logging.SetLogFile()
}

// CloseLogFile closes the log file
func CloseLogFile() error {
	return logging.CloseLogFile()
}

// ParseLogLevel maps a level name (error, warn, info, debug) or number to a
// log level
func ParseLogLevel(s string) (int, bool) {
	return logging.ParseLogLevel(s)
}
