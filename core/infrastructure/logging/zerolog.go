package logging

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/wanderdata/wanderdata/core/domain/interfaces"
)

const (
	LogLevelError = 1
	LogLevelWarn  = 2
	LogLevelInfo  = 3
	LogLevelDebug = 4
)

const timeFormat = "2006-01-02T15:04:05.000Z"

var (
	globalLogLevel = LogLevelInfo
	logLevelMutex  sync.RWMutex

	tagFilter      []string
	tagFilterMutex sync.RWMutex

	logFile     *os.File
	outputMutex sync.RWMutex
	logWriter   io.Writer = os.Stdout
	forcePlain  bool
)

// Logger is the interface exported from this package
type Logger = interfaces.Logger

// SetLogLevel sets the global log level
func SetLogLevel(level int) {
	logLevelMutex.Lock()
	defer logLevelMutex.Unlock()
	if level >= LogLevelError && level <= LogLevelDebug {
		globalLogLevel = level
	}
}

// GetLogLevel returns the current global log level
func GetLogLevel() int {
	logLevelMutex.RLock()
	defer logLevelMutex.RUnlock()
	return globalLogLevel
}

// ParseLogLevel maps a level name or number to a log level
func ParseLogLevel(s string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "error":
		return LogLevelError, true
	case "2", "warn", "warning":
		return LogLevelWarn, true
	case "3", "info":
		return LogLevelInfo, true
	case "4", "debug":
		return LogLevelDebug, true
	}
	return 0, false
}

// SetTagFilter sets the tag filter from a comma-separated string.
// Entries prefixed with "-" exclude a tag; any other entry restricts output
// to the listed tags.
func SetTagFilter(filterStr string) {
	tagFilterMutex.Lock()
	defer tagFilterMutex.Unlock()

	if filterStr == "" {
		tagFilter = nil
		return
	}

	tags := strings.Split(filterStr, ",")
	tagFilter = make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tagFilter = append(tagFilter, tag)
		}
	}
}

func matchesTag(tag, filterTag string) bool {
	return tag == filterTag || strings.HasPrefix(tag, filterTag+":")
}

func shouldLogTag(tag string) bool {
	tagFilterMutex.RLock()
	defer tagFilterMutex.RUnlock()

	if len(tagFilter) == 0 {
		return true
	}

	for _, filterTag := range tagFilter {
		if excludeTag, ok := strings.CutPrefix(filterTag, "-"); ok && matchesTag(tag, excludeTag) {
			return false
		}
	}

	hasInclusion := false
	for _, filterTag := range tagFilter {
		if strings.HasPrefix(filterTag, "-") {
			continue
		}
		hasInclusion = true
		if matchesTag(tag, filterTag) {
			return true
		}
	}
	return !hasInclusion
}

// SetOutput redirects every logger created afterwards to w as plain JSON lines
func SetOutput(w io.Writer) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	logWriter = w
	forcePlain = true
}

// SetLogFile streams logs to a generated file under the temp directory in
// addition to stdout, and returns its path
func SetLogFile() (string, error) {
	outputMutex.Lock()
	defer outputMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), ".wanderdata", "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	filePath := filepath.Join(logDir, "wanderdata-"+generateLogFileHash()+".log")
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", err
	}

	logFile = file
	logWriter = io.MultiWriter(os.Stdout, file)
	return filePath, nil
}

// CloseLogFile closes the log file if it's open
func CloseLogFile() error {
	outputMutex.Lock()
	defer outputMutex.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logWriter = os.Stdout
	return err
}

func generateLogFileHash() string {
	randomBytes := make([]byte, 8)
	_, _ = rand.Read(randomBytes)
	hash := sha256.Sum256([]byte(fmt.Sprintf("%d-%d-%x", time.Now().UnixNano(), os.Getpid(), randomBytes)))
	return hex.EncodeToString(hash[:])[:8]
}

// ZerologLogger implements the Logger interface using zerolog
type ZerologLogger struct {
	tag    string
	logger zerolog.Logger
}

// New creates a new logger instance with a tag
func New(tag string) Logger {
	if !shouldLogTag(tag) {
		return noOpLogger{}
	}

	outputMutex.RLock()
	var output io.Writer = logWriter
	if !forcePlain && isInteractive() {
		output = zerolog.ConsoleWriter{Out: logWriter, TimeFormat: timeFormat}
	}
	outputMutex.RUnlock()

	return &ZerologLogger{
		tag:    tag,
		logger: zerolog.New(output).With().Str("tag", tag).Timestamp().Logger(),
	}
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func enabled(level int) bool {
	logLevelMutex.RLock()
	defer logLevelMutex.RUnlock()
	return level <= globalLogLevel
}

// With returns a child logger carrying fields on every entry
func (l *ZerologLogger) With(fields map[string]any) Logger {
	return &ZerologLogger{
		tag:    l.tag,
		logger: l.logger.With().Fields(fields).Logger(),
	}
}

func (l *ZerologLogger) Error(message string) {
	if enabled(LogLevelError) {
		l.logger.Error().Msg(message)
	}
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	if enabled(LogLevelError) {
		l.logger.Error().Msgf(format, args...)
	}
}

func (l *ZerologLogger) Warn(message string) {
	if enabled(LogLevelWarn) {
		l.logger.Warn().Msg(message)
	}
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	if enabled(LogLevelWarn) {
		l.logger.Warn().Msgf(format, args...)
	}
}

func (l *ZerologLogger) Info(message string) {
	if enabled(LogLevelInfo) {
		l.logger.Info().Msg(message)
	}
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	if enabled(LogLevelInfo) {
		l.logger.Info().Msgf(format, args...)
	}
}

// Success logs at INFO level but always shows regardless of log level
func (l *ZerologLogger) Success(message string) {
	l.logger.Info().Bool("success", true).Msg(message)
}

// Successf logs at INFO level but always shows regardless of log level
func (l *ZerologLogger) Successf(format string, args ...any) {
	l.logger.Info().Bool("success", true).Msgf(format, args...)
}

func (l *ZerologLogger) Debug(message string) {
	if enabled(LogLevelDebug) {
		l.logger.Debug().Msg(message)
	}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	if enabled(LogLevelDebug) {
		l.logger.Debug().Msgf(format, args...)
	}
}

// PrintError logs err under title at ERROR level
func (l *ZerologLogger) PrintError(title string, err error) {
	if err == nil || !enabled(LogLevelError) {
		return
	}
	l.logger.Error().Err(err).Msg(title)
}

// noOpLogger is returned for filtered tags
type noOpLogger struct{}

func (noOpLogger) Error(string)                 {}
func (noOpLogger) Errorf(string, ...any)        {}
func (noOpLogger) Warn(string)                  {}
func (noOpLogger) Warnf(string, ...any)         {}
func (noOpLogger) Info(string)                  {}
func (noOpLogger) Infof(string, ...any)         {}
func (noOpLogger) Success(string)               {}
func (noOpLogger) Successf(string, ...any)      {}
func (noOpLogger) Debug(string)                 {}
func (noOpLogger) Debugf(string, ...any)        {}
func (noOpLogger) PrintError(string, error)     {}
func (n noOpLogger) With(map[string]any) Logger { return n }
