package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// ParseLevel parses a level name, falling back to info
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// NewFileLogger creates a logger that appends to a file and copies every
// entry to the extra writers
func NewFileLogger(path string, level log.Level, extra ...io.Writer) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	if len(extra) > 0 {
		return NewMultiLogger(level, append([]io.Writer{f}, extra...)...), cleanup, nil
	}
	return NewWithLevel(f, level), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	return NewWithLevel(io.MultiWriter(writers...), level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ServerStarted logs the preview server start
func (l *Logger) ServerStarted(addr, proxyBase, project string) {
	l.Info("server started",
		"addr", addr,
		"proxy", proxyBase,
		"project", project)
}

// RequestServed logs one handled HTTP request
func (l *Logger) RequestServed(requestID, method, path string, status int, duration time.Duration) {
	l.Info("request served",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", status,
		"duration", duration.Round(time.Microsecond))
}

// PageFetched logs a successful fetch from the wiki proxy
func (l *Logger) PageFetched(resource string, bytes int, duration time.Duration) {
	l.Debug("page fetched",
		"resource", resource,
		"bytes", bytes,
		"duration", duration.Round(time.Millisecond))
}

// FetchError logs a failed fetch from the wiki proxy
func (l *Logger) FetchError(resource string, err error) {
	l.Error("fetch failed",
		"resource", resource,
		"error", err)
}

// PageRendered logs a converted page
func (l *Logger) PageRendered(title string, references int) {
	l.Debug("page rendered",
		"title", title,
		"references", references)
}

// WorksListed logs the outcome of filtering the page listing
func (l *Logger) WorksListed(pages, works int) {
	l.Debug("works listed",
		"pages", pages,
		"works", works)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(proxyBase, project, addr string) {
	l.Debug("config loaded",
		"proxy", proxyBase,
		"project", project,
		"addr", addr)
}
