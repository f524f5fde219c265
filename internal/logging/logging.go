// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix tags every line.
const Prefix = "todo"

// ParseLevel parses a string log level. Unknown values fall back to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// New returns a logger writing to w at level.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          Prefix,
	})
}

// Open returns a logger for the interactive UI, which owns the terminal:
// lines go to path (appended) or nowhere when path is empty. The returned
// close func is never nil.
func Open(path, level string) (*log.Logger, func() error, error) {
	if path == "" {
		return New(io.Discard, level), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}

// Command returns the logger of one-shot commands. Their outcome is already
// printed, so lines go to path when set, and to w only at debug level.
func Command(w io.Writer, path, level string) (*log.Logger, func() error, error) {
	if path != "" || ParseLevel(level) != log.DebugLevel {
		return Open(path, level)
	}
	l := New(w, level)
	l.SetReportTimestamp(false)
	return l, func() error { return nil }, nil
}
