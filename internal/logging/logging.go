// Package logging builds the charmbracelet/log logger shared by the
// commands. Diagnostics go to stderr so that stdout carries only task
// output.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Prefix is printed in front of every log line.
const Prefix = "todo-parser"

// Options holds configuration for a logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	NoColor         bool
	Prefix          string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:     log.WarnLevel,
		Formatter: log.TextFormatter,
		Prefix:    Prefix,
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
	if opts.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

// FromConfig creates a logger from the string settings of a config file.
// Debug logging also reports timestamps.
func FromConfig(w io.Writer, level, format string, noColor bool) *log.Logger {
	opts := DefaultOptions()
	opts.Level = ParseLevel(level)
	opts.Formatter = ParseFormatter(format)
	opts.ReportTimestamp = opts.Level == log.DebugLevel
	opts.NoColor = noColor
	return New(w, opts)
}

// ParseLevel maps a level name to a log.Level. Unknown names give
// log.WarnLevel.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
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
		return log.WarnLevel
	}
}

// ParseFormatter maps a format name to a log.Formatter. Unknown names give
// log.TextFormatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel + 1})
}
