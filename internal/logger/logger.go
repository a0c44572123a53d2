// Package logger wraps charm/log for structured CLI logging.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Colors for the level labels and keys karas logs most.
const (
	warnColor   = "#ffb86c"
	pluginColor = "#bd93f9"
	passColor   = "#6272a4"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) *Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return NewWithLevel(w, level)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "karas",
	})
	l.SetStyles(styles())
	return &Logger{Logger: l}
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color(warnColor))
	s.Keys["plugin"] = lipgloss.NewStyle().Foreground(lipgloss.Color(pluginColor))
	s.Keys["pass"] = lipgloss.NewStyle().Foreground(lipgloss.Color(passColor))
	return s
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return NewWithLevel(io.Discard, log.InfoLevel)
}

// ConversionStarted logs the start of a conversion
func (l *Logger) ConversionStarted(source string, headingLevel int, format string) {
	l.Debug("conversion started",
		"source", source,
		"heading_level", headingLevel,
		"format", format)
}

// ConversionCompleted logs the end of a conversion
func (l *Logger) ConversionCompleted(source string, bytes int, duration time.Duration) {
	l.Debug("conversion completed",
		"source", source,
		"bytes", bytes,
		"duration", duration.Round(time.Microsecond))
}

// PluginsDisabled logs plugins hidden from the registry
func (l *Logger) PluginsDisabled(names []string) {
	if len(names) == 0 {
		return
	}
	l.Debug("plugins disabled", "plugins", names)
}

// ConfigLoaded logs the effective configuration
func (l *Logger) ConfigLoaded(path string, headingLevel int, format string) {
	l.Debug("config loaded",
		"path", path,
		"heading_level", headingLevel,
		"format", format)
}
