// Package logger provides structured logging functionality.
// It wraps the standard log/slog package for consistent logging across the
// runtime.
//
// The package supports two output formats:
//   - JSON (default): machine-readable structured logging
//   - Human: human-readable console output with level prefixes
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the default logger instance.
var Logger *slog.Logger

// current handler configuration, rebuilt on every Set* call.
var (
	currentLevel  = slog.LevelInfo
	currentFormat = FormatJSON
	currentOutput io.Writer = os.Stdout
)

func init() {
	rebuild()
}

// OutputFormat represents the log output format.
type OutputFormat int

const (
	// FormatJSON is the default machine-readable JSON format.
	FormatJSON OutputFormat = iota
	// FormatHuman is a human-readable console format with level prefixes.
	FormatHuman
)

// SetLevel configures the logging level.
func SetLevel(level slog.Level) {
	currentLevel = level
	rebuild()
}

// SetFormat sets the log output format.
func SetFormat(format OutputFormat) {
	currentFormat = format
	rebuild()
}

// SetOutput redirects log output. Intended for tests.
func SetOutput(w io.Writer) {
	currentOutput = w
	rebuild()
}

func rebuild() {
	switch currentFormat {
	case FormatHuman:
		Logger = slog.New(NewHumanHandler(currentOutput, &HumanHandlerOptions{Level: currentLevel}))
	default:
		Logger = slog.New(slog.NewJSONHandler(currentOutput, &slog.HandlerOptions{Level: currentLevel}))
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// WithTemplate returns a logger with template context.
func WithTemplate(name string) *slog.Logger {
	return Logger.With("template", name)
}

// HumanHandlerOptions configures the human-readable log handler.
type HumanHandlerOptions struct {
	// Level is the minimum log level to output
	Level slog.Level
}

// HumanHandler is a slog handler that outputs human-readable log messages.
type HumanHandler struct {
	opts   HumanHandlerOptions
	writer io.Writer
	attrs  []slog.Attr
}

// NewHumanHandler creates a new human-readable log handler.
func NewHumanHandler(w io.Writer, opts *HumanHandlerOptions) *HumanHandler {
	if opts == nil {
		opts = &HumanHandlerOptions{Level: slog.LevelInfo}
	}
	return &HumanHandler{opts: *opts, writer: w}
}

// Enabled returns true if the handler is enabled for the given level.
func (h *HumanHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

// Handle outputs a log record in human-readable format.
func (h *HumanHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Time.Format("15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(levelPrefix(r.Level))
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	for _, attr := range h.attrs {
		sb.WriteString(" ")
		sb.WriteString(attr.String())
	}
	r.Attrs(func(attr slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(attr.String())
		return true
	})
	sb.WriteString("\n")

	_, err := io.WriteString(h.writer, sb.String())
	return err
}

// WithAttrs returns a new handler with the given attributes appended.
func (h *HumanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	combined = append(combined, attrs...)
	return &HumanHandler{opts: h.opts, writer: h.writer, attrs: combined}
}

// WithGroup returns the handler unchanged; groups are flattened in human
// output.
func (h *HumanHandler) WithGroup(string) slog.Handler {
	return h
}

func levelPrefix(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

var _ slog.Handler = (*HumanHandler)(nil)
