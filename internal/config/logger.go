package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// logLevel backs every handler built by InitLogger so the level can change
// after startup (config hot reload).
var logLevel = new(slog.LevelVar)

// InitLogger initializes the application logger based on configuration.
// An empty File logs to stderr; otherwise output is rotated by lumberjack.
func InitLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	logLevel.Set(parseLogLevel(cfg.Level))

	var writer io.Writer = os.Stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
	}

	logger := slog.New(newHandler(writer, cfg))
	slog.SetDefault(logger)

	return logger, nil
}

// SetLogLevel changes the level of loggers created by InitLogger
func SetLogLevel(level string) {
	logLevel.Set(parseLogLevel(level))
}

func newHandler(w io.Writer, cfg *LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: logLevel}

	if strings.ToLower(cfg.Format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	// Color only makes sense on a console, never in the rotated file
	if cfg.Color && cfg.File == "" {
		return NewColoredTextHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ColoredTextHandler wraps slog.TextHandler and colors the level for console output
type ColoredTextHandler struct {
	handler slog.Handler
	writer  io.Writer
	opts    *slog.HandlerOptions
	attrs   []slog.Attr
	group   string
}

// NewColoredTextHandler creates a new handler that adds colors for console output
func NewColoredTextHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredTextHandler {
	return &ColoredTextHandler{
		handler: slog.NewTextHandler(w, opts),
		writer:  w,
		opts:    opts,
	}
}

// Handle implements slog.Handler
func (h *ColoredTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf strings.Builder
	var inner slog.Handler = slog.NewTextHandler(&buf, h.opts)
	if h.group != "" {
		inner = inner.WithGroup(h.group)
	}
	if len(h.attrs) > 0 {
		inner = inner.WithAttrs(h.attrs)
	}
	if err := inner.Handle(ctx, r); err != nil {
		return err
	}

	_, err := io.WriteString(h.writer, colorize(buf.String(), r.Level))
	return err
}

// WithAttrs implements slog.Handler
func (h *ColoredTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.handler = h.handler.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler
func (h *ColoredTextHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.handler = h.handler.WithGroup(name)
	clone.group = name
	return &clone
}

// Enabled implements slog.Handler
func (h *ColoredTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// colorize wraps the first field of the line (time=...) in an ANSI color for the level
func colorize(line string, level slog.Level) string {
	var code string
	switch {
	case level >= slog.LevelError:
		code = "31" // red
	case level >= slog.LevelWarn:
		code = "33" // yellow
	case level >= slog.LevelInfo:
		code = "32" // green
	default:
		code = "90" // gray
	}

	head, rest, found := strings.Cut(line, " ")
	if !found {
		return fmt.Sprintf("\033[%sm%s\033[0m", code, line)
	}
	return fmt.Sprintf("\033[%sm%s\033[0m %s", code, head, rest)
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
