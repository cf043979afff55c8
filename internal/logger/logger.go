// Package logger provides the process-wide structured logger built on
// [log/slog], with text, JSON, and human-friendly terminal handlers.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config describes how a [Logger] writes records.
type Config struct {
	// Level is the minimum record level: debug, info, warn, or error.
	// Empty defaults to info. Debug level also enables source positions.
	Level string

	// Format selects the handler: text, json, pretty, or discard.
	// Empty defaults to text.
	Format string

	// Writer is the destination for records. Required.
	Writer io.Writer
}

// Logger wraps a [slog.Logger] configured from a [Config].
type Logger struct {
	logger *slog.Logger
	config Config
}

// NewConfig builds a [Config] from string settings, resolving the output
// destination. Recognized destinations are "stdout" (also the empty string),
// "stderr", "null"/"discard", or a file path opened for appending. The
// returned closer is non-nil only when a file was opened; the caller owns it.
func NewConfig(level, format, output string) (Config, io.Closer, error) {
	cfg := Config{Level: level, Format: format}

	switch output {
	case "stdout", "":
		cfg.Writer = os.Stdout
		return cfg, nil, nil
	case "stderr":
		cfg.Writer = os.Stderr
		return cfg, nil, nil
	case "null", "discard":
		cfg.Writer = io.Discard
		return cfg, nil, nil
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return Config{}, nil, fmt.Errorf("failed to open log file %s: %w", output, err)
		}
		cfg.Writer = file
		return cfg, file, nil
	}
}

// New creates a [Logger] from the given configuration.
func New(cfg Config) (*Logger, error) {
	if cfg.Writer == nil {
		return nil, errors.New("logger config requires a writer")
	}

	lvl := parseLogLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: lvl}
	if lvl == slog.LevelDebug {
		opts.AddSource = true
	}

	handler := createHandler(cfg.Writer, cfg.Format, opts)

	return &Logger{
		logger: slog.New(handler),
		config: cfg,
	}, nil
}

// Logger returns the underlying [slog.Logger].
func (l *Logger) Logger() *slog.Logger {
	return l.logger
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// DebugContext logs a debug message with context.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs an informational message with context.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// DebugAttrs logs a debug message with attributes.
func (l *Logger) DebugAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// InfoAttrs logs an informational message with attributes.
func (l *Logger) InfoAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// WarnAttrs logs a warning message with attributes.
func (l *Logger) WarnAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

// ErrorAttrs logs an error message with attributes.
func (l *Logger) ErrorAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

var (
	once      sync.Once
	defaultMu sync.RWMutex

	// defaultLogger writes to stderr until InitDefault or SetDefault runs,
	// so package-level logging is safe from process start and failures
	// before initialization stay visible.
	defaultLogger = &Logger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
		config: Config{Writer: os.Stderr},
	}
)

// InitDefault configures the process-wide default logger exactly once.
// Later calls are no-ops and return nil.
func InitDefault(cfg Config) error {
	var err error
	once.Do(func() {
		var l *Logger
		l, err = New(cfg)
		if err != nil {
			return
		}
		defaultMu.Lock()
		defaultLogger = l
		defaultMu.Unlock()
	})
	return err
}

// SetDefault replaces the process-wide default logger.
func SetDefault(l *Logger) error {
	if l == nil {
		return errors.New("cannot set nil logger as default")
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
	return nil
}

// GetDefault returns the process-wide default logger (thread-safe).
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Debug logs a debug message on the default logger.
func Debug(msg string, args ...any) {
	GetDefault().logger.Debug(msg, args...)
}

// DebugCtx logs a debug message with context on the default logger.
func DebugCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().logger.DebugContext(ctx, msg, args...)
}

// DebugAttrs logs a debug message with attributes on the default logger.
func DebugAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	GetDefault().logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs an informational message on the default logger.
func Info(msg string, args ...any) {
	GetDefault().logger.Info(msg, args...)
}

// InfoCtx logs an informational message with context on the default logger.
func InfoCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().logger.InfoContext(ctx, msg, args...)
}

// InfoAttrs logs an informational message with attributes on the default logger.
func InfoAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	GetDefault().logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs a warning message on the default logger.
func Warn(msg string, args ...any) {
	GetDefault().logger.Warn(msg, args...)
}

// WarnCtx logs a warning message with context on the default logger.
func WarnCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().logger.WarnContext(ctx, msg, args...)
}

// WarnAttrs logs a warning message with attributes on the default logger.
func WarnAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	GetDefault().logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs an error message on the default logger.
func Error(msg string, args ...any) {
	GetDefault().logger.Error(msg, args...)
}

// ErrorCtx logs an error message with context on the default logger.
func ErrorCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().logger.ErrorContext(ctx, msg, args...)
}

// ErrorAttrs logs an error message with attributes on the default logger.
func ErrorAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	GetDefault().logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// createHandler creates a [slog.Handler] for the format string. When source
// positions are requested, the text and JSON handlers are wrapped so the
// position points at the logging call site rather than this package.
func createHandler(writer io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(format) {
	case "text", "":
		if opts != nil && opts.AddSource {
			return NewTextHandler(writer, opts)
		}
		return slog.NewTextHandler(writer, opts)
	case "json":
		if opts != nil && opts.AddSource {
			return NewJsonHandler(writer, opts)
		}
		return slog.NewJSONHandler(writer, opts)
	case "null", "discard":
		return slog.DiscardHandler
	case "pretty", "color", "terminal", "human":
		return NewPrettyHandler(writer, opts)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown log format '%s'. Using text format.\n", format)
		if opts != nil && opts.AddSource {
			return NewTextHandler(writer, opts)
		}
		return slog.NewTextHandler(writer, opts)
	}
}

// parseLogLevel converts a string log level to a [slog.Level].
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "info", "":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown log level '%s'. Using info level.\n", levelStr)
		return slog.LevelInfo
	}
}
