package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog with the JSON handler configuration used across the service.
type Logger struct {
	logger *slog.Logger
}

type Option func(*options)

type options struct {
	writer io.Writer
}

// WithWriter redirects log output, used by tests.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// New builds a JSON logger at the given level ("debug", "info", "warn", "error").
func New(level string, opts ...Option) (*Logger, error) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	writer := cfg.writer
	if writer == nil {
		writer = os.Stdout
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{logger: slog.New(handler)}, nil
}

// MustNew is New for wiring paths where a logger failure is unrecoverable.
func MustNew(level string, opts ...Option) *Logger {
	logger, err := New(level, opts...)
	if err != nil {
		panic(err)
	}
	return logger
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a logger that tags every record with the component name.
func (l *Logger) WithComponent(name string) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With("component", name)}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Log(context.Background(), level, msg, args...)
}

// AttachError appends an error attribute when err is non-nil.
func AttachError(err error, args ...any) []any {
	if err == nil {
		return args
	}
	return append(args, "error", err.Error())
}
