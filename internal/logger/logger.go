// Package logger provides structured logging for the backend, backed by
// charmbracelet/log, with helpers to carry a logger through context.
package logger

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the logging interface used across the backend.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

func (c *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}

// New returns a Logger writing to out at the given level ("debug", "info",
// "warn", "error"; anything else means info).
func New(out io.Writer, level string) Logger {
	if out == nil {
		out = os.Stdout
	}
	lvl := charmlog.InfoLevel
	switch level {
	case "debug":
		lvl = charmlog.DebugLevel
	case "warn":
		lvl = charmlog.WarnLevel
	case "error":
		lvl = charmlog.ErrorLevel
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})
	return &charmLogger{l: l}
}

type ctxKey struct{}

// ContextWith returns a context carrying the given logger.
func ContextWith(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger carried by ctx, or a default info-level
// logger writing to stdout when none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
		return l
	}
	return New(os.Stdout, "info")
}
