// Package logger provides the diagnostic logger used across unitconv.
// Diagnostics go to stderr so they never mix with conversion results.
package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type ctxKey struct{}

// Level names accepted by ParseLevel.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// ParseLevel converts a level name to a charm log level.
func ParseLevel(s string) (charmlog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case DebugLevel:
		return charmlog.DebugLevel, nil
	case InfoLevel:
		return charmlog.InfoLevel, nil
	case WarnLevel, "warning":
		return charmlog.WarnLevel, nil
	case ErrorLevel:
		return charmlog.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", s)
	}
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) (*charmlog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		Prefix:          "unitconv",
		ReportTimestamp: lvl == charmlog.DebugLevel,
		TimeFormat:      "15:04:05",
	})
	l.SetFormatter(charmlog.TextFormatter)
	return l, nil
}

// Discard returns a logger that writes nothing.
func Discard() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{Level: charmlog.FatalLevel})
}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*charmlog.Logger); ok && l != nil {
		return l
	}
	return Discard()
}
