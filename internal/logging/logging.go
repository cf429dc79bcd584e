// Package logging configures the process-wide slog logger for kg tools and
// carries it through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kgtools/foundation/internal/config"
	"github.com/kgtools/foundation/internal/kgerr"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps error, warn/warning, info and debug (any case) to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, kgerr.New("unknown log level", "s", s)
	}
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Initializer returns a function that installs the default logger at a given
// level. Logs go to env.LogFile (rotated) when set, otherwise to stderr.
func Initializer(env *config.Env) func(slog.Level) {
	return func(level slog.Level) {
		slog.SetDefault(New(Writer(env), level))
	}
}

func Writer(env *config.Env) io.Writer {
	if env == nil || env.LogFile == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   env.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
}

type key struct{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// FromContext extracts the logger from ctx, falling back to slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(key{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
