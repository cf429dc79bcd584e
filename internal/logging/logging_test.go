package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kgtools/foundation/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"error":   slog.LevelError,
		"WARN":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"info":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown k=1")
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info("from context")
	assert.Contains(t, buf.String(), "from context")
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestWriterUsesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kg.log")
	w := Writer(&config.Env{LogFile: path})
	New(w, slog.LevelInfo).Info("to file")
	if c, ok := w.(interface{ Close() error }); ok {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to file"))

	assert.Equal(t, os.Stderr, Writer(nil))
}
