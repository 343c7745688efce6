package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("Warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewFansOut(t *testing.T) {
	var console, file bytes.Buffer
	l := New(&console, &file, "debug")
	l.Debug("hover changed", "marker", "A")

	assert.Contains(t, console.String(), "hover changed")
	assert.Contains(t, file.String(), "marker=A")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil, "warn")
	l.Info("quiet")
	l.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestWithAttrsAndGroup(t *testing.T) {
	var a, b bytes.Buffer
	l := New(&a, &b, "info").With("component", "picking").WithGroup("ray")
	l.Info("cast", "t", 1.5)
	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, "component=picking")
		assert.Contains(t, out, "ray.t=1.5")
	}
}

func TestSetupWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "globe.log")
	l, closeFn, err := Setup("info", path)
	require.NoError(t, err)
	l.Info("file entry")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logging initialized")
	assert.Contains(t, string(data), "file entry")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.Error("nothing")
}
