package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupStderr(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = slog.LevelWarn
	cfg.Stderr = &buf

	cleanup, err := Setup(cfg)
	require.NoError(t, err)
	defer cleanup()

	slog.Info("hidden")
	slog.Warn("shown", "query", "articles")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown query=articles")
}

func TestSetupFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "logs", "gqlsource.log")
	cfg := DefaultConfig()
	cfg.FilePath = path
	cfg.Compress = false

	cleanup, err := Setup(cfg)
	require.NoError(t, err)

	slog.Info("written", "request_id", "abc")
	require.NoError(t, cleanup())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "request_id=abc")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/x.log")

	cfg := DefaultConfig().FromEnv()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.Equal(t, "/tmp/x.log", cfg.FilePath)
}

func TestFromEnvBadLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	cfg := DefaultConfig().FromEnv()
	assert.Equal(t, slog.LevelInfo, cfg.Level)
}
