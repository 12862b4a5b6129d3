package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when no config file exists", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, v, err := Load("")
		require.NoError(t, err)
		require.NotNil(t, v)

		assert.Equal(t, "https://api.allanime.day", cfg.API.Endpoint)
		assert.Equal(t, 20, cfg.API.PageSize)
		assert.Equal(t, 30*time.Second, cfg.Network.Timeout)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.UI.SearchType)
	})

	t.Run("reads values from an explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "api:\n  page_size: 40\nnetwork:\n  timeout: 5s\nui:\n  dub: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, _, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 40, cfg.API.PageSize)
		assert.Equal(t, 5*time.Second, cfg.Network.Timeout)
		assert.True(t, cfg.UI.Dub)
		// untouched keys keep defaults
		assert.Equal(t, "https://allanime.to", cfg.API.BaseURL)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("ANISEEK_LOGGING_LEVEL", "debug")

		cfg, _, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("rejects unknown search type", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("ui:\n  search_type: trending\n"), 0644))

		_, _, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "search_type")
	})
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aniseek", "config.yaml")

	require.NoError(t, WriteDefault(path, false))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().API, cfg.API)
	assert.Equal(t, Default().Network.Timeout, cfg.Network.Timeout)

	err = WriteDefault(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.NoError(t, WriteDefault(path, true))
}

func TestColoredTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewColoredTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.With("component", "search").Error("query failed", "page", 2)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\033[31m"), "error lines start red: %q", out)
	assert.Contains(t, out, "component=search")
	assert.Contains(t, out, "page=2")
}

func TestSetLogLevel(t *testing.T) {
	_, err := InitLogger(&LoggingConfig{Level: "error", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, logLevel.Level())

	SetLogLevel("debug")
	assert.Equal(t, slog.LevelDebug, logLevel.Level())

	SetLogLevel("bogus")
	assert.Equal(t, slog.LevelInfo, logLevel.Level())
}
