package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MENTORLINK_CONFIG_DIR", dir)
	t.Setenv("MENTORLINK_CONFIG", "")
	for _, k := range []string{
		"MENTORLINK_API_URL", "MENTORLINK_API_TIMEOUT", "MENTORLINK_NOTIFY_TIMEOUT",
		"MENTORLINK_LOCALE", "MENTORLINK_GLYPHS", "MENTORLINK_DEBUG_LOG",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.TUI.NotifyTimeout)
	assert.Equal(t, "ko", cfg.TUI.Locale)
	assert.Equal(t, "unicode", cfg.TUI.Glyphs)
	assert.Empty(t, cfg.Log.DebugPath)
	assert.False(t, cfg.Server.Seed)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := isolate(t)
	yaml := `
api:
  base_url: "http://mentors.local/api"
  timeout: "5s"
tui:
  notify_timeout: "1s"
  locale: "en"
server:
  seed: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("MENTORLINK_LOCALE", "ja")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://mentors.local/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Second, cfg.TUI.NotifyTimeout)
	assert.Equal(t, "ja", cfg.TUI.Locale)
	assert.True(t, cfg.Server.Seed)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)
	t.Setenv("MENTORLINK_CONFIG", filepath.Join(dir, "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate_CollectsErrors(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)

	cfg.TUI.Glyphs = "emoji"
	cfg.TUI.NotifyTimeout = 0
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tui.glyphs")
	assert.Contains(t, err.Error(), "tui.notify_timeout")
}
