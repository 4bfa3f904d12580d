package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "./uploads", cfg.Server.UploadDir)
	assert.Equal(t, int64(10485760), cfg.Server.MaxFileSize)
	assert.Equal(t, "https://api.openai.com", cfg.OpenAI.BaseURL)
	assert.Equal(t, "whisper-1", cfg.OpenAI.WhisperModel)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.OpenAI.Key)
	assert.Empty(t, cfg.Anthropic.Key)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SALES_SERVER_PORT", "9100")
	t.Setenv("SALES_OPENAI_KEY", "sk-whisper")
	t.Setenv("SALES_ANTHROPIC_KEY", "sk-test")
	t.Setenv("SALES_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "sk-whisper", cfg.OpenAI.Key)
	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: 8443\n  upload_dir: /var/spool/audio\nopenai:\n  key: sk-openai\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, "/var/spool/audio", cfg.Server.UploadDir)
	assert.Equal(t, "sk-openai", cfg.OpenAI.Key)
	// Untouched keys keep defaults.
	assert.Equal(t, "whisper-1", cfg.OpenAI.WhisperModel)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: ["), 0o644))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shout", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
}
