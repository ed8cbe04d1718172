package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigReadsEnvironment(t *testing.T) {
	t.Setenv("KARMA_SERVER_URL", "https://karma.example.com")
	t.Setenv("KARMA_LOG_LEVEL", "DEBUG")
	t.Setenv("KARMA_LOG_CONSOLE", "true")

	cfg := DefaultConfig()
	assert.Equal(t, "https://karma.example.com", cfg.ServerURL)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.True(t, cfg.LogConsole)
}

func TestDefaultConfigFallsBackWhenUnset(t *testing.T) {
	t.Setenv("KARMA_SERVER_URL", "")
	t.Setenv("KARMA_LOG_LEVEL", "")
	t.Setenv("KARMA_LOG_CONSOLE", "")

	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.False(t, cfg.LogConsole)
}

func TestLoadServerDevSecretFallback(t *testing.T) {
	t.Setenv("KARMA_JWT_SECRET", "")
	t.Setenv("KARMA_ENV", "development")

	cfg := LoadServer()
	require.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.Production())
}

func TestLoadServerProductionKeepsSecretEmpty(t *testing.T) {
	t.Setenv("KARMA_JWT_SECRET", "")
	t.Setenv("KARMA_ENV", "production")

	cfg := LoadServer()
	assert.Empty(t, cfg.JWTSecret)
	assert.True(t, cfg.Production())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.ServerURL = "https://karma.internal:9000"
	cfg.LogLevel = "WARN"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://karma.internal:9000", loaded.ServerURL)
	assert.Equal(t, "WARN", loaded.LogLevel)
}
