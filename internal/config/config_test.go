package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SESSION_LIFETIME_HOURS", "OMDB_BASE_URL", "LOG_LEVEL", "LOG_FORMAT"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Skipf("%s is set in the environment", key)
		}
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, "https://www.omdbapi.com/", cfg.OMDbBaseURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OMDB_API_KEY", "secret")
	t.Setenv("OMDB_RATE_PER_SECOND", "0.5")
	t.Setenv("OMDB_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "secret", cfg.OMDbAPIKey)
	assert.Equal(t, 0.5, cfg.OMDbRatePerSecond)
	assert.Equal(t, 3*time.Second, cfg.OMDbTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "log level", key: "LOG_LEVEL", value: "loud"},
		{name: "log format", key: "LOG_FORMAT", value: "xml"},
		{name: "rate", key: "OMDB_RATE_PER_SECOND", value: "-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
