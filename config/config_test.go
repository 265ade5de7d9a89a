package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "SEED_SAMPLE_DATA",
		"CORS_ALLOWED_ORIGINS", "REPORT_DATABASE_URL", "REPORT_INTERVAL", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, []string{"*"}, cfg.CorsAllowedOrigins)
	assert.False(t, cfg.ReportingEnabled())
	assert.Equal(t, 5*time.Minute, cfg.ReportInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.local , ,http://b.local")
	t.Setenv("REPORT_DATABASE_URL", "postgres://localhost/reports")
	t.Setenv("REPORT_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.SeedSampleData)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CorsAllowedOrigins)
	assert.True(t, cfg.ReportingEnabled())
	assert.Equal(t, 30*time.Second, cfg.ReportInterval)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"SEED_SAMPLE_DATA": "maybe",
		"REPORT_INTERVAL":  "soon",
		"SHUTDOWN_TIMEOUT": "10",
		"LOG_LEVEL":        "loud",
		"LOG_FORMAT":       "xml",
		"PORT":             "http",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestInitLogger(t *testing.T) {
	logger := InitLogger(Config{LogLevel: "warn", LogFormat: "json"})
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = InitLogger(Config{LogLevel: "debug", LogFormat: "text"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
