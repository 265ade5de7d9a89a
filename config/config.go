package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	LogFormat          string
	SeedSampleData     bool
	CorsAllowedOrigins []string
	ReportDatabaseURL  string
	ReportInterval     time.Duration
	ShutdownTimeout    time.Duration

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// ReportingEnabled is true when a reporting database is configured.
func (c Config) ReportingEnabled() bool {
	return c.ReportDatabaseURL != ""
}

// Load reads .env if present and then the process environment. Invalid
// values are reported by variable name.
func Load() (Config, error) {
	envErr := godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "release"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReportDatabaseURL:  getEnv("REPORT_DATABASE_URL", ""),
		EnvFileLoaded:      envErr == nil,
	}

	var err error
	if cfg.SeedSampleData, err = getBool("SEED_SAMPLE_DATA", true); err != nil {
		return Config{}, err
	}
	if cfg.ReportInterval, err = getDuration("REPORT_INTERVAL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields that command line flags may have overridden.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT: must be text or json, got %q", c.LogFormat)
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT: invalid port %q", c.Port)
	}
	if c.ReportingEnabled() && c.ReportInterval <= 0 {
		return fmt.Errorf("REPORT_INTERVAL: must be positive, got %s", c.ReportInterval)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, value)
	}
	return d, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
