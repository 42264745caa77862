package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port            string
	SessionLifetime time.Duration

	// Database
	DatabasePath string

	// OMDb
	OMDbAPIKey        string
	OMDbBaseURL       string
	OMDbRatePerSecond float64
	OMDbTimeout       time.Duration

	// Logging
	LogLevel  slog.Level
	LogFormat string
}

// Load reads .env when present and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		SessionLifetime:   time.Duration(getEnvInt("SESSION_LIFETIME_HOURS", 24)) * time.Hour,
		DatabasePath:      getEnv("DATABASE_PATH", "movie_kombat.db"),
		OMDbAPIKey:        getEnv("OMDB_API_KEY", ""),
		OMDbBaseURL:       getEnv("OMDB_BASE_URL", "https://www.omdbapi.com/"),
		OMDbRatePerSecond: getEnvFloat("OMDB_RATE_PER_SECOND", 5),
		OMDbTimeout:       time.Duration(getEnvInt("OMDB_TIMEOUT_SECONDS", 10)) * time.Second,
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q, expected text or json", cfg.LogFormat)
	}
	if cfg.OMDbRatePerSecond <= 0 {
		return nil, fmt.Errorf("OMDB_RATE_PER_SECOND must be positive")
	}

	return cfg, nil
}

// Logger builds the process logger from the logging settings.
func (c *Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
