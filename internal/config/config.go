package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv              string
	Port                string
	DatabaseURL         string
	ModelArtifactPath   string
	ModelOptional       bool
	ConfidenceThreshold float64
	SnapshotCacheTTL    time.Duration
	LogLevel            string
	LogFormat           string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		ModelArtifactPath: getEnv("MODEL_ARTIFACT_PATH", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	optional, err := parseBool("MODEL_OPTIONAL", false)
	if err != nil {
		return nil, err
	}
	cfg.ModelOptional = optional

	if cfg.ModelArtifactPath == "" && !cfg.ModelOptional {
		return nil, fmt.Errorf("MODEL_ARTIFACT_PATH is required unless MODEL_OPTIONAL=true")
	}

	threshold, err := parseFloat("CONFIDENCE_THRESHOLD", 0)
	if err != nil {
		return nil, err
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("CONFIDENCE_THRESHOLD must be between 0 and 1, got %v", threshold)
	}
	cfg.ConfidenceThreshold = threshold

	ttl, err := parseDuration("SNAPSHOT_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	if ttl < 0 {
		return nil, fmt.Errorf("SNAPSHOT_CACHE_TTL must not be negative")
	}
	cfg.SnapshotCacheTTL = ttl

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func parseFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}

func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 30s or 5m: %w", key, err)
	}
	return v, nil
}
