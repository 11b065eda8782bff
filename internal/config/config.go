package config

import (
	"os"
	"strconv"

	"playlitics/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds dataset defaults for the dashboard
type DataConfig struct {
	DefaultRows int   // Rows in the synthetic dataset generated at startup
	Seed        int64 // Explicit generator seed; 0 derives one from the row count
	SeedSet     bool
	SampleRows  int // Rows in the downloadable sample CSV
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			DefaultRows: getEnvIntOrDefault("SYNTHETIC_ROWS", 2000),
			SampleRows:  getEnvIntOrDefault("SAMPLE_ROWS", 100),
		},
	}

	if seedStr := os.Getenv("DATASET_SEED"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("DATASET_SEED must be an integer")
		}
		cfg.Data.Seed = seed
		cfg.Data.SeedSet = true
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Data.DefaultRows <= 0 {
		return errors.ConfigInvalid("SYNTHETIC_ROWS must be positive")
	}
	if cfg.Data.SampleRows <= 0 {
		return errors.ConfigInvalid("SAMPLE_ROWS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
