// Package common provides shared utilities for pocketledger
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for pocketledger
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Ledger      LedgerConfig  `toml:"ledger"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the ledger database path.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LedgerConfig holds ledger behavior settings.
type LedgerConfig struct {
	// StrictTransferMatch requires a transfer/top-up description hint when
	// pairing transfer legs; an absent category alone no longer qualifies.
	StrictTransferMatch bool `toml:"strict_transfer_match"`

	// SeedDemoData populates a demo ledger for users with no accounts.
	// Ignored in production.
	SeedDemoData bool `toml:"seed_demo_data"`

	// UpcomingWindowDays is the look-ahead window for upcoming scheduled
	// payments in summaries.
	UpcomingWindowDays int `toml:"upcoming_window_days"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/ledger",
		},
		Ledger: LedgerConfig{
			StrictTransferMatch: false,
			SeedDemoData:        true,
			UpcomingWindowDays:  30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("POCKETLEDGER_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("POCKETLEDGER_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("POCKETLEDGER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("POCKETLEDGER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("POCKETLEDGER_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if v := os.Getenv("POCKETLEDGER_STRICT_TRANSFER_MATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Ledger.StrictTransferMatch = b
		}
	}

	if v := os.Getenv("POCKETLEDGER_SEED_DEMO_DATA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Ledger.SeedDemoData = b
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
