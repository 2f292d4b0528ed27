package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Partner dataset configuration
	Dataset DatasetConfig `toml:"dataset"`

	// Commander catalog configuration
	Catalog CatalogConfig `toml:"catalog"`

	// Suggestion scoring configuration
	Scoring ScoringConfig `toml:"scoring"`

	// HTTP API configuration
	Server ServerConfig `toml:"server"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// DatasetConfig contains partner dataset settings.
type DatasetConfig struct {
	Path            string `toml:"path"`             // Path to the partner dataset JSON
	AutoRefresh     bool   `toml:"auto_refresh"`     // Regenerate the dataset when missing
	RefreshCommand  string `toml:"refresh_command"`  // External command that rebuilds the dataset
	RefreshInterval string `toml:"refresh_interval"` // Minimum spacing between refresh attempts (e.g., "30s")
	Watch           bool   `toml:"watch"`            // Watch the dataset file for changes
}

// CatalogConfig contains commander catalog settings.
type CatalogConfig struct {
	DBPath string `toml:"db_path"` // Path to the commander SQLite database
}

// ScoringConfig contains suggestion ranking settings.
type ScoringConfig struct {
	MinScore     float64 `toml:"min_score"`      // Drop candidates scoring below this
	LimitPerMode int     `toml:"limit_per_mode"` // Max suggestions per pairing mode (0 = unlimited)
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Port int `toml:"port"` // Listen port for the API server
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:            "",
			AutoRefresh:     true,
			RefreshCommand:  "",
			RefreshInterval: "30s",
			Watch:           true,
		},
		Catalog: CatalogConfig{
			DBPath: "",
		},
		Scoring: ScoringConfig{
			MinScore:     0.15,
			LimitPerMode: 5,
		},
		Server: ServerConfig{
			Port: 8790,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".edh-companion")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit path. A missing file
// yields the defaults; values present in the file override them.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Dataset.RefreshInterval); err != nil {
		return fmt.Errorf("invalid refresh interval %q: %w", c.Dataset.RefreshInterval, err)
	}

	if c.Scoring.MinScore < 0 || c.Scoring.MinScore > 1 {
		return fmt.Errorf("min score must be within [0, 1]: %g", c.Scoring.MinScore)
	}

	if c.Scoring.LimitPerMode < 0 {
		return fmt.Errorf("limit per mode cannot be negative: %d", c.Scoring.LimitPerMode)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	return nil
}

// GetRefreshInterval returns the dataset refresh interval as a duration.
func (c *Config) GetRefreshInterval() (time.Duration, error) {
	return time.ParseDuration(c.Dataset.RefreshInterval)
}
