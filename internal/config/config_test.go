package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	interval, err := cfg.GetRefreshInterval()
	if err != nil {
		t.Fatalf("refresh interval: %v", err)
	}
	if interval != 30*time.Second {
		t.Errorf("default refresh interval = %v, want 30s", interval)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Scoring.LimitPerMode != 5 {
		t.Errorf("missing file should return defaults, got limit %d", cfg.Scoring.LimitPerMode)
	}
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[dataset]
path = "/var/lib/edh/partners.json"
refresh_interval = "2m"

[scoring]
min_score = 0.3

[server]
port = 9000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Dataset.Path != "/var/lib/edh/partners.json" {
		t.Errorf("dataset path = %q", cfg.Dataset.Path)
	}
	if cfg.Dataset.RefreshInterval != "2m" {
		t.Errorf("refresh interval = %q", cfg.Dataset.RefreshInterval)
	}
	if cfg.Scoring.MinScore != 0.3 {
		t.Errorf("min score = %g", cfg.Scoring.MinScore)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	// Untouched sections keep their defaults.
	if cfg.Scoring.LimitPerMode != 5 {
		t.Errorf("limit per mode = %d, want default 5", cfg.Scoring.LimitPerMode)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad interval", func(c *Config) { c.Dataset.RefreshInterval = "soon" }},
		{"negative min score", func(c *Config) { c.Scoring.MinScore = -0.1 }},
		{"min score above one", func(c *Config) { c.Scoring.MinScore = 1.5 }},
		{"negative limit", func(c *Config) { c.Scoring.LimitPerMode = -1 }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
