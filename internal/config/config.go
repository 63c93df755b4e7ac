// ABOUTME: Readiness configuration with backend selection and env overrides.
// ABOUTME: JSON file at the XDG config path; READINESS_* vars win over it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/readiness/internal/charm"
	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
)

// Config stores readiness tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty" env:"READINESS_BACKEND"`

	// DataDir is the root directory for data storage. SQLite puts
	// readiness.db here. Supports ~ expansion. Defaults to
	// ~/.local/share/readiness.
	DataDir string `json:"data_dir,omitempty" env:"READINESS_DATA_DIR"`

	// Source selects the health source: "simulated" (default) or a path
	// to a JSON readings file.
	Source string `json:"source,omitempty" env:"READINESS_SOURCE"`

	// Mode is the readiness time-window policy: "morning" or "rolling24h".
	Mode string `json:"mode,omitempty" env:"READINESS_MODE"`

	// BaselinePeriodDays is the lookback window: 7, 14, or 30.
	BaselinePeriodDays int `json:"baseline_period_days,omitempty" env:"READINESS_BASELINE_DAYS"`

	// DisableRHRAdjustment turns off the elevated-RHR penalty.
	DisableRHRAdjustment bool `json:"disable_rhr_adjustment,omitempty" env:"READINESS_NO_RHR"`

	// DisableSleepAdjustment turns off the short-sleep penalty.
	DisableSleepAdjustment bool `json:"disable_sleep_adjustment,omitempty" env:"READINESS_NO_SLEEP"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// Settings builds the immutable engine settings snapshot currently in
// effect. Callers take a fresh snapshot per invocation.
func (c *Config) Settings() models.Settings {
	s := models.DefaultSettings()
	if c.Mode != "" {
		s.Mode = models.Mode(c.Mode)
	}
	if c.BaselinePeriodDays != 0 {
		s.BaselinePeriodDays = c.BaselinePeriodDays
	}
	s.UseRHRAdjustment = !c.DisableRHRAdjustment
	s.UseSleepAdjustment = !c.DisableSleepAdjustment
	return s
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation for the configured
// backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch c.GetBackend() {
	case "sqlite":
		return storage.Open(filepath.Join(c.GetDataDir(), "readiness.db"))
	case "charm":
		return charm.NewRepository()
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.GetBackend())
	}
}

// OpenSource creates the configured health source.
func (c *Config) OpenSource() (source.Source, error) {
	switch c.Source {
	case "", "simulated":
		return source.NewSimulated(0), nil
	default:
		return source.OpenFile(ExpandPath(c.Source))
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "readiness", "config.json")
}

// Load reads config from disk, then applies environment overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
