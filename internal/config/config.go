package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when a field is missing from config.json.
const (
	DefaultListenAddr = ":8000"
	DefaultTimezone   = "Europe/Berlin"
)

// Config represents the flat cradle configuration.
type Config struct {
	Version    string `json:"version"`
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP bind address, e.g. ":8000"
	Timezone   string `json:"timezone,omitempty"`    // IANA name of the single civil timezone
	DBPath     string `json:"db_path,omitempty"`     // overrides the default ~/.cradle/cradle.db
	LogLevel   string `json:"log_level,omitempty"`   // "debug" or "info"
}

// DataDir returns the cradle data directory (~/.cradle), creating it if needed.
// CRADLE_HOME overrides the location.
func DataDir() (string, error) {
	if dir := os.Getenv("CRADLE_HOME"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create data directory: %w", err)
		}
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".cradle")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// LoadConfig reads config.json from the data directory. A missing file is not
// an error: defaults are returned so a fresh install works without setup.
func LoadConfig(dir string) (*Config, error) {
	cfg := &Config{
		Version:    "1",
		ListenAddr: DefaultListenAddr,
		Timezone:   DefaultTimezone,
	}

	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}

	return cfg, nil
}

// SaveConfig writes config.json to the data directory.
func SaveConfig(dir string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Location resolves the configured timezone. All timestamps in the store are
// civil times in this one zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
