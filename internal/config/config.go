// Package config holds bmaptool's persisted settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the directory under the user config dir.
const AppName = "bolo-mapkit"

var configProfile string

// userConfigDir is replaced in tests.
var userConfigDir = os.UserConfigDir

// SetProfile selects a named config file so several setups can coexist.
func SetProfile(profile string) {
	configProfile = profile
}

// Config holds tool configuration.
type Config struct {
	// Output
	Verbose bool `json:"verbose"`

	// Write <file>.bak before overwriting a map in place
	Backup bool `json:"backup"`

	// Owner given to objects created by the add commands: 0-15, or 255 for neutral
	DefaultOwner int `json:"default_owner"`

	// Per-tile character overrides for dumps, keyed by tile name
	Legend map[string]string `json:"legend,omitempty"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		Backup:       true,
		DefaultOwner: 0xff,
	}
}

// Validate checks values a hand-edited file may get wrong.
func (c *Config) Validate() error {
	if c.DefaultOwner != 0xff && (c.DefaultOwner < 0 || c.DefaultOwner > 15) {
		return fmt.Errorf("default_owner must be 0-15 or 255, got %d", c.DefaultOwner)
	}
	return nil
}

// LoadConfig loads config from the user's config directory. A missing file
// yields the defaults.
func LoadConfig() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save saves the config to disk.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Path returns the path of the active profile's config file.
func Path() (string, error) {
	configDir, err := userConfigDir()
	if err != nil {
		return "", err
	}

	filename := "config.json"
	if configProfile != "" {
		filename = "config-" + configProfile + ".json"
	}

	return filepath.Join(configDir, AppName, filename), nil
}
