package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Pool    PoolConfig    `json:"pool"`
	Display DisplayConfig `json:"display"`
}

// PoolConfig holds pool-specific settings
type PoolConfig struct {
	LengthMeters float64 `json:"length_meters"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"` // "km" or "m"
	PaceUnit     string `json:"pace_unit"`     // "min/100m"
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Pool: PoolConfig{
			LengthMeters: 25,
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
			PaceUnit:     "min/100m",
		},
	}
}

// Load reads the configuration from ~/.swimtracker/config.json.
// A missing file is not an error: defaults apply.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadPath(path)
}

// LoadPath reads the configuration from an explicit path
func LoadPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Pool.LengthMeters == 0 {
		cfg.Pool.LengthMeters = defaults.Pool.LengthMeters
	}
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
	if cfg.Display.PaceUnit == "" {
		cfg.Display.PaceUnit = defaults.Display.PaceUnit
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.swimtracker/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks if the config has sensible values
func (c *Config) Validate() error {
	if c.Pool.LengthMeters <= 0 {
		return fmt.Errorf("pool.length_meters must be positive, got %v", c.Pool.LengthMeters)
	}
	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "m" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"m\", got %q", c.Display.DistanceUnit)
	}
	if c.Display.PaceUnit != "" && c.Display.PaceUnit != "min/100m" {
		return fmt.Errorf("display.pace_unit must be \"min/100m\", got %q", c.Display.PaceUnit)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".swimtracker", "config.json"), nil
}
