package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgersight/ledgersight/internal/category"
)

// Config represents the top-level ledgersight.yaml configuration.
type Config struct {
	Database       DatabaseConfig       `yaml:"database"`
	Server         ServerConfig         `yaml:"server"`
	Analytics      AnalyticsConfig      `yaml:"analytics"`
	Classification ClassificationConfig `yaml:"classification"`
	Categories     []category.Rule      `yaml:"categories,omitempty"`
}

// DatabaseConfig locates the ledger store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls the HTTP report API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AnalyticsConfig bounds query ranges and the reserve computation.
type AnalyticsConfig struct {
	MaxRangeDays      int `yaml:"max_range_days"`
	ReserveWindowDays int `yaml:"reserve_window_days"`
}

// ClassificationConfig tunes recurring-expense detection.
type ClassificationConfig struct {
	RecurringCutoff float64       `yaml:"recurring_cutoff"`
	Weights         WeightsConfig `yaml:"weights"`
}

// WeightsConfig distributes the four feature dimensions.
type WeightsConfig struct {
	Frequency float64 `yaml:"frequency"`
	Stability float64 `yaml:"stability"`
	Activity  float64 `yaml:"activity"`
	Scale     float64 `yaml:"scale"`
}

// Load reads a ledgersight.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "ledgersight.db",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Analytics: AnalyticsConfig{
			MaxRangeDays:      3650,
			ReserveWindowDays: 90,
		},
		Classification: ClassificationConfig{
			RecurringCutoff: 60,
			Weights: WeightsConfig{
				Frequency: 0.40,
				Stability: 0.30,
				Activity:  0.20,
				Scale:     0.10,
			},
		},
	}
}

// Rules returns the configured category table, or the built-in default when
// the config carries none.
func (c *Config) Rules() *category.Ruleset {
	if len(c.Categories) == 0 {
		return category.Default()
	}
	return category.NewRuleset(c.Categories)
}
