package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultChartWidth     = 800
	DefaultChartHeight    = 600
	DefaultDays           = 90
	DefaultTimeoutSeconds = 30
)

type Config struct {
	Verbose bool         `yaml:"verbose"`
	Chart   ChartConfig  `yaml:"chart"`
	Stocks  StocksConfig `yaml:"stocks"`
}

type ChartConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Ascii  bool `yaml:"ascii"`
	// Palette lists hex anchor colors for contour bands; empty keeps
	// the built-in ramp.
	Palette []string `yaml:"palette,omitempty"`
}

type StocksConfig struct {
	// Endpoint is a format string with one %s verb for the symbol.
	// Empty selects the built-in quote endpoint.
	Endpoint       string `yaml:"endpoint"`
	Days           int    `yaml:"days"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func DefaultConfig() *Config {
	return &Config{
		Chart: ChartConfig{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
		},
		Stocks: StocksConfig{
			Days:           DefaultDays,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// DefaultPath is the per-user config location, or "" when no user
// config directory can be determined.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "tpane", "config.yaml")
}

// Load reads path and overlays it on the defaults, so a partial file
// keeps default values for the keys it omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
