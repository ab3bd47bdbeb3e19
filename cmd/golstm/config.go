package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/golstm/lstm"
)

// Config represents the application configuration
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Model    ModelConfig    `yaml:"model"`
	Forecast ForecastConfig `yaml:"forecast"`
}

// DataConfig holds input dataset settings
type DataConfig struct {
	File   string `yaml:"file"`
	Layout string `yaml:"layout"` // "column" or "wide"
	Column string `yaml:"column"` // value column (column layout)
	Key    string `yaml:"key"`    // row key (wide layout)
	Offset int    `yaml:"offset"` // first observation column (wide layout)
	Daily  bool   `yaml:"daily"`  // difference cumulative totals into daily increments
}

// ModelConfig holds model hyperparameters
type ModelConfig struct {
	Window       int     `yaml:"window"`
	Hidden       int     `yaml:"hidden"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	Seed         int64   `yaml:"seed"`
	LogEvery     int     `yaml:"log_every"`
}

// ForecastConfig holds forecast and output settings
type ForecastConfig struct {
	Horizon int    `yaml:"horizon"`
	Holdout int    `yaml:"holdout"` // observations held out for accuracy evaluation
	Format  string `yaml:"format"`  // "table" or "json"
	Output  string `yaml:"output"`  // optional forecast CSV path
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	model := lstm.DefaultConfig()
	return &Config{
		Data: DataConfig{
			Layout: "wide",
			Offset: 4,
		},
		Model: ModelConfig{
			Window:       model.WindowSize,
			Hidden:       model.HiddenSize,
			Epochs:       model.Epochs,
			LearningRate: model.LearningRate,
			Seed:         model.Seed,
			LogEvery:     model.LogEvery,
		},
		Forecast: ForecastConfig{
			Horizon: 12,
			Format:  "table",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return fmt.Errorf("a data file is required (--data or data.file in config)")
	}
	if c.Data.Layout != "column" && c.Data.Layout != "wide" {
		return fmt.Errorf("layout must be \"column\" or \"wide\", got %q", c.Data.Layout)
	}
	if c.Forecast.Horizon < 1 {
		return fmt.Errorf("horizon must be at least 1")
	}
	if c.Forecast.Holdout < 0 {
		return fmt.Errorf("holdout must be non-negative")
	}
	if c.Forecast.Format != "table" && c.Forecast.Format != "json" {
		return fmt.Errorf("format must be \"table\" or \"json\", got %q", c.Forecast.Format)
	}
	return c.ModelConfig().Validate()
}

// ModelConfig converts the configuration into model hyperparameters.
func (c *Config) ModelConfig() lstm.Config {
	return lstm.Config{
		WindowSize:   c.Model.Window,
		HiddenSize:   c.Model.Hidden,
		Epochs:       c.Model.Epochs,
		LearningRate: c.Model.LearningRate,
		Seed:         c.Model.Seed,
		LogEvery:     c.Model.LogEvery,
	}
}
