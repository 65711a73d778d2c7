// Package config loads training-run configuration from a YAML file and
// merges CLI-supplied overrides on top.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	DataDir      string  `yaml:"data_dir"`
	Synthetic    bool    `yaml:"synthetic"`
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	HiddenSize   int     `yaml:"hidden_size"`
	LearningRate float32 `yaml:"learning_rate"`
	Momentum     float32 `yaml:"momentum"`
	Optimizer    string  `yaml:"optimizer"` // "sgd" or "adam"
	ValRatio     float32 `yaml:"val_ratio"` // 0 trains without a validation split
	Seed         int64   `yaml:"seed"`
	LogEvery     int     `yaml:"log_every"`
}

// Default returns the configuration the tutorial runs with out of the box:
// five epochs of batch-64 SGD over an MLP with one hidden layer of 128.
func Default() *Config {
	return &Config{
		DataDir:      "./data",
		Epochs:       5,
		BatchSize:    64,
		HiddenSize:   128,
		LearningRate: 0.1,
		Momentum:     0,
		Optimizer:    "sgd",
		ValRatio:     0.2,
		Seed:         42,
		LogEvery:     0,
	}
}

// Load reads a Config from a YAML file, applied on top of the defaults,
// and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides captures CLI-supplied values. Zero values mean "not set".
type Overrides struct {
	DataDir      string
	Epochs       int
	BatchSize    int
	HiddenSize   int
	LearningRate float32
	Seed         int64
	Synthetic    bool
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.HiddenSize > 0 {
		c.HiddenSize = o.HiddenSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Synthetic {
		c.Synthetic = true
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.HiddenSize <= 0 {
		return fmt.Errorf("hidden_size must be positive, got %d", c.HiddenSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be positive, got %g", c.LearningRate)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1), got %g", c.Momentum)
	}
	if c.Optimizer != "sgd" && c.Optimizer != "adam" {
		return fmt.Errorf("optimizer must be %q or %q, got %q", "sgd", "adam", c.Optimizer)
	}
	if c.ValRatio < 0 || c.ValRatio >= 1 {
		return fmt.Errorf("val_ratio must be in [0, 1), got %g", c.ValRatio)
	}
	if !c.Synthetic && c.DataDir == "" {
		return fmt.Errorf("data_dir is required unless synthetic is set")
	}
	return nil
}
