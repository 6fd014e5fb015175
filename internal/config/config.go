package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Reference tuning for a 1m x 1m cloth of 10x10 point masses.
const (
	DefaultWidth      = 1.0
	DefaultHeight     = 1.0
	DefaultRows       = 10
	DefaultCols       = 10
	DefaultStiffness  = 25.0
	DefaultDamping    = 0.5
	DefaultDt         = 0.012
	DefaultMaxElapsed = 0.25
	DefaultDuration   = 10.0
	DefaultForce      = 2.0
)

type Config struct {
	Sheet SheetConfig `yaml:"sheet"`
	Sim   SimConfig   `yaml:"sim"`
	Force ForceConfig `yaml:"force"`
}

// SheetConfig describes the lattice geometry and spring parameters.
type SheetConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

// SimConfig describes timestep behavior and batch run length.
type SimConfig struct {
	Dt          float64 `yaml:"dt"`
	MaxElapsed  float64 `yaml:"max_elapsed"`
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
}

// ForceConfig describes the user force applied to the bottom row.
type ForceConfig struct {
	Magnitude float64 `yaml:"magnitude"`
}

func DefaultConfig() *Config {
	return &Config{
		Sheet: SheetConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Rows:      DefaultRows,
			Cols:      DefaultCols,
			Stiffness: DefaultStiffness,
			Damping:   DefaultDamping,
		},
		Sim: SimConfig{
			Dt:         DefaultDt,
			MaxElapsed: DefaultMaxElapsed,
			Duration:   DefaultDuration,
		},
		Force: ForceConfig{
			Magnitude: DefaultForce,
		},
	}
}

// Validate fails fast on malformed parameters so a bad grid never gets
// constructed further down.
func (c *Config) Validate() error {
	if c.Sheet.Rows < 1 || c.Sheet.Cols < 1 {
		return fmt.Errorf("config: rows and cols must be positive, got %dx%d", c.Sheet.Rows, c.Sheet.Cols)
	}
	if c.Sheet.Width <= 0 || c.Sheet.Height <= 0 {
		return fmt.Errorf("config: sheet extent must be positive, got %gx%g", c.Sheet.Width, c.Sheet.Height)
	}
	if c.Sheet.Stiffness < 0 {
		return fmt.Errorf("config: stiffness must be >= 0, got %g", c.Sheet.Stiffness)
	}
	if c.Sheet.Damping < 0 {
		return fmt.Errorf("config: damping must be >= 0, got %g", c.Sheet.Damping)
	}
	if c.Sim.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Sim.Dt)
	}
	if c.Sim.MaxElapsed < c.Sim.Dt {
		return fmt.Errorf("config: max_elapsed %g must be at least dt %g", c.Sim.MaxElapsed, c.Sim.Dt)
	}
	if c.Sim.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Sim.Duration)
	}
	if c.Force.Magnitude < 0 {
		return fmt.Errorf("config: force magnitude must be >= 0, got %g", c.Force.Magnitude)
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
