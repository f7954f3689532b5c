// Package config loads the simulation configuration from embedded defaults,
// optionally overridden by a user-supplied YAML file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"terrain-ca/pkg/terrain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunables for the viewer and the engine.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Rule    RuleConfig    `yaml:"rule"`
	Display DisplayConfig `yaml:"display"`
}

// GridConfig holds the terrain dimensions and seeding parameters.
type GridConfig struct {
	Size    int     `yaml:"size"`
	Density float64 `yaml:"density"`
	Seed    int64   `yaml:"seed"`
}

// RuleConfig holds the birth/survival thresholds and the age clip.
type RuleConfig struct {
	BirthMin    int  `yaml:"birth_min"`
	BirthMax    int  `yaml:"birth_max"`
	SurvivalMin int  `yaml:"survival_min"`
	SurvivalMax int  `yaml:"survival_max"`
	MaxAge      int8 `yaml:"max_age"`
}

// DisplayConfig holds viewer settings. Hue, saturation and the brightness
// endpoints shape the age palette: a cell that just came alive is drawn at
// NewBrightness, the oldest cells at OldBrightness.
type DisplayConfig struct {
	Scale         int     `yaml:"scale"`
	TPS           int     `yaml:"tps"`
	Hue           float64 `yaml:"hue"`
	Saturation    float64 `yaml:"saturation"`
	NewBrightness float64 `yaml:"new_brightness"`
	OldBrightness float64 `yaml:"old_brightness"`
}

// Load parses the embedded defaults and, when path is non-empty, overlays the
// fields present in that file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TerrainRule converts the rule section into engine thresholds.
func (c *Config) TerrainRule() terrain.Rule {
	return terrain.Rule{
		BirthMin:    c.Rule.BirthMin,
		BirthMax:    c.Rule.BirthMax,
		SurvivalMin: c.Rule.SurvivalMin,
		SurvivalMax: c.Rule.SurvivalMax,
		MaxAge:      c.Rule.MaxAge,
	}
}

// Validate rejects settings the engine or the viewer cannot run with. Rule
// thresholds are validated by the engine at construction.
func (c *Config) Validate() error {
	if c.Grid.Size <= 0 {
		return fmt.Errorf("grid size %d: %w", c.Grid.Size, terrain.ErrInvalidConfiguration)
	}
	if c.Grid.Density < 0 || c.Grid.Density > 1 {
		return fmt.Errorf("density %v outside [0, 1]: %w", c.Grid.Density, terrain.ErrInvalidConfiguration)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("display scale %d: %w", c.Display.Scale, terrain.ErrInvalidConfiguration)
	}
	if c.Display.TPS <= 0 {
		return fmt.Errorf("display tps %d: %w", c.Display.TPS, terrain.ErrInvalidConfiguration)
	}
	return nil
}
