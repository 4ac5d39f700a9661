// Package config loads particle field settings from YAML.
//
// Config file locations (priority order):
//  1. $PARTICLEFIELD_CONFIG
//  2. ./particlefield.yaml
//  3. ~/.config/particlefield/config.yaml
//
// A missing file is not an error: the stock presets are used unchanged.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/particlefield/engine"
	"github.com/lixenwraith/particlefield/particle"
)

const (
	EnvConfigPath  = "PARTICLEFIELD_CONFIG"
	ConfigFileName = "particlefield.yaml"
)

var (
	// ErrUnknownPreset is returned when a field or its base names no known preset
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrInvalidField is returned when a field override cannot be applied
	ErrInvalidField = errors.New("invalid field")
)

// Config is the on-disk settings document
type Config struct {
	Version   int                    `yaml:"version"`
	Preset    string                 `yaml:"preset"`
	FrameRate int                    `yaml:"fps"`
	Chime     ChimeConfig            `yaml:"chime"`
	Fields    map[string]FieldConfig `yaml:"fields,omitempty"`
}

// ChimeConfig controls the regeneration sound
type ChimeConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// FieldConfig overrides a preset; unset values keep the preset's
// A name that is not a preset defines a new field derived from Base
type FieldConfig struct {
	Base               string        `yaml:"base,omitempty"`
	Count              *int          `yaml:"count,omitempty"`
	IntervalMs         *int          `yaml:"interval_ms,omitempty"`
	Reactivity         string        `yaml:"reactivity,omitempty"`
	ProximityThreshold *float64      `yaml:"proximity_threshold_px,omitempty"`
	JitterPx           *float64      `yaml:"jitter_px,omitempty"`
	PeriodMs           *int          `yaml:"period_ms,omitempty"`
	Palette            []string      `yaml:"palette,omitempty"`
	Background         []string      `yaml:"background,omitempty"`
	Spring             *SpringConfig `yaml:"spring,omitempty"`
}

// SpringConfig enables eased scale transitions
type SpringConfig struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// FindConfigPath returns the first existing config file, empty if none
func FindConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	candidates := []string{ConfigFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "particlefield", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the stock settings
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		Preset:    engine.PresetNebula,
		FrameRate: engine.DefaultFrameRate,
		Chime:     ChimeConfig{Enabled: false, Volume: 0.25},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Preset == "" {
		c.Preset = engine.PresetNebula
	}
	if c.FrameRate <= 0 {
		c.FrameRate = engine.DefaultFrameRate
	}
	if c.Chime.Volume <= 0 {
		c.Chime.Volume = 0.25
	}
}

// EngineConfigs resolves presets and overrides into field configs and a cycling order
// Presets come first in stock order, custom fields follow sorted by name
func (c *Config) EngineConfigs() (map[string]engine.Config, []string, error) {
	presets := engine.Presets()
	out := make(map[string]engine.Config, len(presets)+len(c.Fields))
	for name, cfg := range presets {
		out[name] = cfg
	}
	order := engine.PresetNames()

	var custom []string
	for name := range c.Fields {
		if _, ok := presets[name]; !ok {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)

	for _, name := range append(engine.PresetNames(), custom...) {
		fc, ok := c.Fields[name]
		if !ok {
			continue
		}
		base, isPreset := presets[name]
		if !isPreset {
			if base, ok = presets[fc.Base]; !ok {
				return nil, nil, fmt.Errorf("%w: field %q has base %q", ErrUnknownPreset, name, fc.Base)
			}
			order = append(order, name)
		}
		cfg, err := fc.apply(base)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", name, err)
		}
		cfg.Name = name
		out[name] = cfg
	}

	if _, ok := out[c.Preset]; !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownPreset, c.Preset)
	}
	return out, order, nil
}

// EngineConfig resolves only the selected preset
func (c *Config) EngineConfig() (engine.Config, error) {
	all, _, err := c.EngineConfigs()
	if err != nil {
		return engine.Config{}, err
	}
	return all[c.Preset], nil
}

// apply layers the override onto cfg
func (fc FieldConfig) apply(cfg engine.Config) (engine.Config, error) {
	if fc.Count != nil {
		if *fc.Count < 0 {
			return cfg, fmt.Errorf("%w: negative count %d", ErrInvalidField, *fc.Count)
		}
		cfg.Count = *fc.Count
	}
	if fc.IntervalMs != nil {
		cfg.Interval = time.Duration(*fc.IntervalMs) * time.Millisecond
	}
	if fc.PeriodMs != nil {
		cfg.Motion.Period = time.Duration(*fc.PeriodMs) * time.Millisecond
	}
	if fc.Reactivity != "" {
		r, ok := engine.ParseReactivity(fc.Reactivity)
		if !ok {
			return cfg, fmt.Errorf("%w: reactivity %q", ErrInvalidField, fc.Reactivity)
		}
		cfg.Motion.Reactivity = r
	}
	if fc.ProximityThreshold != nil {
		cfg.Motion.ProximityThreshold = *fc.ProximityThreshold
	}
	if fc.JitterPx != nil {
		cfg.Motion.JitterPx = *fc.JitterPx
	}
	if len(fc.Palette) > 0 {
		palette := make([]particle.Color, 0, len(fc.Palette))
		for _, s := range fc.Palette {
			col, err := particle.ParseColor(s)
			if err != nil {
				return cfg, fmt.Errorf("%w: palette: %v", ErrInvalidField, err)
			}
			palette = append(palette, col)
		}
		cfg.Palette = palette
	}
	if len(fc.Background) > 0 {
		if len(fc.Background) > 2 {
			return cfg, fmt.Errorf("%w: background takes one or two colors", ErrInvalidField)
		}
		for i := range cfg.Background {
			s := fc.Background[min(i, len(fc.Background)-1)]
			col, err := particle.ParseColor(s)
			if err != nil {
				return cfg, fmt.Errorf("%w: background: %v", ErrInvalidField, err)
			}
			cfg.Background[i] = col
		}
	}
	if fc.Spring != nil {
		cfg.Motion.Spring = engine.Spring{Frequency: fc.Spring.Frequency, Damping: fc.Spring.Damping}
	}
	return cfg, nil
}
