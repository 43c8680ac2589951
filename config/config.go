package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// CombatMode selects how the combat force is driven.
type CombatMode string

const (
	CombatAttack    CombatMode = "attack"
	CombatDefend    CombatMode = "defend"
	CombatAutomatic CombatMode = "automatic"
)

// Cadence is how often a scheduled subsystem runs: on every tick where
// step % Period == Phase % Period.
type Cadence struct {
	Period int `yaml:"period" toml:"period"`
	Phase  int `yaml:"phase" toml:"phase"`
}

// Due reports whether the cadence fires on step.
func (c Cadence) Due(step int) bool {
	if c.Period <= 0 {
		return false
	}
	return step%c.Period == c.Phase%c.Period
}

// Overlaps reports whether some step fires both cadences.
func (c Cadence) Overlaps(o Cadence) bool {
	if c.Period <= 0 || o.Period <= 0 {
		return false
	}
	g := gcd(c.Period, o.Period)
	return (c.Phase-o.Phase)%g == 0
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Config is the tunable strategy document. Every field is optional; an
// unspecified limit is 0, which means "do not build".
type Config struct {
	CombatMode             CombatMode         `yaml:"combat_mode" toml:"combat_mode"`
	AttackThreshold        int                `yaml:"attack_threshold" toml:"attack_threshold"`
	Strategy               string             `yaml:"strategy" toml:"strategy"`
	BaseName               string             `yaml:"base_name" toml:"base_name"`
	SingleConstruction     bool               `yaml:"single_construction" toml:"single_construction"`
	ContinueAfterPlacement bool               `yaml:"continue_after_placement" toml:"continue_after_placement"`
	BuildingLimits         map[string]int     `yaml:"building_limits" toml:"building_limits"`
	DrillLimits            map[string]int     `yaml:"drill_limits" toml:"drill_limits"`
	PumpLimits             map[string]int     `yaml:"pump_limits" toml:"pump_limits"`
	Cadences               map[string]Cadence `yaml:"cadences" toml:"cadences"`
}

// Extractor names whose limits are keyed by resource.
const (
	Drill = "drill"
	Pump  = "pump"
)

// Default returns the document used before any file has been read.
func Default() *Config {
	return &Config{
		CombatMode:         CombatAutomatic,
		AttackThreshold:    10,
		Strategy:           "eagle",
		BaseName:           "nucleus",
		SingleConstruction: true,
		BuildingLimits:     map[string]int{},
		DrillLimits:        map[string]int{},
		PumpLimits:         map[string]int{},
	}
}

// Load reads a config file. TOML is used for .toml files, YAML (which also
// accepts JSON) for everything else. Fields missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a document; ext selects the format the same way Load does.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects documents the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.CombatMode {
	case CombatAttack, CombatDefend, CombatAutomatic, "":
	default:
		errs = append(errs, fmt.Errorf("unknown combat_mode %q", c.CombatMode))
	}
	if c.AttackThreshold < 0 {
		errs = append(errs, fmt.Errorf("attack_threshold must not be negative, got %d", c.AttackThreshold))
	}
	for name, cd := range c.Cadences {
		if cd.Period <= 0 {
			errs = append(errs, fmt.Errorf("cadence %q: period must be positive", name))
		}
		if cd.Phase < 0 {
			errs = append(errs, fmt.Errorf("cadence %q: phase must not be negative", name))
		}
	}
	combat, okC := c.Cadences["combat"]
	build, okB := c.Cadences["build"]
	if okC && okB && combat.Overlaps(build) {
		errs = append(errs, errors.New("combat and build cadences must not coincide"))
	}
	return errors.Join(errs...)
}

// Mode returns the configured combat mode, automatic when unset.
func (c *Config) Mode() CombatMode {
	if c.CombatMode == "" {
		return CombatAutomatic
	}
	return c.CombatMode
}

// LimitFor returns the count limit of target. Drills and pumps are limited
// per resource; every other building per name.
func (c *Config) LimitFor(target, resource string) int {
	if resource != "" {
		switch target {
		case Drill:
			return c.DrillLimits[resource]
		case Pump:
			return c.PumpLimits[resource]
		}
	}
	return c.BuildingLimits[target]
}
