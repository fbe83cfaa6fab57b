package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is wrapped by every validation failure from Rules.Validate.
var ErrInvalidRules = errors.New("invalid rules")

// Config is the on-disk configuration. Only spawn pacing and logging are
// tunable; everything else is a constant in this package.
type Config struct {
	Rules   Rules         `toml:"rules" yaml:"rules"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// Rules holds the constants that govern spawn pacing.
type Rules struct {
	InitialThreshold     int      `toml:"initial_threshold" yaml:"initial_threshold"`           // Ticks before the first spawn attempt
	PlateauThreshold     int      `toml:"plateau_threshold" yaml:"plateau_threshold"`           // Threshold after the first under-populated batch
	DynamicTarget        int      `toml:"dynamic_target" yaml:"dynamic_target"`                 // Population above which pressure eases
	BatchMin             int      `toml:"batch_min" yaml:"batch_min"`                           // Smallest under-populated batch
	BatchMax             int      `toml:"batch_max" yaml:"batch_max"`                           // Largest under-populated batch
	ThresholdDecreaseMax int      `toml:"threshold_decrease_max" yaml:"threshold_decrease_max"` // Max random decrease after a batch
	ThresholdIncreaseMax int      `toml:"threshold_increase_max" yaml:"threshold_increase_max"` // Max random increase after a single spawn
	BombThreshold        int      `toml:"bomb_threshold" yaml:"bomb_threshold"`                 // Base ticks between enemy shots
	BombJitter           int      `toml:"bomb_jitter" yaml:"bomb_jitter"`                       // Random extra ticks, drawn from [1, BombJitter]
	InitialWave          []string `toml:"initial_wave" yaml:"initial_wave"`                     // Enemy kinds on the field when play starts
	Seed                 int64    `toml:"seed" yaml:"seed"`                                     // 0 seeds from the clock
}

// LoggingConfig selects the zap encoder and level.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	File   string `toml:"file" yaml:"file"`     // Empty means stderr
}

// DefaultRules returns the standard arcade pacing.
func DefaultRules() Rules {
	return Rules{
		InitialThreshold:     120,
		PlateauThreshold:     300,
		DynamicTarget:        4,
		BatchMin:             2,
		BatchMax:             3,
		ThresholdDecreaseMax: 30,
		ThresholdIncreaseMax: 50,
		BombThreshold:        200,
		BombJitter:           200,
		InitialWave:          []string{"A", "B"},
	}
}

// Default returns a configuration with default rules and console logging.
func Default() *Config {
	return &Config{
		Rules: DefaultRules(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a TOML or YAML file (chosen by extension) over the defaults
// and validates the resulting rules.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// IsZero reports whether r is the zero value, i.e. no rules were given.
func (r Rules) IsZero() bool {
	return reflect.DeepEqual(r, Rules{})
}

// Validate reports the first rule that cannot drive the spawn controller.
func (r Rules) Validate() error {
	switch {
	case r.InitialThreshold < 0:
		return fmt.Errorf("%w: initial_threshold %d < 0", ErrInvalidRules, r.InitialThreshold)
	case r.PlateauThreshold < 0:
		return fmt.Errorf("%w: plateau_threshold %d < 0", ErrInvalidRules, r.PlateauThreshold)
	case r.DynamicTarget < 0:
		return fmt.Errorf("%w: dynamic_target %d < 0", ErrInvalidRules, r.DynamicTarget)
	case r.BatchMin < 1:
		return fmt.Errorf("%w: batch_min %d < 1", ErrInvalidRules, r.BatchMin)
	case r.BatchMax < r.BatchMin:
		return fmt.Errorf("%w: batch_max %d < batch_min %d", ErrInvalidRules, r.BatchMax, r.BatchMin)
	case r.ThresholdDecreaseMax < 0:
		return fmt.Errorf("%w: threshold_decrease_max %d < 0", ErrInvalidRules, r.ThresholdDecreaseMax)
	case r.ThresholdIncreaseMax < 0:
		return fmt.Errorf("%w: threshold_increase_max %d < 0", ErrInvalidRules, r.ThresholdIncreaseMax)
	case r.BombThreshold < 0:
		return fmt.Errorf("%w: bomb_threshold %d < 0", ErrInvalidRules, r.BombThreshold)
	case r.BombJitter < 1:
		return fmt.Errorf("%w: bomb_jitter %d < 1", ErrInvalidRules, r.BombJitter)
	}
	for _, kind := range r.InitialWave {
		switch strings.ToUpper(strings.TrimSpace(kind)) {
		case "A", "B", "C":
		default:
			return fmt.Errorf("%w: initial_wave kind %q", ErrInvalidRules, kind)
		}
	}
	return nil
}
