package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultRulesValid(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules rejected: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "rules.toml", `
[rules]
initial_threshold = 60
dynamic_target = 6
initial_wave = ["C"]
seed = 42

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rules.InitialThreshold != 60 || cfg.Rules.DynamicTarget != 6 || cfg.Rules.Seed != 42 {
		t.Errorf("rules not applied: %+v", cfg.Rules)
	}
	// Unset keys keep their defaults
	if cfg.Rules.PlateauThreshold != 300 || cfg.Rules.BombJitter != 200 {
		t.Errorf("defaults lost: %+v", cfg.Rules)
	}
	if !reflect.DeepEqual(cfg.Rules.InitialWave, []string{"C"}) {
		t.Errorf("initial wave = %v, want [C]", cfg.Rules.InitialWave)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging not applied: %+v", cfg.Logging)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "rules.yaml", `
rules:
  batch_min: 1
  batch_max: 5
  initial_wave: []
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rules.BatchMin != 1 || cfg.Rules.BatchMax != 5 {
		t.Errorf("batch bounds = %d..%d, want 1..5", cfg.Rules.BatchMin, cfg.Rules.BatchMax)
	}
	if len(cfg.Rules.InitialWave) != 0 {
		t.Errorf("initial wave = %v, want empty", cfg.Rules.InitialWave)
	}
	if cfg.Rules.InitialThreshold != 120 {
		t.Errorf("initial threshold = %d, want default 120", cfg.Rules.InitialThreshold)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		invalid bool
	}{
		{"unsupported extension", "rules.json", `{}`, false},
		{"malformed toml", "rules.toml", `[rules`, false},
		{"malformed yaml", "rules.yml", "rules: [", false},
		{"batch order", "rules.toml", "[rules]\nbatch_min = 3\nbatch_max = 2\n", true},
		{"unknown kind", "rules.yaml", "rules:\n  initial_wave: [A, D]\n", true},
		{"zero jitter", "rules.toml", "[rules]\nbomb_jitter = 0\n", true},
		{"negative threshold", "rules.toml", "[rules]\ninitial_threshold = -1\n", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.file, tc.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrInvalidRules); got != tc.invalid {
				t.Errorf("errors.Is(err, ErrInvalidRules) = %v, want %v (err: %v)", got, tc.invalid, err)
			}
		})
	}
}

func TestValidateTrimsWaveKinds(t *testing.T) {
	r := DefaultRules()
	r.InitialWave = []string{" A", "b ", "\tC"}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate(%q) = %v, want nil", r.InitialWave, err)
	}
	r.InitialWave = []string{" "}
	if err := r.Validate(); !errors.Is(err, ErrInvalidRules) {
		t.Errorf("Validate(%q) = %v, want ErrInvalidRules", r.InitialWave, err)
	}
}

func TestRulesIsZero(t *testing.T) {
	if !(Rules{}).IsZero() {
		t.Error("zero rules not reported as zero")
	}
	if DefaultRules().IsZero() {
		t.Error("default rules reported as zero")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		log, err := NewLogger(LoggingConfig{Level: "bogus", Format: format, File: filepath.Join(t.TempDir(), "game.log")})
		if err != nil {
			t.Fatalf("NewLogger(%s): %v", format, err)
		}
		log.Info("hello")
		_ = log.Sync()
	}
}
