package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cq.yaml")
	data := []byte("powerups:\n  hint_budget: 7\ntiming:\n  advance_delay_ms: 100\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.PowerUps.HintBudget != 7 {
		t.Errorf("hint budget = %d, expected 7", cfg.PowerUps.HintBudget)
	}
	if cfg.Timing.AdvanceDelay() != 100*time.Millisecond {
		t.Errorf("advance delay = %v", cfg.Timing.AdvanceDelay())
	}
	// Untouched keys keep defaults
	if cfg.Scoring.ComboBonus != 30 {
		t.Errorf("combo bonus = %d, expected default 30", cfg.Scoring.ComboBonus)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  mutation_chance: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("out-of-range mutation chance should fail validation")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero points", func(c *Config) { c.Scoring.CorrectPoints = 0 }},
		{"negative penalty", func(c *Config) { c.Scoring.WrongPenalty = -1 }},
		{"zero combo", func(c *Config) { c.Scoring.ComboEvery = 0 }},
		{"zero countdown", func(c *Config) { c.Timing.CountdownMs = 0 }},
		{"drain too big", func(c *Config) { c.PowerUps.SlowMotionDrain = 2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default() invalid: %v", err)
	}
}

func TestPresets(t *testing.T) {
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}

	p, err := ParsePreset("")
	if err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}

	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.PowerUps.HintBudget != 5 {
		t.Errorf("easy hint budget = %d", easy.PowerUps.HintBudget)
	}

	hard := Default()
	ApplyPreset(&hard, DifficultyHard)
	if hard.PowerUps.HintBudget != 1 || hard.PowerUps.SlowMotion() != 3*time.Second {
		t.Errorf("hard preset = %+v", hard.PowerUps)
	}

	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != Default() {
		t.Error("normal preset should not change defaults")
	}
}
