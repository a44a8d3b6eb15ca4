// Package config provides YAML-based game tuning and difficulty presets.
package config

import (
	"fmt"
	"time"
)

// Config contains all tunable values of a run.
type Config struct {
	Scoring  ScoringConfig `yaml:"scoring"`
	PowerUps PowerUpConfig `yaml:"powerups"`
	Timing   TimingConfig  `yaml:"timing"`
	Audio    AudioConfig   `yaml:"audio"`
}

// ScoringConfig defines points per pick and the combo bonus.
type ScoringConfig struct {
	CorrectPoints int `yaml:"correct_points"`
	WrongPenalty  int `yaml:"wrong_penalty"` // Subtracted, score floors at 0
	ComboEvery    int `yaml:"combo_every"`   // Bonus on every Nth consecutive correct pick
	ComboBonus    int `yaml:"combo_bonus"`
}

// PowerUpConfig defines hint and slow-motion budgets.
type PowerUpConfig struct {
	HintBudget      int     `yaml:"hint_budget"`
	HintRevealMs    int     `yaml:"hint_reveal_ms"`
	SlowMotionMs    int     `yaml:"slow_motion_ms"`
	SlowMotionDrain float64 `yaml:"slow_motion_drain"` // Seconds drained per tick while slowed
}

// TimingConfig defines timer periods and mutation odds.
type TimingConfig struct {
	CountdownMs    int     `yaml:"countdown_ms"`
	AdvanceDelayMs int     `yaml:"advance_delay_ms"`
	MutationChance float64 `yaml:"mutation_chance"`
}

// AudioConfig toggles synthesized cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// HintReveal returns how long a hint highlights the answer.
func (p PowerUpConfig) HintReveal() time.Duration {
	return time.Duration(p.HintRevealMs) * time.Millisecond
}

// SlowMotion returns how long slow motion lasts.
func (p PowerUpConfig) SlowMotion() time.Duration {
	return time.Duration(p.SlowMotionMs) * time.Millisecond
}

// Countdown returns the countdown tick period.
func (t TimingConfig) Countdown() time.Duration {
	return time.Duration(t.CountdownMs) * time.Millisecond
}

// AdvanceDelay returns the pause between clearing a level and the next one.
func (t TimingConfig) AdvanceDelay() time.Duration {
	return time.Duration(t.AdvanceDelayMs) * time.Millisecond
}

// Validate checks that the config can drive a run.
func (c Config) Validate() error {
	switch {
	case c.Scoring.CorrectPoints <= 0:
		return fmt.Errorf("config: scoring.correct_points must be positive")
	case c.Scoring.WrongPenalty < 0:
		return fmt.Errorf("config: scoring.wrong_penalty must not be negative")
	case c.Scoring.ComboEvery <= 0:
		return fmt.Errorf("config: scoring.combo_every must be positive")
	case c.PowerUps.HintBudget < 0:
		return fmt.Errorf("config: powerups.hint_budget must not be negative")
	case c.PowerUps.HintRevealMs <= 0:
		return fmt.Errorf("config: powerups.hint_reveal_ms must be positive")
	case c.PowerUps.SlowMotionMs <= 0:
		return fmt.Errorf("config: powerups.slow_motion_ms must be positive")
	case c.PowerUps.SlowMotionDrain <= 0 || c.PowerUps.SlowMotionDrain > 1:
		return fmt.Errorf("config: powerups.slow_motion_drain must be in (0, 1]")
	case c.Timing.CountdownMs <= 0:
		return fmt.Errorf("config: timing.countdown_ms must be positive")
	case c.Timing.AdvanceDelayMs < 0:
		return fmt.Errorf("config: timing.advance_delay_ms must not be negative")
	case c.Timing.MutationChance < 0 || c.Timing.MutationChance > 1:
		return fmt.Errorf("config: timing.mutation_chance must be in [0, 1]")
	}
	return nil
}
