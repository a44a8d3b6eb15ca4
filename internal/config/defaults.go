package config

import (
	_ "embed"
)

//go:embed defaults/colorquest.yaml
var defaultYAML []byte

// Default returns the built-in tuning.
func Default() Config {
	return Config{
		Scoring: ScoringConfig{
			CorrectPoints: 10,
			WrongPenalty:  5,
			ComboEvery:    3,
			ComboBonus:    30,
		},
		PowerUps: PowerUpConfig{
			HintBudget:      3,
			HintRevealMs:    1200,
			SlowMotionMs:    5000,
			SlowMotionDrain: 0.5,
		},
		Timing: TimingConfig{
			CountdownMs:    1000,
			AdvanceDelayMs: 650,
			MutationChance: 0.6,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.25,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}
