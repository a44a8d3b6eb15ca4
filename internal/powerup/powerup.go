// Package powerup manages the per-run hint budget and the one-shot slow motion.
package powerup

import (
	"errors"
	"time"

	"github.com/vovakirdan/colorquest/internal/config"
)

var (
	// ErrSlowMotionUsed is returned when slow motion was already used this run.
	ErrSlowMotionUsed = errors.New("slow motion already used")
	// ErrNoHints is returned when the hint budget is exhausted.
	ErrNoHints = errors.New("no hints left")
)

// Manager tracks power-up usage for one run.
type Manager struct {
	cfg             config.PowerUpConfig
	hintsRemaining  int
	slowMotionUsed  bool
	slowMotionUntil time.Time // Zero when never activated
}

// NewManager creates a manager with a full budget.
func NewManager(cfg config.PowerUpConfig) *Manager {
	m := &Manager{cfg: cfg}
	m.Reset()
	return m
}

// Reset restores the full budget for a new run.
func (m *Manager) Reset() {
	m.hintsRemaining = m.cfg.HintBudget
	m.slowMotionUsed = false
	m.slowMotionUntil = time.Time{}
}

// Restore sets usage from a saved run. hints is clamped to the budget.
func (m *Manager) Restore(hints int, slowMotionUsed bool) {
	m.hintsRemaining = max(0, min(hints, m.cfg.HintBudget))
	m.slowMotionUsed = slowMotionUsed
	m.slowMotionUntil = time.Time{}
}

// Budget returns the per-run hint budget.
func (m *Manager) Budget() int {
	return m.cfg.HintBudget
}

// HintsRemaining returns unused hints.
func (m *Manager) HintsRemaining() int {
	return m.hintsRemaining
}

// HintUsed reports whether any hint was spent this run.
func (m *Manager) HintUsed() bool {
	return m.hintsRemaining < m.cfg.HintBudget
}

// SlowMotionUsed reports whether slow motion was spent this run.
func (m *Manager) SlowMotionUsed() bool {
	return m.slowMotionUsed
}

// SlowMotionUntil returns when the active slow motion ends.
func (m *Manager) SlowMotionUntil() time.Time {
	return m.slowMotionUntil
}

// SlowMotionActive reports whether now falls inside the slow-motion window.
func (m *Manager) SlowMotionActive(now time.Time) bool {
	return now.Before(m.slowMotionUntil)
}

// ActivateSlowMotion spends the slow motion and returns its duration.
func (m *Manager) ActivateSlowMotion(now time.Time) (time.Duration, error) {
	if m.slowMotionUsed {
		return 0, ErrSlowMotionUsed
	}
	d := m.cfg.SlowMotion()
	m.slowMotionUsed = true
	m.slowMotionUntil = now.Add(d)
	return d, nil
}

// Drain returns how many seconds one countdown tick removes at now.
func (m *Manager) Drain(now time.Time) float64 {
	if m.SlowMotionActive(now) {
		return m.cfg.SlowMotionDrain
	}
	return 1.0
}

// UseHint spends one hint and returns how long the reveal lasts.
func (m *Manager) UseHint() (time.Duration, error) {
	if m.hintsRemaining <= 0 {
		return 0, ErrNoHints
	}
	m.hintsRemaining--
	return m.cfg.HintReveal(), nil
}
