// Package scoring tracks the combo counter and turns pick outcomes into points.
package scoring

import (
	"github.com/vovakirdan/colorquest/internal/config"
	"github.com/vovakirdan/colorquest/internal/core"
)

// Result is the outcome of one pick.
type Result struct {
	Correct      bool
	ScoreDelta   int // Applied change; a penalty at score 0 yields 0
	ComboAfter   int
	BonusAwarded bool
	ScoreAfter   int
}

// Engine holds the running score and combo.
type Engine struct {
	cfg   config.ScoringConfig
	score int
	combo int
}

// NewEngine creates an engine starting at zero.
func NewEngine(cfg config.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Combo returns the current consecutive-correct count.
func (e *Engine) Combo() int {
	return e.combo
}

// Reset zeroes score and combo.
func (e *Engine) Reset() {
	e.score = 0
	e.combo = 0
}

// Restore sets the score from a saved run. The combo starts over.
func (e *Engine) Restore(score int) {
	e.score = core.Max(0, score)
	e.combo = 0
}

// OnPick scores a pick.
func (e *Engine) OnPick(correct bool) Result {
	before := e.score

	if !correct {
		e.combo = 0
		e.score = core.Max(0, e.score-e.cfg.WrongPenalty)
		return Result{
			ScoreDelta: e.score - before,
			ComboAfter: 0,
			ScoreAfter: e.score,
		}
	}

	e.combo++
	gained := e.cfg.CorrectPoints
	bonus := e.cfg.ComboEvery > 0 && e.combo%e.cfg.ComboEvery == 0
	if bonus {
		gained += e.cfg.ComboBonus
	}
	e.score += gained

	return Result{
		Correct:      true,
		ScoreDelta:   gained,
		ComboAfter:   e.combo,
		BonusAwarded: bonus,
		ScoreAfter:   e.score,
	}
}
