package run

import (
	"time"

	"github.com/vovakirdan/colorquest/internal/grid"
	"github.com/vovakirdan/colorquest/internal/levels"
	"github.com/vovakirdan/colorquest/internal/timer"
)

// Status is the run state.
type Status int

const (
	StatusIdle     Status = iota // No run in progress
	StatusActive                 // Level running, picks accepted
	StatusLocked                 // Level cleared, waiting to advance
	StatusTimedOut               // Countdown expired
	StatusFinished               // Last level cleared
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusActive:
		return "active"
	case StatusLocked:
		return "locked"
	case StatusTimedOut:
		return "timed out"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session is a read-only view of the controller state.
type Session struct {
	Status          Status
	RunID           string
	LevelIndex      int
	Level           levels.Spec
	Grid            *grid.Grid // Nil before the first level; do not modify
	Score           int
	Combo           int
	BestScore       int
	TimeLeft        float64
	HintsRemaining  int
	HintCell        int // Revealed cell, -1 when no hint is showing
	SlowMotionUsed  bool
	SlowMotionUntil time.Time
	StartedAt       time.Time
	Attempt         timer.Attempt
}

// SecondsLeft returns the countdown rounded up to whole seconds.
func (s Session) SecondsLeft() int {
	return ceilSeconds(s.TimeLeft)
}

// InRun reports whether a run is underway.
func (s Session) InRun() bool {
	return s.Status != StatusIdle && s.Status != StatusFinished
}
