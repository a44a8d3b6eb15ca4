package run

import (
	"time"

	"github.com/vovakirdan/colorquest/internal/grid"
	"github.com/vovakirdan/colorquest/internal/levels"
	"github.com/vovakirdan/colorquest/internal/palette"
	"github.com/vovakirdan/colorquest/internal/timer"
)

// Event is emitted by the controller for renderers, audio and other
// collaborators. The set is closed.
type Event interface {
	runEvent()
}

// LevelStarted is emitted when a level attempt begins.
type LevelStarted struct {
	Level    levels.Spec
	Grid     *grid.Grid // Read-only for receivers
	Attempt  timer.Attempt
	TimeLeft float64
}

func (LevelStarted) runEvent() {}

// CellRecolored is emitted for each decoy changed by a mutation tick.
type CellRecolored struct {
	Index int
	Token palette.Token
}

func (CellRecolored) runEvent() {}

// PickResult is emitted for every accepted pick.
type PickResult struct {
	Cell         int
	Correct      bool
	ScoreDelta   int
	ComboAfter   int
	BonusAwarded bool
	ScoreAfter   int
}

func (PickResult) runEvent() {}

// ComboAchieved is emitted when a pick earns the combo bonus.
type ComboAchieved struct {
	Combo int
	Bonus int
}

func (ComboAchieved) runEvent() {}

// TimeTick is emitted on every countdown tick.
type TimeTick struct {
	Remaining int // Whole seconds, rounded up
	Slowed    bool
}

func (TimeTick) runEvent() {}

// TimedOut is emitted once when the countdown reaches zero.
type TimedOut struct {
	Level int
}

func (TimedOut) runEvent() {}

// LevelCleared is emitted when the answer cell is picked.
type LevelCleared struct {
	Level int
	Score int
}

func (LevelCleared) runEvent() {}

// RunFinished is emitted after the last level is cleared.
type RunFinished struct {
	RunID          string
	Score          int
	ElapsedSeconds int
	NewBest        bool
}

func (RunFinished) runEvent() {}

// HintRevealed is emitted when a hint highlights the answer cell.
type HintRevealed struct {
	Cell      int
	Duration  time.Duration
	Remaining int
}

func (HintRevealed) runEvent() {}

// HintExpired is emitted when the highlight ends.
type HintExpired struct {
	Cell int
}

func (HintExpired) runEvent() {}

// SlowMotionActivated is emitted when slow motion starts.
type SlowMotionActivated struct {
	Duration time.Duration
	Until    time.Time
}

func (SlowMotionActivated) runEvent() {}

// SlowMotionEnded is emitted once the slow-motion window has passed.
type SlowMotionEnded struct{}

func (SlowMotionEnded) runEvent() {}

// Advisory is emitted when an intent is rejected.
type Advisory struct {
	Reason string
}

func (Advisory) runEvent() {}

// Sink receives events.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) { f(ev) }

// Sinks fans an event out to several sinks in order.
type Sinks []Sink

// Emit forwards ev to every non-nil sink.
func (s Sinks) Emit(ev Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Emit(ev)
		}
	}
}

// Recorder buffers events until drained.
type Recorder struct {
	events []Event
}

// Emit appends ev.
func (r *Recorder) Emit(ev Event) {
	r.events = append(r.events, ev)
}

// Events returns the buffered events without draining them.
func (r *Recorder) Events() []Event {
	return r.events
}

// Drain returns the buffered events and empties the buffer.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// Len returns the number of buffered events.
func (r *Recorder) Len() int {
	return len(r.events)
}

type discard struct{}

func (discard) Emit(Event) {}
