package audio

import (
	"time"

	"github.com/vovakirdan/colorquest/internal/run"
)

// Cue is a short synthesized sound.
type Cue int

const (
	CueNone Cue = iota
	CueLevelStart
	CueCorrect
	CueWrong
	CueCombo
	CueTimeout
	CueFinish
	CueHint
	CueSlowMotion
	CueWarning // Last seconds of the countdown
)

func (c Cue) String() string {
	switch c {
	case CueLevelStart:
		return "level-start"
	case CueCorrect:
		return "correct"
	case CueWrong:
		return "wrong"
	case CueCombo:
		return "combo"
	case CueTimeout:
		return "timeout"
	case CueFinish:
		return "finish"
	case CueHint:
		return "hint"
	case CueSlowMotion:
		return "slow-motion"
	case CueWarning:
		return "warning"
	default:
		return "none"
	}
}

// warnBelow is the countdown value at and under which ticks beep.
const warnBelow = 3

// CueFor maps a run event to the cue it plays.
func CueFor(ev run.Event) (Cue, bool) {
	switch ev := ev.(type) {
	case run.LevelStarted:
		return CueLevelStart, true
	case run.PickResult:
		if ev.Correct {
			return CueCorrect, true
		}
		return CueWrong, true
	case run.ComboAchieved:
		return CueCombo, true
	case run.TimeTick:
		if ev.Remaining > 0 && ev.Remaining <= warnBelow {
			return CueWarning, true
		}
	case run.TimedOut:
		return CueTimeout, true
	case run.RunFinished:
		return CueFinish, true
	case run.HintRevealed:
		return CueHint, true
	case run.SlowMotionActivated:
		return CueSlowMotion, true
	}
	return CueNone, false
}

// note is one tone of a cue. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueLevelStart: {{523.25, 60 * time.Millisecond}, {659.25, 80 * time.Millisecond}},
	CueCorrect:    {{659.25, 70 * time.Millisecond}, {987.77, 110 * time.Millisecond}},
	CueWrong:      {{196.00, 90 * time.Millisecond}, {0, 20 * time.Millisecond}, {174.61, 140 * time.Millisecond}},
	CueCombo: {
		{523.25, 60 * time.Millisecond},
		{659.25, 60 * time.Millisecond},
		{783.99, 60 * time.Millisecond},
		{1046.50, 140 * time.Millisecond},
	},
	CueTimeout: {{392.00, 120 * time.Millisecond}, {311.13, 120 * time.Millisecond}, {261.63, 240 * time.Millisecond}},
	CueFinish: {
		{523.25, 100 * time.Millisecond},
		{659.25, 100 * time.Millisecond},
		{783.99, 100 * time.Millisecond},
		{1046.50, 300 * time.Millisecond},
	},
	CueHint:       {{880.00, 50 * time.Millisecond}, {0, 30 * time.Millisecond}, {880.00, 50 * time.Millisecond}},
	CueSlowMotion: {{440.00, 150 * time.Millisecond}, {329.63, 250 * time.Millisecond}},
	CueWarning:    {{1318.51, 40 * time.Millisecond}},
}

// Length returns how long a cue plays.
func (c Cue) Length() time.Duration {
	var total time.Duration
	for _, n := range cueNotes[c] {
		total += n.dur
	}
	return total
}
