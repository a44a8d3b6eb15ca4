package audio

import (
	"math"
	"testing"

	"github.com/vovakirdan/colorquest/internal/config"
	"github.com/vovakirdan/colorquest/internal/run"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   run.Event
		cue  Cue
		ok   bool
	}{
		{"level start", run.LevelStarted{}, CueLevelStart, true},
		{"correct pick", run.PickResult{Correct: true}, CueCorrect, true},
		{"wrong pick", run.PickResult{Correct: false}, CueWrong, true},
		{"combo", run.ComboAchieved{Combo: 3}, CueCombo, true},
		{"calm tick", run.TimeTick{Remaining: 9}, CueNone, false},
		{"warning tick", run.TimeTick{Remaining: 3}, CueWarning, true},
		{"zero tick", run.TimeTick{Remaining: 0}, CueNone, false},
		{"timeout", run.TimedOut{}, CueTimeout, true},
		{"finish", run.RunFinished{}, CueFinish, true},
		{"hint", run.HintRevealed{}, CueHint, true},
		{"slow motion", run.SlowMotionActivated{}, CueSlowMotion, true},
		{"advisory", run.Advisory{Reason: "x"}, CueNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, ok := CueFor(tt.ev)
			if cue != tt.cue || ok != tt.ok {
				t.Errorf("CueFor() = %v, %v; expected %v, %v", cue, ok, tt.cue, tt.ok)
			}
		})
	}
}

func TestRenderIsFinite(t *testing.T) {
	for cue := range cueNotes {
		s, err := Render(cue, 0.5)
		if err != nil {
			t.Fatalf("Render(%v) failed: %v", cue, err)
		}

		buf := make([][2]float64, 512)
		total := 0
		peak := 0.0
		for {
			n, ok := s.Stream(buf)
			for _, frame := range buf[:n] {
				peak = math.Max(peak, math.Abs(frame[0]))
			}
			total += n
			if !ok || n == 0 {
				break
			}
		}

		expected := 0
		for _, n := range cueNotes[cue] {
			expected += sampleRate.N(n.dur)
		}
		if total != expected {
			t.Errorf("%v: streamed %d samples, expected %d", cue, total, expected)
		}
		if peak > 0.51 {
			t.Errorf("%v: peak %.3f exceeds volume", cue, peak)
		}
	}
}

func TestRenderClampsVolume(t *testing.T) {
	s, err := Render(CueCorrect, 4)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	buf := make([][2]float64, 512)
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			peak = math.Max(peak, math.Abs(frame[0]))
		}
		if !ok || n == 0 {
			break
		}
	}
	if peak > 1.0001 {
		t.Errorf("peak %.3f above full scale", peak)
	}
}

func TestCueLength(t *testing.T) {
	if got := CueWarning.Length(); got.Milliseconds() != 40 {
		t.Errorf("CueWarning.Length() = %v", got)
	}
	if CueNone.Length() != 0 {
		t.Error("CueNone should be silent")
	}
}

func TestRenderUnknownCue(t *testing.T) {
	if _, err := Render(CueNone, 1); err == nil {
		t.Error("expected error for CueNone")
	}
}

func TestPlayerWithoutDeviceIsSafe(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("player panicked without a device: %v", r)
		}
	}()

	p := NewPlayer(config.AudioConfig{Enabled: false, Volume: 0.5}, nil)
	if err := p.Init(); err != nil {
		t.Fatalf("disabled Init() failed: %v", err)
	}
	p.Emit(run.PickResult{Correct: true})
	p.Play(CueFinish)
	p.Close()
}
