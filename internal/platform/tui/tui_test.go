package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colorquest/internal/config"
	"github.com/vovakirdan/colorquest/internal/core"
	"github.com/vovakirdan/colorquest/internal/grid"
	"github.com/vovakirdan/colorquest/internal/levels"
	"github.com/vovakirdan/colorquest/internal/palette"
	"github.com/vovakirdan/colorquest/internal/profile"
	"github.com/vovakirdan/colorquest/internal/run"
	"github.com/vovakirdan/colorquest/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runes("s"), core.ActionDown, false},
		{runes("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPick, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPick, false},
		{runes("i"), core.ActionHint, false},
		{runes("m"), core.ActionSlowMotion, false},
		{runes("]"), core.ActionNextLevel, false},
		{runes("["), core.ActionPrevLevel, false},
		{runes("r"), core.ActionRetry, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMoveCursorWraps(t *testing.T) {
	g := &grid.Grid{Cells: make([]grid.Cell, 9), Side: 3}
	s := run.Session{Grid: g}

	tests := []struct {
		from   int
		action core.Action
		to     int
	}{
		{0, core.ActionLeft, 2},
		{0, core.ActionUp, 6},
		{4, core.ActionRight, 5},
		{8, core.ActionDown, 2},
		{2, core.ActionRight, 0},
	}
	for _, tt := range tests {
		if got := moveCursor(tt.from, tt.action, s); got != tt.to {
			t.Errorf("moveCursor(%d, %v) = %d, expected %d", tt.from, tt.action, got, tt.to)
		}
	}

	if got := moveCursor(5, core.ActionUp, run.Session{}); got != 0 {
		t.Errorf("moveCursor without grid = %d", got)
	}
}

func TestInkForContrast(t *testing.T) {
	if ink := inkFor(palette.Token{Name: "Yellow", Hex: "#eab308"}); ink != inkDark {
		t.Errorf("yellow should use dark ink, got %s", ink)
	}
	if ink := inkFor(palette.Token{Name: "Indigo", Hex: "#6366f1"}); ink != inkLight {
		t.Errorf("indigo should use light ink, got %s", ink)
	}
	if ink := inkFor(palette.Token{Name: "Broken", Hex: "nope"}); ink != inkLight {
		t.Errorf("unparsable token should fall back to light ink, got %s", ink)
	}
}

func TestCellSizeBounds(t *testing.T) {
	for _, side := range []int{2, 3, 4, 5} {
		w, h := cellSize(side, 80, 24)
		if w < 4 || h < 1 {
			t.Errorf("side %d: cell %dx%d too small", side, w, h)
		}
		if side*(w+1) > 80 {
			t.Errorf("side %d: grid %d wide does not fit", side, side*(w+1))
		}
	}
}

func newTestApp(t *testing.T, mem *storage.Memory) (AppModel, *profile.Gateway) {
	t.Helper()
	gw := profile.New(mem, nil)
	app := NewApp(Deps{
		Profile: gw,
		Config:  config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 20, Seed: 3},
		Clock:   core.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	return app, gw
}

func press(t *testing.T, m tea.Model, msg tea.KeyMsg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestAppNewRunFlow(t *testing.T) {
	app, gw := newTestApp(t, storage.NewMemory())

	// No saved run, so "New Run" is the first entry.
	var m tea.Model = app
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	am := m.(AppModel)
	if am.screen != screenGame {
		t.Fatalf("screen = %v, expected game", am.screen)
	}
	if am.ctrl.Status() != run.StatusActive {
		t.Fatalf("controller status = %v", am.ctrl.Status())
	}
	if _, ok := gw.Snapshot(); !ok {
		t.Error("starting a run should save it")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	am = m.(AppModel)
	if am.screen != screenMenu || am.ctrl.Status() != run.StatusIdle {
		t.Errorf("after esc: screen %v status %v", am.screen, am.ctrl.Status())
	}
	if am.menu.items[0].Choice != ChoiceContinue {
		t.Error("menu should offer Continue after leaving a run")
	}
}

func TestAppPickThroughGameView(t *testing.T) {
	app, gw := newTestApp(t, storage.NewMemory())
	var m tea.Model = app
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	am := m.(AppModel)
	answer := am.ctrl.Session().Grid.AnswerIndex
	am.game.cursor = answer
	m = am

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	am = m.(AppModel)
	if am.ctrl.Status() != run.StatusLocked {
		t.Fatalf("status = %v after picking the answer", am.ctrl.Status())
	}
	if gw.BestScore() != 10 {
		t.Errorf("BestScore() = %d", gw.BestScore())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if s := m.(AppModel).ctrl.Session(); s.Status != run.StatusActive || s.LevelIndex != 1 {
		t.Errorf("enter while cleared should continue, got %v level %d", s.Status, s.LevelIndex)
	}
}

func TestLevelSelectRejectsLocked(t *testing.T) {
	m := NewLevelSelectModel(2, 80, 24)

	var tm tea.Model = m
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyRight})
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyEnter})
	lm := tm.(LevelSelectModel)
	if lm.Chosen() != -1 || lm.notice == "" {
		t.Errorf("locked level chosen: %d, notice %q", lm.Chosen(), lm.notice)
	}

	tm = press(t, lm, tea.KeyMsg{Type: tea.KeyLeft})
	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyEnter})
	if got := tm.(LevelSelectModel).Chosen(); got != 2 {
		t.Errorf("Chosen() = %d, expected 2", got)
	}
}

func TestLevelBanner(t *testing.T) {
	plain, _ := levels.At(0)
	trick, _ := levels.At(3)
	if !trick.IsTrick || plain.IsTrick {
		t.Fatalf("unexpected level table: level 1 trick=%v, level 4 trick=%v", plain.IsTrick, trick.IsTrick)
	}

	blue := palette.Token{Name: "Blue", Hex: "#3b82f6"}
	g := &grid.Grid{Cells: []grid.Cell{{Token: blue, IsAnswer: true}}, Answer: blue, Side: 2}

	if got := levelBanner(run.LevelStarted{Level: plain, Grid: g}); got != "Level 1" {
		t.Errorf("plain banner = %q", got)
	}
	got := levelBanner(run.LevelStarted{Level: trick, Grid: g})
	if !strings.HasPrefix(got, "Level 4: careful, Blue looks a lot like ") {
		t.Errorf("trick banner = %q", got)
	}
}
