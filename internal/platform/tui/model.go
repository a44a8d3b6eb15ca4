package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorquest/internal/core"
	"github.com/vovakirdan/colorquest/internal/palette"
	"github.com/vovakirdan/colorquest/internal/run"
)

// messageTTL is how long a toast stays on screen.
const messageTTL = 1500 * time.Millisecond

// GameModel is the Bubble Tea model for a level in play.
type GameModel struct {
	ctrl      *run.Controller
	events    *run.Recorder
	clock     core.Clock
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	gen       int

	cursor       int
	message      string
	messageStyle lipgloss.Style
	messageUntil time.Time // Zero keeps the message until replaced
	finished     *run.RunFinished
	quitting     bool
	backToMenu   bool
}

// NewGameModel creates a game view over a controller whose events are
// buffered in events.
func NewGameModel(ctrl *run.Controller, events *run.Recorder, clock core.Clock, cfg core.RuntimeConfig, gen int) GameModel {
	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		ctrl:      ctrl,
		events:    events,
		clock:     clock,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
		gen:       gen,
	}
	m.drain()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.quitting || m.backToMenu {
			return m, nil
		}
		m.ctrl.Advance(m.clock.Now())
		m.drain()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	s := m.ctrl.Session()
	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.cursor = moveCursor(m.cursor, action, s)
	case core.ActionPick:
		switch s.Status {
		case run.StatusActive:
			m.dispatch(run.Pick{Cell: m.cursor})
		case run.StatusLocked:
			m.dispatch(run.Continue{})
		case run.StatusTimedOut:
			m.dispatch(run.Retry{})
		case run.StatusFinished:
			m.backToMenu = true
		}
	case core.ActionHint:
		m.dispatch(run.UseHint{})
	case core.ActionSlowMotion:
		m.dispatch(run.UseSlowMotion{})
	case core.ActionNextLevel:
		m.dispatch(run.Navigate{Delta: 1})
	case core.ActionPrevLevel:
		m.dispatch(run.Navigate{Delta: -1})
	case core.ActionRetry:
		if s.Status == run.StatusTimedOut {
			m.dispatch(run.Retry{})
		}
	case core.ActionBack:
		m.leave()
		m.backToMenu = true
	}

	m.drain()
	return m, nil
}

// dispatch sends an intent to the controller. A rejection arrives as an
// Advisory event, so the returned error is not needed here.
func (m *GameModel) dispatch(in run.Intent) {
	//nolint:errcheck // Rejections are shown through the Advisory event
	m.ctrl.Dispatch(in)
}

// leave exits the run so its timers stop. The saved run stays.
func (m *GameModel) leave() {
	if m.ctrl.Session().InRun() {
		m.dispatch(run.Exit{})
	}
	m.events.Drain()
}

// drain applies buffered controller events to the view.
func (m *GameModel) drain() {
	now := m.clock.Now()
	for _, ev := range m.events.Drain() {
		switch ev := ev.(type) {
		case run.LevelStarted:
			if m.cursor >= ev.Grid.Len() {
				m.cursor = 0
			}
			m.finished = nil
			m.say(levelBanner(ev), titleStyle, now)
		case run.PickResult:
			if ev.Correct {
				m.say(fmt.Sprintf("Great! +%d", ev.ScoreDelta), goodStyle, now)
			} else {
				m.say("Miss!", warnStyle, now)
			}
		case run.ComboAchieved:
			m.say(fmt.Sprintf("Combo x%d! +%d bonus", ev.Combo, ev.Bonus), goodStyle, now)
		case run.TimedOut:
			m.message = "Time up! space: retry  esc: menu"
			m.messageStyle = warnStyle
			m.messageUntil = time.Time{}
		case run.HintRevealed:
			m.say(fmt.Sprintf("Hint used (%d left)", ev.Remaining), titleStyle, now)
		case run.SlowMotionActivated:
			m.say("Slow motion!", slowStyle, now)
		case run.Advisory:
			m.say(ev.Reason, dimStyle, now)
		case run.RunFinished:
			fin := ev
			m.finished = &fin
		}
	}
}

// levelBanner names the level and, on trick levels, the look-alike color
// closest to the answer.
func levelBanner(ev run.LevelStarted) string {
	banner := fmt.Sprintf("Level %d", ev.Level.Number())
	if !ev.Level.IsTrick || ev.Grid == nil {
		return banner
	}
	near, _, ok := palette.Closest(palette.Default{}, ev.Grid.Answer)
	if !ok {
		return banner
	}
	return fmt.Sprintf("%s: careful, %s looks a lot like %s", banner, ev.Grid.Answer.Name, near.Name)
}

func (m *GameModel) say(text string, style lipgloss.Style, now time.Time) {
	m.message = text
	m.messageStyle = style
	m.messageUntil = now.Add(messageTTL)
}

// moveCursor moves within the grid, wrapping at the edges.
func moveCursor(cursor int, action core.Action, s run.Session) int {
	if s.Grid == nil || s.Grid.Len() == 0 {
		return 0
	}
	n := s.Grid.Len()
	side := core.Max(1, s.Grid.Side)
	row, col := cursor/side, cursor%side
	rows := (n + side - 1) / side

	switch action {
	case core.ActionUp:
		row = (row - 1 + rows) % rows
	case core.ActionDown:
		row = (row + 1) % rows
	case core.ActionLeft:
		col = (col - 1 + side) % side
	case core.ActionRight:
		col = (col + 1) % side
	}
	next := row*side + col
	if next >= n {
		next = n - 1
	}
	return next
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.finished != nil {
		return m.viewFinished()
	}

	now := m.clock.Now()
	s := m.ctrl.Session()
	w := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(renderHUD(s, now), w))
	b.WriteString("\n")
	b.WriteString(centerText(progressBar(s.LevelIndex, core.Min(40, w-8)), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(renderPrompt(s.Grid), w))
	b.WriteString("\n\n")

	cursor := m.cursor
	if s.Status != run.StatusActive {
		cursor = -1
	}
	gridView := renderGrid(s.Grid, cursor, s.HintCell, w, m.config.ScreenH)
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, gridView))
	b.WriteString("\n\n")

	status := ""
	switch s.Status {
	case run.StatusLocked:
		status = goodStyle.Render("Cleared! space: next level")
	case run.StatusTimedOut:
		status = warnStyle.Render("Time up! space: retry  esc: menu")
	}
	if m.message != "" && (m.messageUntil.IsZero() || now.Before(m.messageUntil)) {
		if status != "" {
			status += "   "
		}
		status += m.messageStyle.Render(m.message)
	}
	b.WriteString(centerText(status, w))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keyMapper.Keys())), w))

	return b.String()
}

func (m GameModel) viewFinished() string {
	w := m.config.ScreenW
	f := m.finished

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centerText(titleStyle.Render("R U N   C O M P L E T E"), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Final score: %d", f.Score), w))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Time: %ds", f.ElapsedSeconds), w))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d", m.ctrl.Session().BestScore), w))
	b.WriteString("\n")
	if f.NewBest {
		b.WriteString("\n")
		b.WriteString(centerText(goodStyle.Render("New best score!"), w))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Menu  |  Q: Quit"), w))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
