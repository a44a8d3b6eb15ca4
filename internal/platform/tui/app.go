package tui

import (
	"io"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorquest/internal/config"
	"github.com/vovakirdan/colorquest/internal/core"
	"github.com/vovakirdan/colorquest/internal/profile"
	"github.com/vovakirdan/colorquest/internal/run"
)

// Deps are the collaborators an app session needs.
type Deps struct {
	Profile *profile.Gateway
	Config  config.Config
	Runtime core.RuntimeConfig
	Clock   core.Clock  // System clock when nil
	Logger  *log.Logger // Discards when nil
	Sink    run.Sink    // Extra event receiver, such as the audio player
}

type screen int

const (
	screenMenu screen = iota
	screenLevels
	screenRuns
	screenGame
)

// AppModel manages the full flow: menu -> level select / runs -> game -> menu.
// It is the top-level model for both local play and SSH sessions.
type AppModel struct {
	deps     Deps
	ctrl     *run.Controller
	events   *run.Recorder
	screen   screen
	menu     MenuModel
	levels   LevelSelectModel
	board    ScoreboardModel
	game     GameModel
	gen      int
	quitting bool
}

// NewApp creates an app session with its own run controller.
func NewApp(deps Deps) AppModel {
	if deps.Clock == nil {
		deps.Clock = core.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Runtime.Seed == 0 {
		deps.Runtime.Seed = time.Now().UnixNano()
	}

	events := &run.Recorder{}
	ctrl := run.New(run.Options{
		Config:  deps.Config,
		Profile: deps.Profile,
		Clock:   deps.Clock,
		Rand:    rand.New(rand.NewSource(deps.Runtime.Seed)),
		Sink:    run.Sinks{events, deps.Sink},
		Logger:  deps.Logger,
	})

	return AppModel{
		deps:   deps,
		ctrl:   ctrl,
		events: events,
		screen: screenMenu,
		menu:   NewMenuModel(deps.Profile, deps.Runtime),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.deps.Runtime.ScreenW = wsm.Width
		m.deps.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenRuns:
		return m.updateRuns(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.menu.Update(msg)
	if mm, ok := updated.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoiceContinue:
		return m.startGame(run.Resume{})
	case ChoiceNewRun:
		return m.startGame(run.NewRun{})
	case ChoiceLevels:
		rt := m.deps.Runtime
		m.levels = NewLevelSelectModel(m.deps.Profile.HighestUnlocked(), rt.ScreenW, rt.ScreenH)
		m.screen = screenLevels
		return m, nil
	case ChoiceRuns:
		rt := m.deps.Runtime
		m.board = NewScoreboardModel(m.deps.Profile, rt.ScreenW, rt.ScreenH)
		m.screen = screenRuns
		return m, nil
	}

	return m, cmd
}

func (m AppModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.levels.Update(msg)
	if lm, ok := updated.(LevelSelectModel); ok {
		m.levels = lm
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.WantsBack():
		return m.openMenu()
	case m.levels.Chosen() >= 0:
		return m.startGame(run.StartAt{Level: m.levels.Chosen()})
	}
	return m, cmd
}

func (m AppModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.board.Update(msg)
	if bm, ok := updated.(ScoreboardModel); ok {
		m.board = bm
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		return m.openMenu()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.game.Update(msg)
	if gm, ok := updated.(GameModel); ok {
		m.game = gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.openMenu()
	}
	return m, cmd
}

// startGame applies the intent that begins play and switches to the game view.
func (m AppModel) startGame(in run.Intent) (tea.Model, tea.Cmd) {
	if err := m.ctrl.Dispatch(in); err != nil {
		m.deps.Logger.Warn("cannot start run", "error", err)
		return m.openMenu()
	}
	m.gen++
	m.game = NewGameModel(m.ctrl, m.events, m.deps.Clock, m.deps.Runtime, m.gen)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m AppModel) openMenu() (tea.Model, tea.Cmd) {
	m.events.Drain()
	m.menu = NewMenuModel(m.deps.Profile, m.deps.Runtime)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenRuns:
		return m.board.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// Run starts the Bubble Tea program for local play.
func Run(deps Deps) error {
	p := tea.NewProgram(
		NewApp(deps),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
