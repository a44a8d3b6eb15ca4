package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorquest/internal/levels"
)

// levelColumns is how many level tiles fit on one row.
const levelColumns = 5

var (
	tileStyle = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	activeTileStyle = tileStyle.
			BorderForeground(lipgloss.Color("229")).
			Foreground(lipgloss.Color("229")).
			Bold(true)
	lockedTileStyle = tileStyle.
			Foreground(lipgloss.Color("238"))
)

// LevelSelectModel lets the player start a run at any unlocked level.
type LevelSelectModel struct {
	cursor    int
	unlocked  int // Highest unlocked 0-based index
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    int // -1 while choosing
	back      bool
	quitting  bool
	notice    string
}

// NewLevelSelectModel creates a level picker with levels 0..unlocked open.
func NewLevelSelectModel(unlocked, width, height int) LevelSelectModel {
	return LevelSelectModel{
		cursor:    unlocked,
		unlocked:  unlocked,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		chosen:    -1,
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionRight:
		if m.cursor < levels.Count-1 {
			m.cursor++
		}
	case MenuActionUp:
		if m.cursor-levelColumns >= 0 {
			m.cursor -= levelColumns
		}
	case MenuActionDown:
		if m.cursor+levelColumns < levels.Count {
			m.cursor += levelColumns
		}
	case MenuActionSelect:
		if m.cursor > m.unlocked {
			m.notice = fmt.Sprintf("Level %d is locked", m.cursor+1)
			return m, nil
		}
		m.chosen = m.cursor
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the level grid and details of the level under the cursor.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	all := levels.All()
	var rows []string
	for start := 0; start < levels.Count; start += levelColumns {
		tiles := make([]string, 0, levelColumns)
		for i := start; i < start+levelColumns && i < levels.Count; i++ {
			label := fmt.Sprintf("%d", all[i].Number())
			style := tileStyle
			switch {
			case i == m.cursor:
				style = activeTileStyle
			case i > m.unlocked:
				style = lockedTileStyle
				label = "x"
			}
			tiles = append(tiles, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, rows...)))
	b.WriteString("\n\n")

	spec := all[m.cursor]
	details := fmt.Sprintf("%d cells  |  %ds", spec.CellCount, spec.TimeBudgetSeconds)
	if spec.IsTrick {
		details += "  |  trick colors"
	}
	if spec.DecoysMutate {
		details += "  |  shifting decoys"
	}
	b.WriteString(centerText(hudStyle.Render(details), m.width))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(warnStyle.Render(m.notice), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Arrows: Move  |  Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Chosen returns the picked level, or -1 while still choosing.
func (m LevelSelectModel) Chosen() int {
	return m.chosen
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}
