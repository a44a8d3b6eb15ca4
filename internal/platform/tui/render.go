package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorquest/internal/core"
	"github.com/vovakirdan/colorquest/internal/grid"
	"github.com/vovakirdan/colorquest/internal/levels"
	"github.com/vovakirdan/colorquest/internal/palette"
	"github.com/vovakirdan/colorquest/internal/run"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))
	goodStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114"))
	slowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))
)

// Light and dark text used on top of cell colors.
const (
	inkDark  = "#111827"
	inkLight = "#f9fafb"
)

// inkFor picks the text color that reads best on a token.
func inkFor(t palette.Token) string {
	c, err := t.Color()
	if err != nil {
		return inkLight
	}
	l, _, _ := c.Lab()
	if l > 0.62 {
		return inkDark
	}
	return inkLight
}

// cellSize fits a side x side grid into the given terminal area.
func cellSize(side, width, height int) (w, h int) {
	if side < 1 {
		side = 1
	}
	w = core.Clamp((width-4)/side-1, 4, 14)
	maxH := core.Max(1, (height-10)/side-1)
	h = core.Clamp(w/2, 1, maxH)
	return w, h
}

// cellMark returns the text drawn inside a cell.
func cellMark(isCursor, isHint bool) string {
	switch {
	case isCursor && isHint:
		return "[*]"
	case isCursor:
		return "[ ]"
	case isHint:
		return " * "
	}
	return ""
}

// renderGrid draws the grid as colored blocks, side cells per row.
func renderGrid(g *grid.Grid, cursor, hintCell, width, height int) string {
	if g == nil || g.Len() == 0 {
		return ""
	}
	side := g.Side
	if side < 1 {
		side = 1
	}
	w, h := cellSize(side, width, height)

	rows := make([]string, 0, (g.Len()+side-1)/side)
	for start := 0; start < g.Len(); start += side {
		end := core.Min(start+side, g.Len())
		blocks := make([]string, 0, side*2)
		for i := start; i < end; i++ {
			tok := g.Cells[i].Token
			style := lipgloss.NewStyle().
				Width(w).
				Height(h).
				Align(lipgloss.Center, lipgloss.Center).
				Background(lipgloss.Color(tok.Hex)).
				Foreground(lipgloss.Color(inkFor(tok))).
				Bold(true)
			if i > start {
				blocks = append(blocks, " ")
			}
			blocks = append(blocks, style.Render(cellMark(i == cursor, i == hintCell)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderHUD draws the status line above the grid.
func renderHUD(s run.Session, now time.Time) string {
	timer := fmt.Sprintf("Time %2d", s.SecondsLeft())
	switch {
	case s.Status == run.StatusActive && now.Before(s.SlowMotionUntil):
		timer = slowStyle.Render(timer + " slow")
	case s.Status == run.StatusActive && s.SecondsLeft() <= 3:
		timer = warnStyle.Render(timer)
	default:
		timer = hudStyle.Render(timer)
	}

	parts := []string{
		titleStyle.Render(fmt.Sprintf("Level %d/%d", s.LevelIndex+1, levels.Count)),
		hudStyle.Render(fmt.Sprintf("Score %d", s.Score)),
		hudStyle.Render(fmt.Sprintf("Best %d", s.BestScore)),
		hudStyle.Render(fmt.Sprintf("Combo %d", s.Combo)),
		timer,
		hudStyle.Render(fmt.Sprintf("Hints %d", s.HintsRemaining)),
	}
	slow := "Slow ready"
	if s.SlowMotionUsed {
		slow = "Slow used"
	}
	parts = append(parts, dimStyle.Render(slow))
	return strings.Join(parts, dimStyle.Render("  |  "))
}

// renderPrompt names the color to find.
func renderPrompt(g *grid.Grid) string {
	if g == nil {
		return ""
	}
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(g.Answer.Hex)).
		Render("    ")
	return fmt.Sprintf("Find the %s square  %s", titleStyle.Render(g.Answer.Name), swatch)
}

// progressBar draws a bar of the given width for level index i.
func progressBar(i, width int) string {
	if width < 4 {
		width = 4
	}
	filled := (i + 1) * width / levels.Count
	return goodStyle.Render(strings.Repeat("=", filled)) +
		dimStyle.Render(strings.Repeat("-", width-filled))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	tw := lipgloss.Width(text)
	if tw >= width {
		return text
	}
	padding := (width - tw) / 2
	return strings.Repeat(" ", padding) + text
}
