// Package tui provides the Bubble Tea front-end for ColorQuest.
// It maps keys to run intents, polls the run controller's timers on a tick
// and renders the grid as colored blocks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to poll the run controller's timers.
// Gen ties the tick to the game view that scheduled it; ticks from an earlier
// view are dropped so re-entering a game never doubles the tick rate.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 20
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
