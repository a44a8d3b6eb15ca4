// Package grid builds the per-level cell arrangement: one answer cell hidden
// among randomly colored decoys, and the decoy mutation used on later levels.
package grid

import (
	"math/rand"

	"github.com/vovakirdan/colorquest/internal/palette"
)

// Cell is a single grid slot.
type Cell struct {
	Token    palette.Token
	IsAnswer bool
}

// Grid is the arrangement for one level attempt.
type Grid struct {
	Cells       []Cell
	AnswerIndex int
	Answer      palette.Token
	Side        int             // Columns when rendered
	Pool        []palette.Token // Tokens decoys are drawn from
	Fallback    bool            // Built by the fixed fallback path
}

// Recolor describes a decoy that changed color during a mutation tick.
type Recolor struct {
	Index int
	Token palette.Token
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// IsAnswer reports whether index is the answer cell.
// Out-of-range indexes are never the answer.
func (g *Grid) IsAnswer(index int) bool {
	return index >= 0 && index < len(g.Cells) && g.Cells[index].IsAnswer
}

// AnswerCount counts the cells flagged as the answer.
func (g *Grid) AnswerCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.IsAnswer {
			n++
		}
	}
	return n
}

// Mutate recolors each decoy independently with the given probability,
// drawing a fresh token from the grid's pool. The answer cell never changes.
func (g *Grid) Mutate(rng *rand.Rand, chance float64) []Recolor {
	if len(g.Pool) == 0 {
		return nil
	}
	var changed []Recolor
	for i := range g.Cells {
		if g.Cells[i].IsAnswer {
			continue
		}
		if rng.Float64() >= chance {
			continue
		}
		tok := g.Pool[rng.Intn(len(g.Pool))]
		g.Cells[i].Token = tok
		changed = append(changed, Recolor{Index: i, Token: tok})
	}
	return changed
}
