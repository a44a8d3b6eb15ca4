package grid

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorquest/internal/levels"
	"github.com/vovakirdan/colorquest/internal/palette"
)

// FallbackCells is the size of the fixed grid used when a level spec cannot
// be turned into a valid grid.
const FallbackCells = 6

// Generator produces grids for level specs.
type Generator struct {
	rng     *rand.Rand
	palette palette.Source
	logger  *log.Logger
}

// NewGenerator creates a generator. A nil logger discards generation warnings.
func NewGenerator(rng *rand.Rand, src palette.Source, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{rng: rng, palette: src, logger: logger}
}

// Generate builds a fresh grid for the level.
// Exactly one cell is the answer. When the spec is unusable the fixed
// fallback grid is returned instead of an empty one.
func (g *Generator) Generate(spec levels.Spec) *Grid {
	pool := palette.Pool(g.palette, spec.IsTrick)
	if spec.CellCount < 1 || len(pool) == 0 {
		g.logger.Warn("grid generation failed, using fallback",
			"level", spec.Number(),
			"cells", spec.CellCount,
			"pool", len(pool),
		)
		return g.Fallback()
	}

	answer := pool[g.rng.Intn(len(pool))]
	answerIdx := g.rng.Intn(spec.CellCount)

	cells := make([]Cell, spec.CellCount)
	for i := range cells {
		if i == answerIdx {
			cells[i] = Cell{Token: answer, IsAnswer: true}
			continue
		}
		cells[i] = Cell{Token: pool[g.rng.Intn(len(pool))]}
	}

	side := spec.Side
	if side < 1 {
		side = int(math.Round(math.Sqrt(float64(spec.CellCount))))
	}

	return &Grid{
		Cells:       cells,
		AnswerIndex: answerIdx,
		Answer:      answer,
		Side:        max(side, 2),
		Pool:        pool,
	}
}

// Fallback returns the fixed 6-cell grid: the first base colors in order
// with the answer at a random one of them.
func (g *Generator) Fallback() *Grid {
	base := g.palette.Base()
	if len(base) == 0 {
		base = palette.Default{}.Base()
	}

	cells := make([]Cell, FallbackCells)
	for i := range cells {
		cells[i] = Cell{Token: base[i%len(base)]}
	}
	answerIdx := g.rng.Intn(FallbackCells)
	cells[answerIdx].IsAnswer = true

	return &Grid{
		Cells:       cells,
		AnswerIndex: answerIdx,
		Answer:      cells[answerIdx].Token,
		Side:        3,
		Pool:        base,
		Fallback:    true,
	}
}
