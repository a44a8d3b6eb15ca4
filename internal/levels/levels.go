// Package levels defines the fixed 20-level campaign and each level's difficulty.
package levels

import (
	"math"
	"time"
)

// Count is the number of levels in a run.
const Count = 20

// Spec defines a level's difficulty parameters.
type Spec struct {
	Index             int  // 0-based
	Side              int  // Grid side length
	CellCount         int  // Side * Side
	TimeBudgetSeconds int  // Countdown start value
	IsTrick           bool // Draws from base + trick colors
	DecoysMutate      bool // Decoy cells change color on a timer
}

// Number returns the 1-based level number used for display and tuning.
func (s Spec) Number() int {
	return s.Index + 1
}

// MutationPeriod returns how often decoys are recolored on this level.
// Zero for levels without mutating decoys.
func (s Spec) MutationPeriod() time.Duration {
	if !s.DecoysMutate {
		return 0
	}
	n := s.Number()
	floor := 600
	if n > 10 {
		floor = 400
	}
	ms := 1600 - n*70
	if ms < floor {
		ms = floor
	}
	return time.Duration(ms) * time.Millisecond
}

// table is computed once at init and never changes.
var table = build()

func build() [Count]Spec {
	var out [Count]Spec
	for i := range out {
		n := i + 1
		side := sideFor(i)
		out[i] = Spec{
			Index:             i,
			Side:              side,
			CellCount:         side * side,
			TimeBudgetSeconds: max(5, 16-int(math.Floor(float64(n)*0.6))),
			IsTrick:           n%4 == 0 || n >= 12,
			DecoysMutate:      n >= 10,
		}
	}
	return out
}

// sideFor maps a 0-based index to its grid side:
// 2 for 0-3, 3 for 4-7, 4 for 8-12, 5 for 13-19.
func sideFor(index int) int {
	switch {
	case index <= 3:
		return 2
	case index <= 7:
		return 3
	case index <= 12:
		return 4
	default:
		return 5
	}
}

// All returns the full level table.
func All() [Count]Spec {
	return table
}

// At returns the level at the given 0-based index.
func At(index int) (Spec, bool) {
	if index < 0 || index >= Count {
		return Spec{}, false
	}
	return table[index], true
}

// IsLast reports whether index is the final level.
func IsLast(index int) bool {
	return index == Count-1
}
