package levels

import (
	"testing"
	"time"
)

func TestSideScaling(t *testing.T) {
	expected := []int{
		2, 2, 2, 2,
		3, 3, 3, 3,
		4, 4, 4, 4, 4,
		5, 5, 5, 5, 5, 5, 5,
	}

	for i, spec := range All() {
		if spec.Side != expected[i] {
			t.Errorf("level %d side = %d, expected %d", i, spec.Side, expected[i])
		}
		if spec.CellCount != spec.Side*spec.Side {
			t.Errorf("level %d cellCount %d is not side^2", i, spec.CellCount)
		}
		if spec.CellCount < 4 {
			t.Errorf("level %d cellCount %d < 4", i, spec.CellCount)
		}
	}
}

func TestTimeBudget(t *testing.T) {
	tests := []struct {
		index    int
		expected int
	}{
		{0, 16},  // 16 - floor(0.6)
		{1, 15},  // 16 - floor(1.2)
		{4, 13},  // 16 - floor(3.0)
		{9, 10},  // 16 - floor(6.0)
		{16, 6},  // 16 - floor(10.2)
		{17, 6},  // 16 - floor(10.8)
		{18, 5},  // 16 - floor(11.4)
		{19, 5},  // max(5, 16 - 12)
	}

	for _, tc := range tests {
		spec, _ := At(tc.index)
		if spec.TimeBudgetSeconds != tc.expected {
			t.Errorf("level %d time = %d, expected %d", tc.index, spec.TimeBudgetSeconds, tc.expected)
		}
	}
}

func TestTrickAndMutation(t *testing.T) {
	for _, spec := range All() {
		n := spec.Number()
		wantTrick := n%4 == 0 || n >= 12
		if spec.IsTrick != wantTrick {
			t.Errorf("level %d trick = %v, expected %v", n, spec.IsTrick, wantTrick)
		}
		if spec.DecoysMutate != (n >= 10) {
			t.Errorf("level %d mutate = %v", n, spec.DecoysMutate)
		}
	}

	// Spot checks
	if s, _ := At(3); !s.IsTrick {
		t.Error("level 4 should be a trick level")
	}
	if s, _ := At(4); s.IsTrick {
		t.Error("level 5 should not be a trick level")
	}
}

func TestMutationPeriod(t *testing.T) {
	tests := []struct {
		index    int
		expected time.Duration
	}{
		{0, 0},
		{8, 0},
		{9, 900 * time.Millisecond},  // n=10: max(600, 900)
		{10, 830 * time.Millisecond}, // n=11: max(400, 830)
		{19, 400 * time.Millisecond}, // n=20: max(400, 200)
	}

	for _, tc := range tests {
		spec, _ := At(tc.index)
		if got := spec.MutationPeriod(); got != tc.expected {
			t.Errorf("level %d period = %v, expected %v", tc.index, got, tc.expected)
		}
	}
}

func TestAtBounds(t *testing.T) {
	if _, ok := At(-1); ok {
		t.Error("At(-1) should fail")
	}
	if _, ok := At(Count); ok {
		t.Error("At(Count) should fail")
	}
	if !IsLast(19) || IsLast(18) {
		t.Error("IsLast wrong")
	}
}
