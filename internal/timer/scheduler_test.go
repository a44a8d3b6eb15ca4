package timer

import (
	"testing"
	"time"
)

const (
	kindTick Kind = iota + 1
	kindOnce
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func drain(s *Scheduler, now time.Time) []Firing {
	var out []Firing
	for {
		f, ok := s.Next(now)
		if !ok {
			return out
		}
		out = append(out, f)
	}
}

func TestEveryFiresOncePerPeriod(t *testing.T) {
	s := NewScheduler()
	s.Every(epoch, 1, kindTick, time.Second)

	if got := drain(s, epoch.Add(999*time.Millisecond)); len(got) != 0 {
		t.Fatalf("fired %d times before first period", len(got))
	}

	got := drain(s, epoch.Add(time.Second))
	if len(got) != 1 {
		t.Fatalf("expected 1 firing at 1s, got %d", len(got))
	}
	if !got[0].At.Equal(epoch.Add(time.Second)) {
		t.Errorf("firing At = %v", got[0].At)
	}

	// Catch up after a stall
	got = drain(s, epoch.Add(4500*time.Millisecond))
	if len(got) != 3 {
		t.Fatalf("expected 3 catch-up firings, got %d", len(got))
	}
	for i, f := range got {
		want := epoch.Add(time.Duration(i+2) * time.Second)
		if !f.At.Equal(want) {
			t.Errorf("firing %d At = %v, expected %v", i, f.At, want)
		}
	}
}

func TestAfterFiresOnce(t *testing.T) {
	s := NewScheduler()
	id := s.After(epoch, 1, kindOnce, 650*time.Millisecond)

	if !s.Pending(id) {
		t.Fatal("task should be pending")
	}
	if got := drain(s, epoch.Add(10*time.Second)); len(got) != 1 {
		t.Fatalf("one-shot fired %d times", len(got))
	}
	if s.Pending(id) {
		t.Error("one-shot should be removed after firing")
	}
}

func TestOrderingByDeadlineThenID(t *testing.T) {
	s := NewScheduler()
	a := s.After(epoch, 1, kindOnce, 500*time.Millisecond)
	b := s.After(epoch, 1, kindOnce, 200*time.Millisecond)
	c := s.After(epoch, 1, kindOnce, 500*time.Millisecond)

	got := drain(s, epoch.Add(time.Second))
	if len(got) != 3 {
		t.Fatalf("expected 3 firings, got %d", len(got))
	}
	if got[0].ID != b || got[1].ID != a || got[2].ID != c {
		t.Errorf("order = %v %v %v, expected %v %v %v", got[0].ID, got[1].ID, got[2].ID, b, a, c)
	}
}

func TestCancelAttempt(t *testing.T) {
	s := NewScheduler()
	s.Every(epoch, 1, kindTick, time.Second)
	s.Every(epoch, 1, kindTick, 700*time.Millisecond)
	keep := s.Every(epoch, 2, kindTick, time.Second)

	if n := s.CancelAttempt(1); n != 2 {
		t.Errorf("CancelAttempt removed %d tasks, expected 2", n)
	}
	if !s.Pending(keep) {
		t.Error("other attempt's task was cancelled")
	}
	for _, f := range drain(s, epoch.Add(3*time.Second)) {
		if f.Attempt == 1 {
			t.Fatal("cancelled attempt fired")
		}
	}
}

func TestCancelDuringDispatch(t *testing.T) {
	s := NewScheduler()
	first := s.Every(epoch, 1, kindTick, time.Second)
	second := s.Every(epoch, 1, kindOnce, time.Second)

	f, ok := s.Next(epoch.Add(time.Second))
	if !ok || f.ID != first {
		t.Fatalf("expected first task, got %v %v", f, ok)
	}
	// Handler for the first firing cancels the second task
	s.Cancel(second)

	if f, ok := s.Next(epoch.Add(time.Second)); ok {
		t.Errorf("cancelled task fired: %v", f)
	}
}

func TestCancelKindAndAll(t *testing.T) {
	s := NewScheduler()
	tick := s.Every(epoch, 1, kindTick, time.Second)
	once := s.After(epoch, 1, kindOnce, time.Second)

	if n := s.CancelKind(1, kindOnce); n != 1 {
		t.Errorf("CancelKind removed %d", n)
	}
	if s.Pending(once) || !s.Pending(tick) {
		t.Error("CancelKind removed the wrong task")
	}

	s.CancelAll()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after CancelAll", s.Len())
	}
}

func TestEveryRejectsZeroPeriod(t *testing.T) {
	s := NewScheduler()
	if id := s.Every(epoch, 1, kindTick, 0); id != 0 {
		t.Errorf("zero period returned id %d", id)
	}
	if s.Len() != 0 {
		t.Error("zero period task was scheduled")
	}
}

func TestNextDeadline(t *testing.T) {
	s := NewScheduler()
	if _, ok := s.NextDeadline(); ok {
		t.Error("empty scheduler has a deadline")
	}
	s.After(epoch, 1, kindOnce, 3*time.Second)
	s.After(epoch, 1, kindOnce, time.Second)

	d, ok := s.NextDeadline()
	if !ok || !d.Equal(epoch.Add(time.Second)) {
		t.Errorf("NextDeadline() = %v, %v", d, ok)
	}
}
