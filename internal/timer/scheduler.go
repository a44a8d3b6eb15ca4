// Package timer schedules the game's cancellable callbacks.
//
// Every task is tagged with the level attempt it belongs to. The owner polls
// the scheduler from its single event loop and dispatches firings one at a
// time, so a handler that cancels other tasks is guaranteed those tasks never
// fire afterwards. Nothing here starts goroutines.
package timer

import (
	"time"
)

// Attempt identifies one level attempt. A new attempt gets a new identity.
type Attempt uint64

// TaskID identifies a scheduled task.
type TaskID uint64

// Kind tells the owner what a firing is for.
type Kind uint8

// Firing is a task that came due.
type Firing struct {
	ID      TaskID
	Attempt Attempt
	Kind    Kind
	At      time.Time // Scheduled instant, not the poll instant
}

type task struct {
	id      TaskID
	attempt Attempt
	kind    Kind
	due     time.Time
	period  time.Duration // Zero for one-shot tasks
}

// Scheduler holds pending tasks.
type Scheduler struct {
	tasks  map[TaskID]*task
	nextID TaskID
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[TaskID]*task)}
}

// Every schedules a periodic task whose first firing is one period after now.
// A non-positive period schedules nothing and returns 0.
func (s *Scheduler) Every(now time.Time, attempt Attempt, kind Kind, period time.Duration) TaskID {
	if period <= 0 {
		return 0
	}
	return s.add(attempt, kind, now.Add(period), period)
}

// After schedules a one-shot task.
func (s *Scheduler) After(now time.Time, attempt Attempt, kind Kind, delay time.Duration) TaskID {
	if delay < 0 {
		delay = 0
	}
	return s.add(attempt, kind, now.Add(delay), 0)
}

func (s *Scheduler) add(attempt Attempt, kind Kind, due time.Time, period time.Duration) TaskID {
	s.nextID++
	id := s.nextID
	s.tasks[id] = &task{
		id:      id,
		attempt: attempt,
		kind:    kind,
		due:     due,
		period:  period,
	}
	return id
}

// Cancel removes a task. Cancelling an unknown or finished task is a no-op.
func (s *Scheduler) Cancel(id TaskID) {
	delete(s.tasks, id)
}

// CancelAttempt removes every task tagged with attempt.
func (s *Scheduler) CancelAttempt(attempt Attempt) int {
	n := 0
	for id, t := range s.tasks {
		if t.attempt == attempt {
			delete(s.tasks, id)
			n++
		}
	}
	return n
}

// CancelKind removes every task of the given kind for attempt.
func (s *Scheduler) CancelKind(attempt Attempt, kind Kind) int {
	n := 0
	for id, t := range s.tasks {
		if t.attempt == attempt && t.kind == kind {
			delete(s.tasks, id)
			n++
		}
	}
	return n
}

// CancelAll removes every pending task.
func (s *Scheduler) CancelAll() {
	for id := range s.tasks {
		delete(s.tasks, id)
	}
}

// Pending reports whether the task is still scheduled.
func (s *Scheduler) Pending(id TaskID) bool {
	_, ok := s.tasks[id]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Next pops the earliest task due at or before now. Periodic tasks are
// re-armed one period later, so a caller that fell behind receives each
// missed firing in order. Ties are broken by scheduling order.
func (s *Scheduler) Next(now time.Time) (Firing, bool) {
	var earliest *task
	for _, t := range s.tasks {
		if t.due.After(now) {
			continue
		}
		if earliest == nil || t.due.Before(earliest.due) ||
			(t.due.Equal(earliest.due) && t.id < earliest.id) {
			earliest = t
		}
	}
	if earliest == nil {
		return Firing{}, false
	}

	f := Firing{
		ID:      earliest.id,
		Attempt: earliest.attempt,
		Kind:    earliest.kind,
		At:      earliest.due,
	}
	if earliest.period > 0 {
		earliest.due = earliest.due.Add(earliest.period)
	} else {
		delete(s.tasks, earliest.id)
	}
	return f, true
}

// NextDeadline returns the earliest pending deadline.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	var (
		best  time.Time
		found bool
	)
	for _, t := range s.tasks {
		if !found || t.due.Before(best) {
			best, found = t.due, true
		}
	}
	return best, found
}
