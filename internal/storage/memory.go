package storage

import (
	"sort"
	"sync"
	"time"
)

// Memory is an in-process store with the same API as Store.
// Used when the database cannot be opened and in tests.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	runs   []RunEntry
	nextID int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// SaveRun records a finished run, ignoring duplicate run IDs.
func (m *Memory) SaveRun(entry RunEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		if r.RunID == entry.RunID {
			return 0, nil
		}
	}
	m.nextID++
	entry.ID = m.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.runs = append(m.runs, entry)
	return entry.ID, nil
}

// TopRuns returns the best runs by score.
func (m *Memory) TopRuns(limit int) ([]RunEntry, error) {
	m.mu.Lock()
	out := append([]RunEntry(nil), m.runs...)
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ElapsedSeconds < out[j].ElapsedSeconds
	})
	return truncate(out, limit), nil
}

// RecentRuns returns the latest runs, newest first.
func (m *Memory) RecentRuns(limit int) ([]RunEntry, error) {
	m.mu.Lock()
	out := make([]RunEntry, 0, len(m.runs))
	for i := len(m.runs) - 1; i >= 0; i-- {
		out = append(out, m.runs[i])
	}
	m.mu.Unlock()
	return truncate(out, limit), nil
}

// ClearRuns deletes the run history.
func (m *Memory) ClearRuns() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = nil
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

func truncate(runs []RunEntry, limit int) []RunEntry {
	if limit <= 0 {
		limit = 10
	}
	if len(runs) > limit {
		return runs[:limit]
	}
	return runs
}
