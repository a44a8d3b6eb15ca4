// Package profile is the single gateway between the game core and durable
// storage. It owns the key names and value formats; the core only sees typed
// reads and writes.
//
// Reads never fail from the caller's point of view: a missing key yields the
// default and a corrupt value is logged and treated as missing. Write errors
// are returned so the caller can decide to log and carry on.
package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorquest/internal/levels"
	"github.com/vovakirdan/colorquest/internal/storage"
)

// Storage keys.
const (
	KeyBestScore  = "cq_best_score"
	KeyProgress   = "cq_progress_level"
	KeyCurrentRun = "cq_current_run"
)

// KV is a string key-value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// RunLog stores finished runs.
type RunLog interface {
	SaveRun(entry storage.RunEntry) (int64, error)
	TopRuns(limit int) ([]storage.RunEntry, error)
	RecentRuns(limit int) ([]storage.RunEntry, error)
}

// Backend is what both storage.Store and storage.Memory provide.
type Backend interface {
	KV
	RunLog
}

var (
	_ Backend = (*storage.Store)(nil)
	_ Backend = (*storage.Memory)(nil)
)

// Snapshot is the in-flight run saved after every scoring event.
// Field names match the format earlier versions wrote.
type Snapshot struct {
	RunID          string `json:"runId,omitempty"`
	LevelIndex     int    `json:"level"`
	Score          int    `json:"score"`
	SlowMotionUsed bool   `json:"usedSlow"`
	HintUsed       bool   `json:"usedHint"`
	HintsRemaining *int   `json:"hintsLeft,omitempty"` // Absent in old snapshots
	StartedAtMs    int64  `json:"startTs"`
}

// StartedAt returns the run start as a time.
func (s Snapshot) StartedAt() time.Time {
	return time.UnixMilli(s.StartedAtMs)
}

// Gateway reads and writes the player profile.
type Gateway struct {
	kv     KV
	runs   RunLog
	logger *log.Logger
}

// New creates a gateway over a backend. A nil logger discards warnings.
func New(b Backend, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Gateway{kv: b, runs: b, logger: logger}
}

// BestScore returns the stored best score, 0 when absent.
func (g *Gateway) BestScore() int {
	return g.readInt(KeyBestScore)
}

// HighestUnlocked returns the highest level index reached, 0 when absent.
func (g *Gateway) HighestUnlocked() int {
	return min(g.readInt(KeyProgress), levels.Count-1)
}

// RecordBest stores score if it beats the best. Reports whether it did.
func (g *Gateway) RecordBest(score int) (bool, error) {
	if score <= g.BestScore() {
		return false, nil
	}
	if err := g.kv.Set(KeyBestScore, strconv.Itoa(score)); err != nil {
		return false, fmt.Errorf("profile: save best score: %w", err)
	}
	return true, nil
}

// RecordUnlock stores level if it is beyond the highest reached level.
func (g *Gateway) RecordUnlock(level int) (bool, error) {
	level = min(level, levels.Count-1)
	if level <= g.HighestUnlocked() {
		return false, nil
	}
	if err := g.kv.Set(KeyProgress, strconv.Itoa(level)); err != nil {
		return false, fmt.Errorf("profile: save progress: %w", err)
	}
	return true, nil
}

// IsUnlocked reports whether a run may start at level.
func (g *Gateway) IsUnlocked(level int) bool {
	return level >= 0 && level <= g.HighestUnlocked()
}

// Snapshot returns the saved in-flight run, if there is a usable one.
func (g *Gateway) Snapshot() (Snapshot, bool) {
	raw, ok, err := g.kv.Get(KeyCurrentRun)
	if err != nil {
		g.logger.Warn("cannot read saved run", "error", err)
		return Snapshot{}, false
	}
	if !ok || raw == "" {
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		g.logger.Warn("saved run is corrupt, ignoring", "error", err)
		return Snapshot{}, false
	}
	if snap.LevelIndex < 0 || snap.Score < 0 {
		g.logger.Warn("saved run is out of range, ignoring",
			"level", snap.LevelIndex,
			"score", snap.Score,
		)
		return Snapshot{}, false
	}
	snap.LevelIndex = min(snap.LevelIndex, levels.Count-1)
	return snap, true
}

// SaveSnapshot stores the in-flight run.
func (g *Gateway) SaveSnapshot(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("profile: encode run: %w", err)
	}
	if err := g.kv.Set(KeyCurrentRun, string(data)); err != nil {
		return fmt.Errorf("profile: save run: %w", err)
	}
	return nil
}

// ClearSnapshot forgets the in-flight run.
func (g *Gateway) ClearSnapshot() error {
	if err := g.kv.Delete(KeyCurrentRun); err != nil {
		return fmt.Errorf("profile: clear run: %w", err)
	}
	return nil
}

// RecordRun appends a finished run to the history.
func (g *Gateway) RecordRun(entry storage.RunEntry) error {
	if _, err := g.runs.SaveRun(entry); err != nil {
		return fmt.Errorf("profile: record run: %w", err)
	}
	return nil
}

// TopRuns returns the best finished runs.
func (g *Gateway) TopRuns(limit int) ([]storage.RunEntry, error) {
	return g.runs.TopRuns(limit)
}

// RecentRuns returns the latest finished runs.
func (g *Gateway) RecentRuns(limit int) ([]storage.RunEntry, error) {
	return g.runs.RecentRuns(limit)
}

// ResetProgress forgets the best score and unlocked levels.
// The in-flight run and the run history are kept.
func (g *Gateway) ResetProgress() error {
	if err := g.kv.Delete(KeyBestScore); err != nil {
		return fmt.Errorf("profile: reset best score: %w", err)
	}
	if err := g.kv.Delete(KeyProgress); err != nil {
		return fmt.Errorf("profile: reset progress: %w", err)
	}
	return nil
}

// readInt parses an integer key, treating absent or corrupt values as 0.
func (g *Gateway) readInt(key string) int {
	raw, ok, err := g.kv.Get(key)
	if err != nil {
		g.logger.Warn("cannot read profile value", "key", key, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		g.logger.Warn("profile value is corrupt, using default", "key", key, "value", raw)
		return 0
	}
	return n
}
