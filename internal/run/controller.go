// Package run implements the run and level state machine: it starts levels,
// drives the countdown and decoy mutation timers, scores picks, applies
// power-ups and saves progress.
//
// The controller is not safe for concurrent use. The owner feeds it intents
// through Dispatch and the passage of time through Advance, both from a
// single event loop.
package run

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/colorquest/internal/config"
	"github.com/vovakirdan/colorquest/internal/core"
	"github.com/vovakirdan/colorquest/internal/grid"
	"github.com/vovakirdan/colorquest/internal/levels"
	"github.com/vovakirdan/colorquest/internal/palette"
	"github.com/vovakirdan/colorquest/internal/powerup"
	"github.com/vovakirdan/colorquest/internal/profile"
	"github.com/vovakirdan/colorquest/internal/scoring"
	"github.com/vovakirdan/colorquest/internal/storage"
	"github.com/vovakirdan/colorquest/internal/timer"
)

// ErrInvalidAction is wrapped by every error Dispatch returns for a rejected
// intent. Rejected intents never change state.
var ErrInvalidAction = errors.New("run: invalid action")

// Timer kinds.
const (
	kindCountdown timer.Kind = iota + 1
	kindMutation
	kindAdvance
	kindHintExpiry
)

// Options configures a Controller. Profile is required; everything else has
// a default. A Config that fails validation is replaced by config.Default.
type Options struct {
	Config  config.Config
	Profile *profile.Gateway
	Clock   core.Clock
	Rand    *rand.Rand
	Palette palette.Source
	Sink    Sink
	Logger  *log.Logger
	NewID   func() string // Run ID source, uuid.NewString by default
}

// Controller owns one player's run.
type Controller struct {
	cfg     config.Config
	profile *profile.Gateway
	clock   core.Clock
	rng     *rand.Rand
	gen     *grid.Generator
	sched   *timer.Scheduler
	score   *scoring.Engine
	powers  *powerup.Manager
	sink    Sink
	logger  *log.Logger
	newID   func() string

	status     Status
	runID      string
	levelIndex int
	level      levels.Spec
	grid       *grid.Grid
	timeLeft   float64
	hintCell   int
	slowActive bool
	startedAt  time.Time
	attempt    timer.Attempt
	best       int
	newBest    bool // Best score raised during this run
}

// New creates an idle controller.
func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if err := opts.Config.Validate(); err != nil {
		opts.Logger.Warn("invalid config, using defaults", "error", err)
		opts.Config = config.Default()
	}
	if opts.Palette == nil {
		opts.Palette = palette.Default{}
	} else if err := palette.Validate(opts.Palette); err != nil {
		opts.Logger.Warn("invalid palette, using built-in colors", "error", err)
		opts.Palette = palette.Default{}
	}
	if opts.Sink == nil {
		opts.Sink = discard{}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &Controller{
		cfg:      opts.Config,
		profile:  opts.Profile,
		clock:    opts.Clock,
		rng:      opts.Rand,
		gen:      grid.NewGenerator(opts.Rand, opts.Palette, opts.Logger),
		sched:    timer.NewScheduler(),
		score:    scoring.NewEngine(opts.Config.Scoring),
		powers:   powerup.NewManager(opts.Config.PowerUps),
		sink:     opts.Sink,
		logger:   opts.Logger,
		newID:    opts.NewID,
		hintCell: -1,
		best:     opts.Profile.BestScore(),
	}
}

// Session returns a view of the current state.
func (c *Controller) Session() Session {
	return Session{
		Status:          c.status,
		RunID:           c.runID,
		LevelIndex:      c.levelIndex,
		Level:           c.level,
		Grid:            c.grid,
		Score:           c.score.Score(),
		Combo:           c.score.Combo(),
		BestScore:       c.best,
		TimeLeft:        c.timeLeft,
		HintsRemaining:  c.powers.HintsRemaining(),
		HintCell:        c.hintCell,
		SlowMotionUsed:  c.powers.SlowMotionUsed(),
		SlowMotionUntil: c.powers.SlowMotionUntil(),
		StartedAt:       c.startedAt,
		Attempt:         c.attempt,
	}
}

// Status returns the run state.
func (c *Controller) Status() Status {
	return c.status
}

// PendingTimers returns the number of scheduled timer tasks.
func (c *Controller) PendingTimers() int {
	return c.sched.Len()
}

// NextDeadline returns when the next timer task is due.
func (c *Controller) NextDeadline() (time.Time, bool) {
	return c.sched.NextDeadline()
}

// Dispatch applies an intent. A rejected intent emits an Advisory and
// returns an error wrapping ErrInvalidAction.
func (c *Controller) Dispatch(in Intent) error {
	now := c.clock.Now()

	switch in := in.(type) {
	case NewRun:
		c.startRun(now, 0)
	case Restart:
		c.logger.Info("run restarted", "run", c.runID, "level", c.levelIndex+1)
		c.startRun(now, 0)
	case Resume:
		c.resume(now)
	case StartAt:
		if !c.profile.IsUnlocked(in.Level) {
			return c.reject(fmt.Sprintf("level %d is locked", in.Level+1))
		}
		c.startRun(now, in.Level)
	case Pick:
		return c.pick(now, in.Cell)
	case UseHint:
		return c.useHint(now)
	case UseSlowMotion:
		return c.useSlowMotion(now)
	case Continue:
		if c.status != StatusLocked {
			return c.reject("nothing to continue")
		}
		c.stopAttempt()
		c.advance(now)
	case Retry:
		if c.status != StatusTimedOut {
			return c.reject("retry is only available after a timeout")
		}
		c.startLevel(now, c.levelIndex)
	case Exit:
		if c.status == StatusIdle {
			return c.reject("no run in progress")
		}
		c.sched.CancelAll()
		c.hintCell = -1
		c.status = StatusIdle
	case Navigate:
		return c.navigate(now, in.Delta)
	default:
		return c.reject(fmt.Sprintf("unknown intent %T", in))
	}
	return nil
}

// Advance runs every timer task due at or before now, one at a time.
func (c *Controller) Advance(now time.Time) {
	for {
		f, ok := c.sched.Next(now)
		if !ok {
			break
		}
		c.fire(f)
	}
	if c.slowActive && !c.powers.SlowMotionActive(now) {
		c.slowActive = false
		c.emit(SlowMotionEnded{})
	}
}

// fire handles one timer firing. Firings from an earlier attempt are
// dropped.
func (c *Controller) fire(f timer.Firing) {
	if f.Attempt != c.attempt {
		c.logger.Debug("dropping stale timer", "kind", f.Kind, "attempt", f.Attempt, "current", c.attempt)
		return
	}

	switch f.Kind {
	case kindCountdown:
		c.tick(f.At)
	case kindMutation:
		if c.status != StatusActive || c.grid == nil {
			return
		}
		for _, rc := range c.grid.Mutate(c.rng, c.cfg.Timing.MutationChance) {
			c.emit(CellRecolored{Index: rc.Index, Token: rc.Token})
		}
	case kindAdvance:
		if c.status == StatusLocked {
			c.advance(f.At)
		}
	case kindHintExpiry:
		if c.hintCell >= 0 {
			cell := c.hintCell
			c.hintCell = -1
			c.emit(HintExpired{Cell: cell})
		}
	}
}

func (c *Controller) tick(at time.Time) {
	if c.status != StatusActive {
		return
	}
	slowed := c.powers.SlowMotionActive(at)
	c.timeLeft -= c.powers.Drain(at)
	c.emit(TimeTick{Remaining: ceilSeconds(c.timeLeft), Slowed: slowed})

	if c.timeLeft <= 0 {
		c.timeLeft = 0
		c.stopAttempt()
		c.status = StatusTimedOut
		c.logger.Info("level timed out", "run", c.runID, "level", c.levelIndex+1)
		c.emit(TimedOut{Level: c.levelIndex})
	}
}

func (c *Controller) startRun(now time.Time, level int) {
	c.stopAttempt()
	c.score.Reset()
	c.powers.Reset()
	c.slowActive = false
	c.newBest = false
	c.best = c.profile.BestScore()
	c.runID = c.newID()
	c.startedAt = now

	c.logger.Info("run started", "run", c.runID, "level", level+1)
	c.startLevel(now, level)
	c.saveSnapshot()
}

func (c *Controller) resume(now time.Time) {
	snap, ok := c.profile.Snapshot()
	if !ok {
		c.logger.Info("no saved run, starting fresh")
		c.startRun(now, 0)
		return
	}

	c.stopAttempt()
	c.score.Restore(snap.Score)
	hints := c.powers.Budget()
	switch {
	case snap.HintsRemaining != nil:
		hints = *snap.HintsRemaining
	case snap.HintUsed:
		hints = 0
	}
	c.powers.Restore(hints, snap.SlowMotionUsed)
	c.slowActive = false
	c.newBest = false
	c.best = c.profile.BestScore()

	c.runID = snap.RunID
	if c.runID == "" {
		c.runID = c.newID()
	}
	c.startedAt = now
	if snap.StartedAtMs > 0 {
		c.startedAt = snap.StartedAt()
	}

	c.logger.Info("run resumed", "run", c.runID, "level", snap.LevelIndex+1, "score", snap.Score)
	c.startLevel(now, snap.LevelIndex)
}

// startLevel ends the current attempt and begins a new one at index.
func (c *Controller) startLevel(now time.Time, index int) {
	c.stopAttempt()

	spec, ok := levels.At(index)
	if !ok {
		spec, _ = levels.At(0)
	}
	c.attempt++
	c.levelIndex = spec.Index
	c.level = spec
	c.grid = c.gen.Generate(spec)
	c.timeLeft = float64(spec.TimeBudgetSeconds)
	c.status = StatusActive

	c.sched.Every(now, c.attempt, kindCountdown, c.cfg.Timing.Countdown())
	if spec.DecoysMutate {
		c.sched.Every(now, c.attempt, kindMutation, spec.MutationPeriod())
	}

	c.emit(LevelStarted{
		Level:    spec,
		Grid:     c.grid,
		Attempt:  c.attempt,
		TimeLeft: c.timeLeft,
	})
}

// stopAttempt cancels every timer of the current attempt.
func (c *Controller) stopAttempt() {
	c.sched.CancelAttempt(c.attempt)
	c.hintCell = -1
}

func (c *Controller) pick(now time.Time, cell int) error {
	if c.status != StatusActive {
		return c.reject("no level in play")
	}
	if cell < 0 || cell >= c.grid.Len() {
		return c.reject(fmt.Sprintf("cell %d is out of range", cell))
	}

	correct := c.grid.IsAnswer(cell)
	if correct {
		c.stopAttempt()
	}
	res := c.score.OnPick(correct)

	c.emit(PickResult{
		Cell:         cell,
		Correct:      res.Correct,
		ScoreDelta:   res.ScoreDelta,
		ComboAfter:   res.ComboAfter,
		BonusAwarded: res.BonusAwarded,
		ScoreAfter:   res.ScoreAfter,
	})
	if res.BonusAwarded {
		c.emit(ComboAchieved{Combo: res.ComboAfter, Bonus: c.cfg.Scoring.ComboBonus})
	}

	if !correct {
		c.saveSnapshot()
		return nil
	}

	c.status = StatusLocked
	c.emit(LevelCleared{Level: c.levelIndex, Score: res.ScoreAfter})
	c.recordBest()
	if _, err := c.profile.RecordUnlock(c.levelIndex + 1); err != nil {
		c.logger.Warn("cannot save progress", "error", err)
	}
	c.saveSnapshot()
	c.sched.After(now, c.attempt, kindAdvance, c.cfg.Timing.AdvanceDelay())
	return nil
}

// advance moves past a cleared level, finishing the run after the last one.
func (c *Controller) advance(now time.Time) {
	if !levels.IsLast(c.levelIndex) {
		c.startLevel(now, c.levelIndex+1)
		return
	}

	c.stopAttempt()
	c.status = StatusFinished
	elapsed := int(math.Round(now.Sub(c.startedAt).Seconds()))
	if elapsed < 0 {
		elapsed = 0
	}
	c.recordBest()

	if err := c.profile.ClearSnapshot(); err != nil {
		c.logger.Warn("cannot clear saved run", "error", err)
	}
	err := c.profile.RecordRun(storage.RunEntry{
		RunID:          c.runID,
		Score:          c.score.Score(),
		ElapsedSeconds: elapsed,
		CreatedAt:      now,
	})
	if err != nil {
		c.logger.Warn("cannot record run", "run", c.runID, "error", err)
	}

	c.logger.Info("run finished", "run", c.runID, "score", c.score.Score(), "elapsed", elapsed)
	c.emit(RunFinished{
		RunID:          c.runID,
		Score:          c.score.Score(),
		ElapsedSeconds: elapsed,
		NewBest:        c.newBest,
	})
}

func (c *Controller) useHint(now time.Time) error {
	if c.status != StatusActive {
		return c.reject("hints need a level in play")
	}
	d, err := c.powers.UseHint()
	if err != nil {
		return c.reject(err.Error())
	}

	c.sched.CancelKind(c.attempt, kindHintExpiry)
	c.hintCell = c.grid.AnswerIndex
	c.sched.After(now, c.attempt, kindHintExpiry, d)
	c.emit(HintRevealed{Cell: c.hintCell, Duration: d, Remaining: c.powers.HintsRemaining()})
	c.saveSnapshot()
	return nil
}

func (c *Controller) useSlowMotion(now time.Time) error {
	if c.status != StatusActive {
		return c.reject("slow motion needs a level in play")
	}
	d, err := c.powers.ActivateSlowMotion(now)
	if err != nil {
		return c.reject(err.Error())
	}

	c.slowActive = true
	c.emit(SlowMotionActivated{Duration: d, Until: c.powers.SlowMotionUntil()})
	c.saveSnapshot()
	return nil
}

func (c *Controller) navigate(now time.Time, delta int) error {
	if c.status != StatusActive {
		return c.reject("no level in play")
	}
	target := c.levelIndex + delta
	if _, ok := levels.At(target); !ok {
		if target < 0 {
			return c.reject("already at level 1")
		}
		return c.reject(fmt.Sprintf("already at level %d", levels.Count))
	}
	c.startLevel(now, target)
	return nil
}

// recordBest stores the score if it beats the best. Reports whether it did.
func (c *Controller) recordBest() bool {
	score := c.score.Score()
	raised, err := c.profile.RecordBest(score)
	if err != nil {
		c.logger.Warn("cannot save best score", "error", err)
		raised = score > c.best
	}
	if !raised {
		return false
	}
	c.best = score
	c.newBest = true
	return true
}

// saveSnapshot writes the in-flight run. After a cleared level the snapshot
// points at the next level so a resume does not replay it.
func (c *Controller) saveSnapshot() {
	level := c.levelIndex
	if c.status == StatusLocked && !levels.IsLast(level) {
		level++
	}
	hints := c.powers.HintsRemaining()

	err := c.profile.SaveSnapshot(profile.Snapshot{
		RunID:          c.runID,
		LevelIndex:     level,
		Score:          c.score.Score(),
		SlowMotionUsed: c.powers.SlowMotionUsed(),
		HintUsed:       c.powers.HintUsed(),
		HintsRemaining: &hints,
		StartedAtMs:    c.startedAt.UnixMilli(),
	})
	if err != nil {
		c.logger.Warn("cannot save run", "run", c.runID, "error", err)
	}
}

func (c *Controller) reject(reason string) error {
	c.emit(Advisory{Reason: reason})
	return fmt.Errorf("%w: %s", ErrInvalidAction, reason)
}

func (c *Controller) emit(ev Event) {
	c.sink.Emit(ev)
}

func ceilSeconds(t float64) int {
	if t <= 0 {
		return 0
	}
	return int(math.Ceil(t))
}
