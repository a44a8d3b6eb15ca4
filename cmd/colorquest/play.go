package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/colorquest/internal/audio"
	"github.com/vovakirdan/colorquest/internal/core"
	"github.com/vovakirdan/colorquest/internal/platform/tui"
	"github.com/vovakirdan/colorquest/internal/profile"
	"github.com/vovakirdan/colorquest/internal/run"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the menu and play",
	Long: `Start ColorQuest with the main menu.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Pick the cell under the cursor
  I            - Hint (highlights the answer briefly)
  M            - Slow motion (countdown runs at half speed)
  [ / ]        - Previous / next level
  R            - Retry after a timeout
  Esc          - Back to menu (the run is kept)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 5 hints, 8s slow motion
  normal - 3 hints, 5s slow motion
  hard   - 1 hint, 3s slow motion

Examples:
  colorquest play
  colorquest play --difficulty hard
  colorquest play --seed 42 --log ./colorquest.log
  colorquest play --config ./my-colorquest.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	// Get terminal size before the alt screen takes over
	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	rt.Seed = flagSeed

	logger, logFile, err := newFileLogger(flagLogPath)
	if err != nil {
		fail("cannot open log file: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	store, _ := openBackend(true)
	defer store.Close()

	var sink run.Sink
	if gameCfg.Audio.Enabled {
		player := audio.NewPlayer(gameCfg.Audio, logger)
		if initErr := player.Init(); initErr != nil {
			logger.Warn("sound disabled", "error", initErr)
		} else {
			defer player.Close()
			sink = player
		}
	}

	runErr := tui.Run(tui.Deps{
		Profile: profile.New(store, logger),
		Config:  gameCfg,
		Runtime: rt,
		Logger:  logger,
		Sink:    sink,
	})
	if runErr != nil {
		logger.Error("game stopped", "error", runErr)
		store.Close()
		fail("running game: %v", runErr)
	}
}

// newFileLogger writes to path, or discards when path is empty. The
// terminal belongs to the game while it runs.
func newFileLogger(path string) (*log.Logger, *os.File, error) {
	if path == "" {
		return log.New(io.Discard), nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "colorquest",
	})
	return logger, f, nil
}
