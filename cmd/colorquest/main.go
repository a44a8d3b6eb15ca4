// colorquest is a timed color-matching game for the terminal.
//
// Usage:
//
//	colorquest                  - Open the menu and play
//	colorquest play             - Same as above
//	colorquest levels           - List the 20 levels and which are unlocked
//	colorquest profile          - Show best score, progress and the saved run
//	colorquest runs             - Show finished runs
//	colorquest reset            - Forget best score and progress
//	colorquest serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Timer poll rate (default: 20)
//	--seed <value>       - RNG seed for reproducible grids
//	--db <path>          - Database path (default: ~/.colorquest/colorquest.db)
//	--config <path>      - Custom config YAML
//	--difficulty <name>  - easy, normal or hard
//	--log <path>         - Write logs to a file
//	--mute               - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorquest/internal/config"
	"github.com/vovakirdan/colorquest/internal/profile"
	"github.com/vovakirdan/colorquest/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagMute       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colorquest",
	Short: "ColorQuest - find the named color before time runs out",
	Long: `ColorQuest is a 20-level color-matching game for the terminal.
Each level names a color; pick the cell showing it before the countdown ends.

Available commands:
  play     - Open the menu and play (default)
  levels   - Show the level table
  profile  - Show saved progress
  runs     - Show finished runs
  reset    - Forget best score and progress
  serve    - Start SSH server for remote play

Examples:
  colorquest
  colorquest play --difficulty easy
  colorquest runs --recent
  colorquest serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 20, "Timer poll rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.colorquest/colorquest.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

// backend is the store the commands read and write progress through.
type backend interface {
	profile.Backend
	ClearRuns() error
	Close() error
}

// openBackend opens the SQLite database. When it cannot be opened and
// fallback is set, an in-memory store is used and progress is lost on exit.
func openBackend(fallback bool) (backend, error) {
	store, err := storage.Open(flagDBPath)
	if err == nil {
		return store, nil
	}
	if !fallback {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
	return storage.NewMemory(), nil
}

// loadGameConfig loads the YAML config and applies the difficulty preset.
func loadGameConfig() (config.Config, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if flagMute {
		cfg.Audio.Enabled = false
	}
	return cfg, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
