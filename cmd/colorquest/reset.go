package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorquest/internal/profile"
)

var (
	flagResetRuns bool
	flagResetSave bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget best score and unlocked levels",
	Long: `Reset the best score and lock every level except the first.
The saved run and the run history are kept unless asked for.

Examples:
  colorquest reset
  colorquest reset --save --runs`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetSave, "save", false, "Also discard the saved run")
	resetCmd.Flags().BoolVar(&flagResetRuns, "runs", false, "Also clear the run history")
}

func runReset(_ *cobra.Command, _ []string) {
	store, err := openBackend(false)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	gw := profile.New(store, nil)
	if err := gw.ResetProgress(); err != nil {
		store.Close()
		fail("%v", err)
	}
	fmt.Println("Best score and progress reset.")

	if flagResetSave {
		if err := gw.ClearSnapshot(); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Println("Saved run discarded.")
	}

	if flagResetRuns {
		if err := store.ClearRuns(); err != nil {
			store.Close()
			fail("clearing runs: %v", err)
		}
		fmt.Println("Run history cleared.")
	}
}
