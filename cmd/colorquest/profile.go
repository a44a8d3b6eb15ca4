package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorquest/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show best score, progress and the saved run",
	Args:  cobra.NoArgs,
	Run:   runProfile,
}

func runProfile(_ *cobra.Command, _ []string) {
	store, err := openBackend(false)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	gw := profile.New(store, nil)

	fmt.Println("ColorQuest profile")
	fmt.Println()
	fmt.Printf("  Best score:      %d\n", gw.BestScore())
	fmt.Printf("  Unlocked up to:  level %d\n", gw.HighestUnlocked()+1)

	snap, ok := gw.Snapshot()
	if !ok {
		fmt.Println("  Saved run:       none")
		return
	}

	hints := "all"
	if snap.HintsRemaining != nil {
		hints = fmt.Sprintf("%d", *snap.HintsRemaining)
	} else if snap.HintUsed {
		hints = "0"
	}
	fmt.Println("  Saved run:")
	fmt.Printf("    Level:         %d\n", snap.LevelIndex+1)
	fmt.Printf("    Score:         %d\n", snap.Score)
	fmt.Printf("    Hints left:    %s\n", hints)
	fmt.Printf("    Slow motion:   %s\n", usedOrReady(snap.SlowMotionUsed))
	if snap.StartedAtMs > 0 {
		fmt.Printf("    Started:       %s\n", snap.StartedAt().Local().Format("2006-01-02 15:04"))
	}
}

func usedOrReady(used bool) string {
	if used {
		return "used"
	}
	return "ready"
}
