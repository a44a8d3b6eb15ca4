package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorquest/internal/levels"
	"github.com/vovakirdan/colorquest/internal/profile"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows the 20 levels with grid size, time budget, and whether each is unlocked.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	unlocked := 0
	if store, err := openBackend(false); err == nil {
		unlocked = profile.New(store, nil).HighestUnlocked()
		store.Close()
	}

	fmt.Println("Levels:")
	fmt.Println()

	fmt.Printf("  %-5s  %-5s  %-5s  %-5s  %-8s  %s\n", "Level", "Grid", "Time", "Trick", "Shifting", "Status")
	fmt.Printf("  %-5s  %-5s  %-5s  %-5s  %-8s  %s\n", "-----", "----", "----", "-----", "--------", "------")

	for _, lv := range levels.All() {
		status := "open"
		if lv.Index > unlocked {
			status = "locked"
		}
		shifting := "-"
		if lv.DecoysMutate {
			shifting = lv.MutationPeriod().String()
		}
		fmt.Printf("  %-5d  %-5s  %-5s  %-5s  %-8s  %s\n",
			lv.Number(),
			fmt.Sprintf("%dx%d", lv.Side, lv.Side),
			fmt.Sprintf("%ds", lv.TimeBudgetSeconds),
			yesNo(lv.IsTrick),
			shifting,
			status,
		)
	}

	fmt.Println()
	fmt.Println("Run 'colorquest' and choose 'Select Level...' to jump to an unlocked level.")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
