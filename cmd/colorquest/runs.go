package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagRecent   bool
	flagRunLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show finished runs",
	Long: `Display finished runs, best score first.

Examples:
  colorquest runs
  colorquest runs --recent
  colorquest runs --limit 25`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Order by date instead of score")
	runsCmd.Flags().IntVar(&flagRunLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := openBackend(false)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	title := "Top runs"
	list := store.TopRuns
	if flagRecent {
		title = "Recent runs"
		list = store.RecentRuns
	}

	entries, err := list(flagRunLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No finished runs yet.")
		fmt.Println()
		fmt.Println("Clear all 20 levels to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, entry := range entries {
		elapsed := (time.Duration(entry.ElapsedSeconds) * time.Second).String()
		fmt.Printf("  %-4d  %-8d  %-8s  %s\n", i+1, entry.Score, elapsed, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
