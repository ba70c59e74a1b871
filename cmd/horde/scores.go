package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/games/horde"
	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the best runs for the given mode (default: horde).

Examples:
  horde scores
  horde scores horde_classic --limit 25`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	mode := string(horde.ModeHorde)
	if len(args) == 1 {
		mode = args[0]
	}

	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'horde list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(mode)
	if err != nil {
		fail("creating game: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(mode, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'horde play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-9s  %s\n", "Rank", "Score", "Lines", "Level", "Survivors", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-9s  %s\n", "----", "-----", "-----", "-----", "---------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-9d  %s\n", i+1,
			r.Record.Score, r.Record.Lines, r.Record.Level, r.Record.Survivors,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetModeStats(mode); err == nil {
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Most lines: %d  Highest level: %d\n",
			stats.RunsCount, stats.HighScore, stats.AvgScore, stats.BestLines, stats.BestLevel)
	}
}
