package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/platform/tui"
	"github.com/vovakirdan/blockbreak/internal/registry"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

var (
	flagClear       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the high-score table",
	Long: `Display the ten-entry high-score table of a game mode
(blockbreak or blockbreak_puzzle; default blockbreak).

Examples:
  blockbreak scores
  blockbreak scores blockbreak_puzzle
  blockbreak scores -i
  blockbreak scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the mode")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the tables in the terminal UI")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := blockbreak.IDStandard
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'blockbreak list' to see the modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		return tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	}
	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}

	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}
	fmt.Printf("High Scores - %s\n\n", title)
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "Rank", "Name", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "----", "----", "-----", "-----", "----")
	for _, r := range store.HighScoreTable(gameID) {
		if r.Empty() {
			fmt.Printf("  %-4d  %-12s  %-8s  %-5s  %s\n", r.Rank, r.Name, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %s\n", r.Rank, r.Name, r.Score, r.Level, r.Date.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Furthest level: %d\n", stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestLevel)
	}
	return nil
}
