package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/registry"
	"github.com/vovakirdan/blockbreak/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded run",
	Long: `Load a replay written by 'play --record' and run it again without
a terminal UI. The same seed and inputs give the same result, which is
compared with the outcome stored in the file.

Examples:
  blockbreak play --record run.yaml
  blockbreak replay run.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	opts := rec.Options()
	opts.Logger = log.Default()
	game, err := registry.Create(rec.GameID, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	state, err := replay.Play(ctx, game, rec)
	if err != nil {
		return err
	}

	outcome := "game over"
	if state.Won {
		outcome = "won"
	}
	fmt.Printf("Replay %s (%s, seed %d)\n", rec.ID, game.Title(), rec.Seed)
	fmt.Printf("  ticks:  %d\n", rec.Ticks)
	fmt.Printf("  result: %s on level %d, score %d\n", outcome, state.Level, state.Score)

	if state.Score != rec.Score || state.Level != rec.Level || state.Won != rec.Won {
		log.Warn("replay diverged from recording", "id", rec.ID,
			"score", state.Score, "recorded_score", rec.Score,
			"level", state.Level, "recorded_level", rec.Level)
		return fmt.Errorf("replay diverged: recorded score %d on level %d", rec.Score, rec.Level)
	}
	fmt.Println("  matches the recorded outcome")
	return nil
}
