package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/platform/tui"
	"github.com/vovakirdan/blockbreak/internal/registry"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

var (
	flagRecord string
	flagLevel  int
)

const controlsHelp = `Controls:
  Arrows/hjkl/wasd - Move the cursor
  Space/Enter/X    - Break the group under the cursor
  P                - Pause
  Esc/B            - Give up the level
  R                - Play again (after the run ends)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the standard campaign",
	Long: `Play every level of the standard campaign in order. The score
carries from level to level; the run ends when energy runs out or the last
level is cleared.

` + controlsHelp + `

Difficulty options:
  easy   - Energy drains at the base rate, speeding up with score
  normal - Starts 30% faster
  hard   - Starts 70% faster
  fixed  - No progression, stays at the config's initial level

Examples:
  blockbreak play
  blockbreak play --level 3
  blockbreak play --difficulty hard
  blockbreak play --record run.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		opts := gameOptions()
		opts.StartLevel = flagLevel
		return runGame(blockbreak.IDStandard, opts)
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice <level>",
	Short: "Play a single level without recording a score",
	Long: `Play one level of the standard campaign. Practice runs end when
the level ends and never enter the high-score table.

Examples:
  blockbreak practice 1
  blockbreak practice 6 --difficulty easy`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid level %q", args[0])
		}
		opts := gameOptions()
		opts.StartLevel = n
		opts.Practice = true
		return runGame(blockbreak.IDStandard, opts)
	},
}

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Play the puzzle board",
	Long: `Play the puzzle board: a fixed striped layout and a limited number
of clears. Medals are awarded for high scores.

` + controlsHelp,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runGame(blockbreak.IDPuzzle, gameOptions())
	},
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start the campaign at")
	for _, c := range []*cobra.Command{playCmd, practiceCmd, puzzleCmd} {
		c.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the run to this file")
	}
}

// runGame plays one game in the local terminal. A game that cannot start
// returns its error so the process exits non-zero.
func runGame(id string, opts registry.Options) error {
	game, err := registry.Create(id, opts)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database, scores will not be kept", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	err = tui.Run(game, store, runtimeConfig(), tui.RunOptions{
		Game:       opts,
		RecordPath: flagRecord,
		Logger:     log.Default(),
	})
	if err != nil {
		log.Error("game stopped", "game", id, "err", err)
	}
	return err
}
