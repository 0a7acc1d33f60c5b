package main

import (
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/platform/tui"
	"github.com/vovakirdan/blockbreak/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Block Break with the main menu: Play, Practice, Puzzle,
High Scores and Quit. On the Practice entry, left and right pick the level.
After a run ends, Esc returns to the menu.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Pick the practice level
  Enter/Space     - Select
  Q               - Quit

Examples:
  blockbreak menu
  blockbreak menu --fps 30
  blockbreak menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database, scores will not be kept", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	name := "local"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return tui.RunSession(store, runtimeConfig(), gameOptions(), name)
}
