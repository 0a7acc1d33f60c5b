package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak"
)

var flagPuzzleLevels bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Print the levels the campaign plays, in order, with their board
size and generator. Use the index with 'blockbreak practice <level>'.

Examples:
  blockbreak levels
  blockbreak levels --puzzle
  blockbreak levels --config ./my-blockbreak.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagPuzzleLevels, "puzzle", false, "List the puzzle catalog")
}

func runLevels(_ *cobra.Command, _ []string) error {
	mode := blockbreak.ModeStandard
	if flagPuzzleLevels {
		mode = blockbreak.ModePuzzle
	}
	cat, err := blockbreak.LoadCatalog(mode, flagConfig)
	if err != nil {
		return err
	}

	fmt.Printf("Catalog %s (%d levels)\n\n", cat.Name, cat.Len())
	fmt.Printf("  %-3s  %-20s  %-6s  %-9s  %s\n", "#", "Name", "Grid", "Generator", "Extras")
	fmt.Printf("  %-3s  %-20s  %-6s  %-9s  %s\n", "-", "----", "----", "---------", "------")
	for i, s := range cat.Levels {
		extras := ""
		for _, sp := range s.Specials {
			extras += fmt.Sprintf("%dx %s ", sp.Count, sp.Kind)
		}
		if s.Clears > 0 {
			extras += fmt.Sprintf("%d clears ", s.Clears)
		}
		fmt.Printf("  %-3d  %-20s  %-6s  %-9s  %s\n", i+1, s.Name,
			fmt.Sprintf("%dx%d", s.Grid.W, s.Grid.H), s.Generator.Type, extras)
	}
	return nil
}
