// blockbreak is a tile-matching puzzle game for the terminal.
//
// Usage:
//
//	blockbreak list               - List game modes
//	blockbreak play               - Play the standard campaign
//	blockbreak practice <level>   - Play a single level, unrecorded
//	blockbreak puzzle             - Play the puzzle board
//	blockbreak menu               - Start the interactive menu
//	blockbreak scores [mode]      - Show the high-score table
//	blockbreak levels             - List the level catalog
//	blockbreak replay <file>      - Re-simulate a recorded run
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blockbreak/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockbreak/internal/config"
	"github.com/vovakirdan/blockbreak/internal/core"
	_ "github.com/vovakirdan/blockbreak/internal/games/blockbreak"
	"github.com/vovakirdan/blockbreak/internal/registry"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

// logFile is the open --log-file, closed after the command runs.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockbreak",
	Short: "Block Break - a tile-matching puzzle for your terminal",
	Long: `Block Break is a tile-matching puzzle. Break groups of same-colored
blocks before your energy runs out and clear every block to finish a level.

Available commands:
  list      - Show the game modes
  play      - Play the standard campaign
  practice  - Play one level without recording a score
  puzzle    - Play the puzzle board with a limited number of clears
  menu      - Interactive menu
  scores    - View high scores
  levels    - List the level catalog
  replay    - Re-simulate a recorded run

Examples:
  blockbreak play
  blockbreak practice 3
  blockbreak play --difficulty hard --record run.yaml
  blockbreak replay run.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.blockbreak/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.blockbreak/blockbreak.log)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd, playCmd, practiceCmd, puzzleCmd, menuCmd,
		scoresCmd, levelsCmd, replayCmd)
}

// setupLogging points the default logger at the log file. The terminal
// belongs to the game, so nothing is logged to stdout or stderr unless the
// file cannot be opened.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	path := flagLogFile
	if path == "" {
		if dir := config.UserDir(); dir != "" {
			path = filepath.Join(dir, "blockbreak.log")
		}
	}
	path = expandHome(path)

	out := os.Stderr
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				logFile = f
				out = f
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockbreak",
		Level:           level,
	})
	log.SetDefault(logger)
	logger.Debug("command started", "cmd", cmd.Name())
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// gameOptions returns the run options shared by every command.
func gameOptions() registry.Options {
	return registry.Options{
		StartLevel: 1,
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Logger:     log.Default(),
	}
}
