// snake is a terminal snake game with four modes and a local high-score table.
//
// Usage:
//
//	snake                    - Start the main menu
//	snake play <mode>        - Play a mode directly
//	snake modes              - List the configured modes
//	snake scores [mode]      - Show high scores
//	snake serve              - Serve the game over SSH
//	snake web                - Serve the scores as JSON over HTTP
//	snake simulate <mode>    - Let the autopilot play headless sessions
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.snake/scores.db)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Use a custom snake.yaml
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-modes/internal/config"
	"github.com/vovakirdan/snake-modes/internal/core"
	"github.com/vovakirdan/snake-modes/internal/storage"

	// Import the game to register it
	_ "github.com/vovakirdan/snake-modes/internal/games/snake"
)

var (
	// Global flags
	flagSeed         int64
	flagDBPath       string
	flagConfig       string
	flagInstructions string
	flagDifficulty   string
	flagLogLevel     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - four game modes in your terminal",
	Long: `Snake is a terminal snake game. Eat to grow, avoid the border and
your own tail. Walls adds a wall that moves on every bite, Poison and
Extreme add poisonous food on top.

Available commands:
  play      - Play a mode directly
  modes     - List the configured modes
  scores    - View high scores
  serve     - Start SSH server for remote play
  web       - Serve scores as JSON
  simulate  - Run headless autopilot sessions

Examples:
  snake
  snake play walls
  snake play poison --difficulty hard
  snake scores Walls
  snake serve --ssh :2222`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runTUI("")
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagInstructions, "instructions", "", "Path to custom instructions YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	}), nil
}

// loadGameConfig loads snake.yaml and applies the difficulty preset.
func loadGameConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	config.ApplySnakePreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return config.SnakeConfig{}, fmt.Errorf("config: after %s preset: %w", preset, err)
	}
	return cfg, nil
}

// runtimeConfig sizes the game for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flagSeed
	return rc
}

// openStoreOrWarn opens the score store. The game still works without one.
func openStoreOrWarn(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}

// checkMode reports an unknown mode together with the configured ones.
func checkMode(cfg config.SnakeConfig, mode string) error {
	if _, err := cfg.Mode(mode); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(cfg.ModeIDs(), ", "))
	}
	return nil
}
