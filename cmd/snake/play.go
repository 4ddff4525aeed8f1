package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-modes/internal/config"
	"github.com/vovakirdan/snake-modes/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the given mode right away, skipping the menu.

Controls:
  Arrows/WASD  - Change direction (hold the current one to go faster)
  Space/P      - Pause
  R            - Restart (after game over)
  Esc/B        - Back to menu (paused or after game over)
  Q            - End the game
  Ctrl+C       - Exit immediately
  Ctrl+S       - Save a screenshot to ~/.snake/screenshots

Difficulty options:
  easy   - Slower start, shorter wall, less poison
  normal - Configured values
  hard   - Faster start, longer wall, more poison
  fixed  - Speed never increases

Examples:
  snake play standard
  snake play walls --difficulty easy
  snake play extreme --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runTUI(args[0])
	},
}

// runTUI starts the terminal UI, in the menu or directly in mode.
func runTUI(mode string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if mode != "" {
		if err := checkMode(cfg, mode); err != nil {
			return err
		}
	}

	doc, err := config.LoadInstructions(flagInstructions)
	if err != nil {
		return err
	}

	// Logged before the alternate screen takes over
	store := openStoreOrWarn(logger)
	if store != nil {
		defer store.Close()
	}

	shots := ""
	if home, err := os.UserHomeDir(); err == nil {
		shots = filepath.Join(home, ".snake", "screenshots")
	}

	return tui.Run(tui.Options{
		Store:         store,
		Config:        cfg,
		Instructions:  doc,
		Runtime:       runtimeConfig(),
		StartMode:     mode,
		ScreenshotDir: shots,
	})
}
