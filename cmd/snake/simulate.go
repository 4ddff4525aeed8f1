package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-modes/internal/core"
	"github.com/vovakirdan/snake-modes/internal/games/snake"
	"github.com/vovakirdan/snake-modes/internal/loop"
	"github.com/vovakirdan/snake-modes/internal/storage"
)

var (
	flagSimGames    int
	flagSimMaxTicks uint64
	flagSimRealtime bool
	flagSimShow     bool
	flagSimRecord   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <mode>",
	Short: "Let the autopilot play headless sessions",
	Long: `Run sessions of a mode without a terminal UI. The autopilot steers the
snake greedily toward the food. Useful to check a configuration or a seed.

Examples:
  snake simulate walls --games 20
  snake simulate poison --seed 7 --show --realtime
  snake simulate standard --record BOT`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of sessions to play")
	simulateCmd.Flags().Uint64Var(&flagSimMaxTicks, "max-ticks", 100000, "Abandon a session after this many ticks")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at game speed")
	simulateCmd.Flags().BoolVar(&flagSimShow, "show", false, "Print the final board of every session")
	simulateCmd.Flags().StringVar(&flagSimRecord, "record", "", "Record results under this player name")
}

func runSimulate(_ *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if err := checkMode(cfg, args[0]); err != nil {
		return err
	}

	var store *storage.Store
	if flagSimRecord != "" {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The board is sized like a standard terminal, independent of this one
	rc := core.DefaultConfig()
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sleep := func(time.Duration) {}
	if flagSimRealtime {
		sleep = time.Sleep
	}

	best := 0
	for i := range flagSimGames {
		game, err := snake.New(snake.Variant(args[0]), cfg)
		if err != nil {
			return err
		}
		rc.Seed = seed + int64(i)
		game.Reset(rc)

		var last *core.Screen
		driver := loop.NewDriver(game, loop.NewAutopilot(game), loop.Config{
			ScreenW:  rc.ScreenW,
			ScreenH:  rc.ScreenH,
			Sleep:    sleep,
			MaxTicks: flagSimMaxTicks,
			Presenter: loop.PresenterFunc(func(screen *core.Screen, _ core.GameState) {
				last = screen
			}),
		})

		res, err := driver.Run(ctx)
		if errors.Is(err, loop.ErrQuit) {
			logger.Warn("session abandoned", "game", i+1, "seed", rc.Seed, "error", err)
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		if err != nil {
			return err
		}

		best = max(best, res.Score)
		logger.Info("session over",
			"game", i+1,
			"seed", rc.Seed,
			"mode", res.Mode,
			"score", res.Score,
			"reason", res.Reason,
			"ticks", driver.Ticks(),
		)

		if flagSimShow && last != nil {
			fmt.Fprintln(os.Stdout, last.String())
		}

		if store != nil {
			if _, err := store.RecordSession(flagSimRecord, res); err != nil {
				return err
			}
		}
	}

	logger.Info("done", "games", flagSimGames, "best", best)
	return nil
}
