package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-modes/internal/httpapi"
	"github.com/vovakirdan/snake-modes/internal/storage"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the high scores as JSON",
	Long: `Start a read-only HTTP API over the score database.

Routes:
  GET /scores?mode=<label>         All records in rank order
  GET /scores/top?mode=&n=<1-100>  Best n records
  GET /totals?mode=<label>         Aggregate statistics
  GET /modes                       Known mode labels
  GET /modes/{mode}/high           Best score of a mode
  GET /healthz                     Liveness

Examples:
  snake web
  snake web --http 127.0.0.1:9090`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	// The API has nothing to serve without the database
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	labels := make([]string, 0, len(cfg.Modes))
	for _, m := range cfg.Modes {
		labels = append(labels, m.Label)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := httpapi.NewHandler(store, labels, logger.WithPrefix("http"))
	return httpapi.Serve(ctx, flagHTTPAddr, h.Router(), logger.WithPrefix("http"))
}
