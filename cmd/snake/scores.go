package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-modes/internal/config"
	"github.com/vovakirdan/snake-modes/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresTotals bool
	flagScoresDelete bool
	flagScoresYes    bool
	flagScoresJSON   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the best scores of one mode, or of all modes when no mode is
given. The mode may be given by id (walls) or label (Walls).

Examples:
  snake scores
  snake scores walls --limit 20
  snake scores --totals
  snake scores --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresTotals, "totals", false, "Show aggregate statistics")
	scoresCmd.Flags().BoolVar(&flagScoresDelete, "delete", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVar(&flagScoresYes, "yes", false, "Do not ask before deleting")
	scoresCmd.Flags().BoolVar(&flagScoresJSON, "json", false, "Print JSON")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = modeLabel(args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagScoresDelete:
		return deleteScores(store)
	case flagScoresTotals:
		return printTotals(store, mode)
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return err
	}

	if flagScoresJSON {
		if scores == nil {
			scores = []storage.ScoreRecord{}
		}
		return printJSON(scores)
	}

	title := mode
	if title == "" {
		title = "All modes"
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snake' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-9s  %-7s  %-8s  %s\n", "Rank", "Player", "Mode", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-9s  %-7s  %-8s  %s\n", "----", "------", "----", "-----", "----", "----")

	for i, s := range scores {
		fmt.Printf("  %-4d  %-6s  %-9s  %-7d  %-8s  %s\n",
			i+1, s.Player, s.Mode, s.Score, fmt.Sprintf("%.1fs", s.Time), s.Date().Format("2006-01-02 15:04"))
	}

	if mode != "" {
		if best, err := store.HighScore(mode); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", best)
		}
	}
	return nil
}

// modeLabel maps a configured mode id to its label; anything else is
// taken as a label.
func modeLabel(arg string) string {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return arg
	}
	if mc, err := cfg.Mode(strings.ToLower(arg)); err == nil {
		return mc.Label
	}
	return arg
}

func printTotals(store *storage.Store, mode string) error {
	t, err := store.Totals(mode)
	if err != nil {
		return err
	}
	if flagScoresJSON {
		return printJSON(t)
	}

	fmt.Printf("Games:        %d\n", t.Games)
	fmt.Printf("Players:      %d\n", t.Players)
	fmt.Printf("Modes:        %d\n", t.Modes)
	fmt.Printf("Total score:  %d\n", t.TotalScore)
	fmt.Printf("Total time:   %.1fs\n", t.TotalTime)
	fmt.Printf("Days played:  %d\n", t.DaysPlayed)
	if t.Games > 0 {
		fmt.Printf("First played: %s\n", t.FirstPlayed.Format("2006-01-02 15:04"))
		fmt.Printf("Last played:  %s\n", t.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func deleteScores(store *storage.Store) error {
	if !flagScoresYes {
		fmt.Print("Delete ALL recorded scores? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Nothing deleted.")
			return nil
		}
	}
	if err := store.DeleteAll(); err != nil {
		return err
	}
	fmt.Println("All scores deleted.")
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
