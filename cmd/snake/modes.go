package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-modes/internal/config"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the configured modes",
	Long:  `Shows every mode from the active configuration with its hazards.`,
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

func runModes(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	maxIDLen := 2 // "ID" header
	for _, m := range cfg.Modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Println("Available modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Label", "Hazards")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-------")

	for _, m := range cfg.Modes {
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, m.ID, m.Label, describeHazards(m.Hazards))
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a mode.")
	return nil
}

func describeHazards(hazards []config.HazardConfig) string {
	if len(hazards) == 0 {
		return "none"
	}
	parts := make([]string, len(hazards))
	for i, h := range hazards {
		switch h.Kind {
		case config.HazardWall:
			parts[i] = fmt.Sprintf("wall of %d", h.Length)
		case config.HazardPoison:
			parts[i] = fmt.Sprintf("%d poison", h.Count)
		default:
			parts[i] = h.Kind
		}
	}
	return strings.Join(parts, ", ")
}
