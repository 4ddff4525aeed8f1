package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/instructions.yaml
var defaultInstructionsYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	wall := HazardConfig{Kind: HazardWall, Length: 16}
	poison := HazardConfig{Kind: HazardPoison, Count: 3}

	return SnakeConfig{
		Snake: BodyConfig{
			StartX: 10,
			StartY: 5,
			Length: 4,
		},
		Speed: SpeedConfig{
			Base:        15,
			Step:        1,
			StepEvery:   3,
			FastForward: 2,
		},
		Scoring: ScoringConfig{
			PerItem: 10,
		},
		Placement: PlacementConfig{
			MaxAttempts: 1000,
		},
		Session: SessionConfig{
			GameOverDelay:    2 * time.Second,
			PlayerNameLength: 5,
		},
		Modes: []ModeConfig{
			{ID: "standard", Label: "Standard"},
			{ID: "walls", Label: "Walls", Hazards: []HazardConfig{wall}},
			{ID: "poison", Label: "Poison", Hazards: []HazardConfig{wall, poison}},
			{ID: "extreme", Label: "Extreme", Hazards: []HazardConfig{wall, poison}},
		},
	}
}
