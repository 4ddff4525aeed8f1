// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownVariant is returned when a mode id is not present in the config.
var ErrUnknownVariant = errors.New("config: unknown game mode")

// Hazard kinds understood by the game.
const (
	HazardWall   = "wall"
	HazardPoison = "poison"
)

// SnakeConfig contains all configuration for the snake game.
// It is loaded once at startup and treated as immutable afterwards.
type SnakeConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Snake     BodyConfig      `yaml:"snake"`
	Speed     SpeedConfig     `yaml:"speed"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Placement PlacementConfig `yaml:"placement"`
	Session   SessionConfig   `yaml:"session"`
	Modes     []ModeConfig    `yaml:"modes"`
}

// GridConfig defines the playfield size in cells.
// Zero width or height means "fit the terminal".
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BodyConfig defines the starting snake.
type BodyConfig struct {
	StartX int `yaml:"start_x"`
	StartY int `yaml:"start_y"`
	Length int `yaml:"length"`
}

// SpeedConfig defines the speed schedule in ticks per second.
type SpeedConfig struct {
	Base        int `yaml:"base"`
	Step        int `yaml:"step"`         // Added every StepEvery items
	StepEvery   int `yaml:"step_every"`   // Items per speed step
	FastForward int `yaml:"fast_forward"` // Multiplier while holding the current direction
}

// ScoringConfig defines score increments.
type ScoringConfig struct {
	PerItem int `yaml:"per_item"`
}

// PlacementConfig bounds random placement.
type PlacementConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// SessionConfig defines per-session presentation rules.
type SessionConfig struct {
	GameOverDelay    time.Duration `yaml:"game_over_delay"`
	PlayerNameLength int           `yaml:"player_name_length"`
}

// ModeConfig describes one selectable game mode.
type ModeConfig struct {
	ID      string         `yaml:"id"`
	Label   string         `yaml:"label"`
	Hazards []HazardConfig `yaml:"hazards"`
}

// HazardConfig describes one hazard layer of a mode.
type HazardConfig struct {
	Kind   string `yaml:"kind"`
	Length int    `yaml:"length"` // wall only
	Count  int    `yaml:"count"`  // poison only
}

// Mode returns the mode with the given id.
func (c SnakeConfig) Mode(id string) (ModeConfig, error) {
	for _, m := range c.Modes {
		if m.ID == id {
			return m, nil
		}
	}
	return ModeConfig{}, fmt.Errorf("%w %q", ErrUnknownVariant, id)
}

// ModeIDs returns mode ids in menu order.
func (c SnakeConfig) ModeIDs() []string {
	ids := make([]string, len(c.Modes))
	for i, m := range c.Modes {
		ids[i] = m.ID
	}
	return ids
}

// MinGrid returns the smallest playfield that fits the starting snake and
// every configured wall in both orientations.
func (c SnakeConfig) MinGrid() (w, h int) {
	longest := 0
	for _, m := range c.Modes {
		for _, hz := range m.Hazards {
			if hz.Kind == HazardWall && hz.Length > longest {
				longest = hz.Length
			}
		}
	}
	w = max(c.Snake.StartX+2, longest+2, 4)
	h = max(c.Snake.StartY+2, longest+2, 4)
	return w, h
}

// Validate reports the first problem found in the configuration.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Speed.Base <= 0:
		return fmt.Errorf("config: speed.base must be positive, got %d", c.Speed.Base)
	case c.Speed.Step < 0:
		return fmt.Errorf("config: speed.step must not be negative, got %d", c.Speed.Step)
	case c.Speed.StepEvery <= 0:
		return fmt.Errorf("config: speed.step_every must be positive, got %d", c.Speed.StepEvery)
	case c.Speed.FastForward < 1:
		return fmt.Errorf("config: speed.fast_forward must be at least 1, got %d", c.Speed.FastForward)
	case c.Scoring.PerItem < 0:
		return fmt.Errorf("config: scoring.per_item must not be negative, got %d", c.Scoring.PerItem)
	case c.Placement.MaxAttempts <= 0:
		return fmt.Errorf("config: placement.max_attempts must be positive, got %d", c.Placement.MaxAttempts)
	case c.Snake.Length < 1:
		return fmt.Errorf("config: snake.length must be at least 1, got %d", c.Snake.Length)
	case c.Snake.StartX < c.Snake.Length-1 || c.Snake.StartY < 0:
		return fmt.Errorf("config: snake start (%d,%d) leaves no room for length %d",
			c.Snake.StartX, c.Snake.StartY, c.Snake.Length)
	case c.Session.GameOverDelay < 0:
		return fmt.Errorf("config: session.game_over_delay must not be negative")
	case c.Session.PlayerNameLength < 1:
		return fmt.Errorf("config: session.player_name_length must be at least 1, got %d", c.Session.PlayerNameLength)
	case len(c.Modes) == 0:
		return errors.New("config: no modes defined")
	}

	seen := make(map[string]bool, len(c.Modes))
	for _, m := range c.Modes {
		if m.ID == "" {
			return errors.New("config: mode without id")
		}
		if seen[m.ID] {
			return fmt.Errorf("config: duplicate mode %q", m.ID)
		}
		seen[m.ID] = true
		for i, hz := range m.Hazards {
			switch hz.Kind {
			case HazardWall:
				if hz.Length < 1 {
					return fmt.Errorf("config: mode %q hazard %d: wall length must be positive", m.ID, i)
				}
			case HazardPoison:
				if hz.Count < 1 {
					return fmt.Errorf("config: mode %q hazard %d: poison count must be positive", m.ID, i)
				}
			default:
				return fmt.Errorf("config: mode %q hazard %d: unknown kind %q", m.ID, i, hz.Kind)
			}
		}
	}

	if c.Grid.Width > 0 && c.Grid.Height > 0 {
		w, h := c.MinGrid()
		if c.Grid.Width < w || c.Grid.Height < h {
			return fmt.Errorf("config: grid %dx%d is smaller than the required %dx%d",
				c.Grid.Width, c.Grid.Height, w, h)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
