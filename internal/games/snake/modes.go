package snake

import (
	"fmt"

	"github.com/vovakirdan/snake-modes/internal/config"
)

// Variant identifies a configured game mode.
type Variant string

// Built-in variants shipped in the default configuration.
const (
	VariantStandard Variant = "standard"
	VariantWalls    Variant = "walls"
	VariantPoison   Variant = "poison"
	VariantExtreme  Variant = "extreme"
)

// Reason explains why a session ended.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonBoundary Reason = "boundary"
	ReasonSelf     Reason = "self"
	ReasonWall     Reason = "wall"
	ReasonPoison   Reason = "poison"
	ReasonNoSpace  Reason = "no_space"
)

// HazardKind names a hazard layer.
type HazardKind string

const (
	HazardWall   HazardKind = config.HazardWall
	HazardPoison HazardKind = config.HazardPoison
)

// Reason returns the game-over reason for hitting this kind of hazard.
func (k HazardKind) Reason() Reason {
	switch k {
	case HazardWall:
		return ReasonWall
	case HazardPoison:
		return ReasonPoison
	default:
		return Reason(k)
	}
}

// HazardLayer is one obstacle a mode stacks on top of the standard rules.
// Layers are regenerated whenever the item respawns.
type HazardLayer interface {
	Kind() HazardKind
	Place(p *Placer) ([]Cell, error)
}

// WallLayer is a straight wall in a random orientation.
type WallLayer struct {
	Length int
}

// Kind implements HazardLayer.
func (WallLayer) Kind() HazardKind { return HazardWall }

// Place implements HazardLayer.
func (w WallLayer) Place(p *Placer) ([]Cell, error) {
	extent := Size{W: w.Length}
	if p.Rand().Intn(2) == 1 {
		extent = Size{H: w.Length}
	}
	return p.Place(extent)
}

// PoisonLayer is a fixed number of independently scattered poison cells.
type PoisonLayer struct {
	Count int
}

// Kind implements HazardLayer.
func (PoisonLayer) Kind() HazardKind { return HazardPoison }

// Place implements HazardLayer.
func (l PoisonLayer) Place(p *Placer) ([]Cell, error) {
	cells := make([]Cell, 0, l.Count)
	for range l.Count {
		c, err := p.Place(Size{})
		if err != nil {
			return nil, err
		}
		cells = append(cells, c...)
	}
	return cells, nil
}

// Mode is a variant with its label and ordered hazard layers.
// Standard has no layers; every other mode is Standard plus its layers.
type Mode struct {
	Variant Variant
	Label   string
	Layers  []HazardLayer
}

// NewMode builds a mode from its configuration.
func NewMode(mc config.ModeConfig) (Mode, error) {
	m := Mode{Variant: Variant(mc.ID), Label: mc.Label}
	if m.Label == "" {
		m.Label = mc.ID
	}
	for i, hz := range mc.Hazards {
		switch hz.Kind {
		case config.HazardWall:
			m.Layers = append(m.Layers, WallLayer{Length: hz.Length})
		case config.HazardPoison:
			m.Layers = append(m.Layers, PoisonLayer{Count: hz.Count})
		default:
			return Mode{}, fmt.Errorf("snake: mode %q hazard %d: unknown kind %q", mc.ID, i, hz.Kind)
		}
	}
	return m, nil
}

// HazardSet is the placed cells of one hazard layer.
type HazardSet struct {
	Kind  HazardKind
	Cells []Cell
}

// Check validates the snake after a move. Bounds and self are checked
// first, then each hazard layer in order. It returns ReasonNone when the
// snake is alive.
func (m Mode) Check(grid Grid, body Body, hazards []HazardSet) Reason {
	head := body.Head()
	if !grid.Contains(head) {
		return ReasonBoundary
	}
	if NewOccupancy(body.Tail()).IsOccupied(head) {
		return ReasonSelf
	}
	for _, hz := range hazards {
		if NewOccupancy(hz.Cells).IsOccupied(head) {
			return hz.Kind.Reason()
		}
	}
	return ReasonNone
}
