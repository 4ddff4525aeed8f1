package snake

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoSpace is returned when no free footprint could be found on the grid.
var ErrNoSpace = errors.New("snake: no free space on grid")

// Cell is a position on the playfield, measured in cells.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Size is a placement extent. A zero dimension counts as one cell, so
// Size{} is a single cell and Size{W: 16} a horizontal 16-cell segment.
type Size struct {
	W, H int
}

// Footprint returns every cell covered by extent anchored at anchor.
func Footprint(anchor Cell, extent Size) []Cell {
	w, h := max(extent.W, 1), max(extent.H, 1)
	cells := make([]Cell, 0, w*h)
	for y := anchor.Y; y < anchor.Y+h; y++ {
		for x := anchor.X; x < anchor.X+w; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

// Grid is the playfield. Valid cells are [0, Width) x [0, Height).
type Grid struct {
	Width, Height int
}

// Contains reports whether c lies on the grid.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// RandomUnoccupied draws an anchor uniformly from [1, W-extent.W) x
// [1, H-extent.H) until its whole footprint is free in occ. It gives up
// after maxAttempts draws with an error wrapping ErrNoSpace.
func (g Grid) RandomUnoccupied(rng *rand.Rand, occ Occupancy, extent Size, maxAttempts int) (Cell, error) {
	spanX := g.Width - extent.W - 1
	spanY := g.Height - extent.H - 1
	if spanX <= 0 || spanY <= 0 {
		return Cell{}, fmt.Errorf("extent %dx%d on %dx%d grid: %w", extent.W, extent.H, g.Width, g.Height, ErrNoSpace)
	}

	for range maxAttempts {
		anchor := Cell{X: 1 + rng.Intn(spanX), Y: 1 + rng.Intn(spanY)}
		if !occ.IsOccupied(Footprint(anchor, extent)...) {
			return anchor, nil
		}
	}
	return Cell{}, fmt.Errorf("extent %dx%d after %d attempts: %w", extent.W, extent.H, maxAttempts, ErrNoSpace)
}

// Occupancy is a point-in-time set of taken cells. It is built from copies
// of the snake, item and hazards and never tracks them afterwards.
type Occupancy struct {
	cells map[Cell]struct{}
}

// NewOccupancy builds a snapshot from any number of cell layers.
func NewOccupancy(layers ...[]Cell) Occupancy {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	occ := Occupancy{cells: make(map[Cell]struct{}, n)}
	for _, l := range layers {
		occ.Add(l...)
	}
	return occ
}

// Add marks cells as taken.
func (o Occupancy) Add(cells ...Cell) {
	for _, c := range cells {
		o.cells[c] = struct{}{}
	}
}

// IsOccupied reports whether any of cells is taken.
func (o Occupancy) IsOccupied(cells ...Cell) bool {
	for _, c := range cells {
		if _, ok := o.cells[c]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of taken cells.
func (o Occupancy) Len() int {
	return len(o.cells)
}

// Placer places footprints one after another on a grid, adding each to its
// occupancy so later placements avoid earlier ones.
type Placer struct {
	grid        Grid
	rng         *rand.Rand
	occ         Occupancy
	maxAttempts int
}

// NewPlacer creates a placer over occ. The placer writes into occ.
func NewPlacer(grid Grid, rng *rand.Rand, occ Occupancy, maxAttempts int) *Placer {
	return &Placer{grid: grid, rng: rng, occ: occ, maxAttempts: maxAttempts}
}

// Place finds a free footprint of the given extent and reserves it.
func (p *Placer) Place(extent Size) ([]Cell, error) {
	anchor, err := p.grid.RandomUnoccupied(p.rng, p.occ, extent, p.maxAttempts)
	if err != nil {
		return nil, err
	}
	cells := Footprint(anchor, extent)
	p.occ.Add(cells...)
	return cells, nil
}

// Rand exposes the placer's random source for layout choices such as
// wall orientation.
func (p *Placer) Rand() *rand.Rand {
	return p.rng
}
