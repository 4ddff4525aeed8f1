package snake

import "time"

// State is the game-mode state machine position.
type State string

const (
	StateInitializing State = "initializing"
	StateRunning      State = "running"
	StatePaused       State = "paused"
	StateGameOver     State = "game_over"
	StateTooSmall     State = "too_small"
)

// Snapshot captures the complete game state for presentation,
// determinism testing and replay. It shares no memory with the game.
type Snapshot struct {
	Tick     uint64
	Variant  Variant
	Label    string
	State    State
	Reason   Reason
	Grid     Grid
	Body     []Cell // Head first
	Dir      Direction
	Item     Cell
	HasItem  bool
	Hazards  []HazardSet
	Score    int
	Consumed int
	Speed    int // 0 while paused
	Elapsed  time.Duration
}

// Head returns the head cell, or false if the snake is not placed.
func (s Snapshot) Head() (Cell, bool) {
	if len(s.Body) == 0 {
		return Cell{}, false
	}
	return s.Body[0], true
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.tick,
		Variant:  g.mode.Variant,
		Label:    g.mode.Label,
		State:    g.state,
		Reason:   g.reason,
		Grid:     g.grid,
		Dir:      g.body.Direction(),
		Item:     g.item,
		HasItem:  g.hasItem,
		Score:    g.score,
		Consumed: g.consumed,
		Elapsed:  g.Elapsed(),
	}
	if g.state != StatePaused {
		snap.Speed = g.Speed()
	}
	if g.state != StateTooSmall && g.state != StateInitializing {
		snap.Body = g.body.Cells()
	}
	for _, hz := range g.hazards {
		snap.Hazards = append(snap.Hazards, HazardSet{
			Kind:  hz.Kind,
			Cells: append([]Cell(nil), hz.Cells...),
		})
	}
	return snap
}
