package loop

import (
	"github.com/vovakirdan/snake-modes/internal/core"
	"github.com/vovakirdan/snake-modes/internal/games/snake"
)

// SnapshotSource returns the current state of a snake game.
type SnapshotSource interface {
	Snapshot() snake.Snapshot
}

// Autopilot is an input source that steers a snake greedily toward the
// item while avoiding every cell that would end the session on the next
// move. It plays the single snake; it is not an opponent.
type Autopilot struct {
	game SnapshotSource
}

// NewAutopilot creates an autopilot for game.
func NewAutopilot(game SnapshotSource) *Autopilot {
	return &Autopilot{game: game}
}

var headings = []struct {
	dir    snake.Direction
	action core.Action
}{
	{snake.DirUp, core.ActionUp},
	{snake.DirRight, core.ActionRight},
	{snake.DirDown, core.ActionDown},
	{snake.DirLeft, core.ActionLeft},
}

// Poll implements InputSource.
func (a *Autopilot) Poll() core.InputFrame {
	frame := core.NewInputFrame()
	snap := a.game.Snapshot()
	head, ok := snap.Head()
	if !ok || snap.State != snake.StateRunning {
		return frame
	}

	// The tail end moves away this tick unless the snake eats
	blocked := snake.NewOccupancy(snap.Body[:len(snap.Body)-1])
	for _, hz := range snap.Hazards {
		blocked.Add(hz.Cells...)
	}

	best, bestDist := -1, 0
	for i, h := range headings {
		if h.dir == snap.Dir.Opposite() {
			continue
		}
		next := head.Add(h.dir.Delta())
		if !snap.Grid.Contains(next) || blocked.IsOccupied(next) {
			continue
		}
		dist := 0
		if snap.HasItem {
			dist = core.Abs(snap.Item.X-next.X) + core.Abs(snap.Item.Y-next.Y)
		}
		// Prefer going straight on ties
		if best < 0 || dist < bestDist || (dist == bestDist && h.dir == snap.Dir) {
			best, bestDist = i, dist
		}
	}

	// Holding the current heading would fast-forward, so only turns are sent
	if best >= 0 && headings[best].dir != snap.Dir {
		frame.Set(headings[best].action)
	}
	return frame
}
