package snake

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/snake-modes/internal/config"
	"github.com/vovakirdan/snake-modes/internal/core"
	"github.com/vovakirdan/snake-modes/internal/registry"
)

// GameID is the registry identifier of the snake game.
const GameID = "snake"

// Screen rows above the playfield: the HUD line and the top border.
const hudHeight = 2

// Game implements the snake game for one configured mode.
type Game struct {
	cfg     config.SnakeConfig
	mode    Mode
	speed   config.SpeedSchedule
	runtime core.RuntimeConfig
	rng     *rand.Rand
	tick    uint64

	state  State
	reason Reason

	// Playfield placement on the screen
	grid       Grid
	mapOffsetX int
	mapOffsetY int

	body        Body
	item        Cell
	hasItem     bool
	hazards     []HazardSet
	score       int
	consumed    int
	fastForward bool

	// Play time accounting; paused intervals are excluded
	startedAt time.Time
	pausedAt  time.Time
	pausedFor time.Duration
	endedAt   time.Time

	// Result awaiting delivery by the next Step
	pending *core.SessionResult
}

// New creates a game in the given mode. cfg is not modified and must not
// be changed by the caller afterwards.
func New(variant Variant, cfg config.SnakeConfig) (*Game, error) {
	mc, err := cfg.Mode(string(variant))
	if err != nil {
		return nil, err
	}
	mode, err := NewMode(mc)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:   cfg,
		mode:  mode,
		speed: config.NewSpeedSchedule(cfg.Speed),
		state: StateInitializing,
	}, nil
}

func init() {
	registry.Register(GameID, func(mode string, cfg config.SnakeConfig) (registry.Game, error) {
		return New(Variant(mode), cfg)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the mode label. Scores are stored under it.
func (g *Game) Title() string {
	return g.mode.Label
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.reason = ReasonNone
	g.score = 0
	g.consumed = 0
	g.fastForward = false
	g.hasItem = false
	g.hazards = nil
	g.pending = nil
	g.pausedFor = 0
	g.pausedAt = time.Time{}
	g.endedAt = time.Time{}
	g.startedAt = cfg.Now()

	if !g.layout(cfg.ScreenW, cfg.ScreenH) {
		g.state = StateTooSmall
		return
	}

	start := Cell{X: g.cfg.Snake.StartX, Y: g.cfg.Snake.StartY}
	g.body = NewBody(start, g.cfg.Snake.Length, DirRight)
	g.state = StateRunning

	if err := g.respawn(); err != nil {
		g.end(ReasonNoSpace)
	}
}

// layout sizes the grid for the screen and centers it.
// Returns false if the screen cannot hold a playable grid.
func (g *Game) layout(screenW, screenH int) bool {
	minW, minH := g.cfg.MinGrid()

	w, h := g.cfg.Grid.Width, g.cfg.Grid.Height
	if w <= 0 || h <= 0 {
		// Fit the terminal inside the border
		w, h = screenW-2, screenH-hudHeight-1
	}
	if w < minW || h < minH || w+2 > screenW || h+hudHeight+1 > screenH {
		return false
	}

	g.grid = Grid{Width: w, Height: h}
	g.mapOffsetX = (screenW - w) / 2
	g.mapOffsetY = hudHeight
	return true
}

// Fits reports whether the current playfield still fits a screen of the
// given size.
func (g *Game) Fits(screenW, screenH int) bool {
	if g.state == StateTooSmall || g.state == StateInitializing {
		return false
	}
	return g.grid.Width+2 <= screenW && g.grid.Height+hudHeight+1 <= screenH
}

// SetScreen records a new screen size without touching the current board.
// The next restart lays the grid out for it.
func (g *Game) SetScreen(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.state == StateGameOver {
		next := g.runtime
		next.Seed = g.rng.Int63()
		g.Reset(next)
		return g.result()
	}

	if input.Has(core.ActionPause) {
		g.togglePause()
	}

	if g.state != StateRunning {
		return g.result()
	}

	dir, ff := g.resolveDirection(input)
	g.fastForward = ff

	g.body.Advance(dir)
	if g.hasItem && g.body.Next() == g.item {
		g.body.Grow()
		g.score += g.cfg.Scoring.PerItem
		g.consumed++
		g.hasItem = false
	} else {
		g.body.Move()
	}

	if reason := g.mode.Check(g.grid, g.body, g.hazards); reason != ReasonNone {
		g.end(reason)
		return g.result()
	}

	if !g.hasItem {
		if err := g.respawn(); err != nil {
			g.end(ReasonNoSpace)
		}
	}

	return g.result()
}

// resolveDirection picks the heading for this tick from the latest
// directional input. A reversal is ignored. Repeating the current heading
// requests fast-forward.
func (g *Game) resolveDirection(input core.InputFrame) (Direction, bool) {
	current := g.body.Direction()

	action, ok := input.LatestDirection()
	if !ok {
		return current, false
	}

	var want Direction
	switch action {
	case core.ActionUp:
		want = DirUp
	case core.ActionDown:
		want = DirDown
	case core.ActionLeft:
		want = DirLeft
	default:
		want = DirRight
	}

	switch want {
	case current:
		return current, true
	case current.Opposite():
		return current, false
	default:
		return want, false
	}
}

// togglePause switches between running and paused, keeping the paused
// interval out of the play time.
func (g *Game) togglePause() {
	switch g.state {
	case StateRunning:
		g.state = StatePaused
		g.pausedAt = g.runtime.Now()
	case StatePaused:
		g.state = StateRunning
		g.pausedFor += g.runtime.Now().Sub(g.pausedAt)
		g.pausedAt = time.Time{}
	}
}

// respawn places a new item and regenerates every hazard layer in order.
// Each placement avoids the snake and everything placed before it.
func (g *Game) respawn() error {
	occ := NewOccupancy(g.body.Cells())
	p := NewPlacer(g.grid, g.rng, occ, g.cfg.Placement.MaxAttempts)

	item, err := p.Place(Size{})
	if err != nil {
		return fmt.Errorf("snake: spawn item: %w", err)
	}

	hazards := make([]HazardSet, 0, len(g.mode.Layers))
	for _, layer := range g.mode.Layers {
		cells, err := layer.Place(p)
		if err != nil {
			return fmt.Errorf("snake: place %s: %w", layer.Kind(), err)
		}
		hazards = append(hazards, HazardSet{Kind: layer.Kind(), Cells: cells})
	}

	g.item = item[0]
	g.hasItem = true
	g.hazards = hazards
	return nil
}

// end moves the game to game over and prepares the session result.
func (g *Game) end(reason Reason) {
	now := g.runtime.Now()
	if g.state == StatePaused {
		g.pausedFor += now.Sub(g.pausedAt)
	}
	g.state = StateGameOver
	g.reason = reason
	g.endedAt = now
	g.fastForward = false
	g.pending = &core.SessionResult{
		Mode:    g.mode.Label,
		Score:   g.score,
		Elapsed: g.Elapsed(),
		EndedAt: now,
		Reason:  string(reason),
	}
}

// result builds the step result, handing out a pending session result once.
func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State()}
	if g.pending != nil {
		res.Result = g.pending
		g.pending = nil
	}
	return res
}

// Elapsed returns the play time so far, excluding paused intervals.
func (g *Game) Elapsed() time.Duration {
	end := g.endedAt
	if end.IsZero() {
		end = g.runtime.Now()
	}
	paused := g.pausedFor
	if g.state == StatePaused {
		paused += end.Sub(g.pausedAt)
	}
	return max(end.Sub(g.startedAt)-paused, 0)
}

// Speed returns the current ticks per second.
func (g *Game) Speed() int {
	return g.speed.Speed(g.consumed, g.fastForward)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
		TickRate: g.Speed(),
	}
}

// Occupancy returns a fresh snapshot of every taken cell.
func (g *Game) Occupancy() Occupancy {
	layers := make([][]Cell, 0, len(g.hazards)+2)
	if g.state != StateTooSmall && g.state != StateInitializing {
		layers = append(layers, g.body.Cells())
	}
	if g.hasItem {
		layers = append(layers, []Cell{g.item})
	}
	for _, hz := range g.hazards {
		layers = append(layers, hz.Cells)
	}
	return NewOccupancy(layers...)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Mode: %s, State: %s, Score: %d\n", g.tick, g.mode.Label, g.state, g.score)
	if g.body.Len() > 0 {
		head := g.body.Head()
		fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Head: (%d, %d)\n", g.body.Len(), g.body.Direction(), head.X, head.Y)
	}
	if g.hasItem {
		fmt.Fprintf(&b, "Item: (%d, %d)\n", g.item.X, g.item.Y)
	}
	for _, hz := range g.hazards {
		fmt.Fprintf(&b, "%s: %d cells\n", hz.Kind, len(hz.Cells))
	}
	if g.reason != ReasonNone {
		fmt.Fprintf(&b, "Reason: %s\n", g.reason)
	}
	return b.String()
}
