package snake

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/snake-modes/internal/config"
	"github.com/vovakirdan/snake-modes/internal/core"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGame(t *testing.T, variant Variant, seed int64) (*Game, *fakeClock) {
	t.Helper()
	return newTestGameConfig(t, variant, seed, config.DefaultSnakeConfig())
}

func newTestGameConfig(t *testing.T, variant Variant, seed int64, cfg config.SnakeConfig) (*Game, *fakeClock) {
	t.Helper()
	g, err := New(variant, cfg)
	if err != nil {
		t.Fatalf("New(%s) error: %v", variant, err)
	}
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 25, Seed: seed, Clock: clock.Now})
	if g.state != StateRunning {
		t.Fatalf("state after Reset = %s, want running", g.state)
	}
	return g, clock
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// feed puts the item directly in front of the snake.
func feed(g *Game) {
	g.item = g.body.Head().Add(g.body.Direction().Delta())
	g.hasItem = true
}

func TestGameInitialization(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 42)

	if g.ID() != "snake" || g.Title() != "Standard" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
	if g.grid != (Grid{Width: 38, Height: 22}) {
		t.Errorf("grid = %+v, want 38x22", g.grid)
	}
	want := []Cell{{10, 5}, {9, 5}, {8, 5}, {7, 5}}
	if !reflect.DeepEqual(g.body.Cells(), want) {
		t.Errorf("body = %v, want %v", g.body.Cells(), want)
	}
	if !g.hasItem {
		t.Error("item should be spawned at start")
	}
	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused || state.TickRate != 15 {
		t.Errorf("initial state = %+v", state)
	}
}

func TestUnknownVariant(t *testing.T) {
	_, err := New("lava", config.DefaultSnakeConfig())
	if !errors.Is(err, config.ErrUnknownVariant) {
		t.Errorf("New(lava) error = %v, want ErrUnknownVariant", err)
	}
}

func TestReversalIgnored(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 1)
	g.hasItem = false
	head := g.body.Head()

	g.Step(frame(core.ActionLeft))

	if g.body.Direction() != DirRight {
		t.Errorf("direction = %v, want right", g.body.Direction())
	}
	if g.body.Head() != head.Add(Cell{X: 1}) {
		t.Errorf("head = %v, want %v", g.body.Head(), head.Add(Cell{X: 1}))
	}
	if g.state != StateRunning {
		t.Errorf("reversal should not end the game, state %s", g.state)
	}
}

func TestLatestDirectionWins(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 1)
	g.hasItem = false

	g.Step(frame(core.ActionUp, core.ActionDown))
	if g.body.Direction() != DirDown {
		t.Errorf("direction = %v, want down", g.body.Direction())
	}
}

func TestGrowthOnBite(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 7)
	before := g.body.Len()
	feed(g)

	res := g.Step(core.NewInputFrame())

	if g.body.Len() != before+1 {
		t.Errorf("length = %d, want %d", g.body.Len(), before+1)
	}
	if res.State.Score != 10 || g.consumed != 1 {
		t.Errorf("score %d consumed %d, want 10 and 1", res.State.Score, g.consumed)
	}
	if !g.hasItem {
		t.Fatal("item should respawn at end of tick")
	}
	if NewOccupancy(g.body.Cells()).IsOccupied(g.item) {
		t.Error("respawned item overlaps the snake")
	}

	// Length is unchanged without a bite
	g.hasItem = false
	g.Step(core.NewInputFrame())
	if g.body.Len() != before+1 {
		t.Errorf("length after plain move = %d, want %d", g.body.Len(), before+1)
	}
}

func TestScoringAndSpeedSteps(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 11)

	for range 3 {
		feed(g)
		g.Step(core.NewInputFrame())
	}

	state := g.State()
	if state.Score != 30 {
		t.Errorf("score = %d, want 30", state.Score)
	}
	if state.TickRate != 16 {
		t.Errorf("speed after 3 items = %d, want 16", state.TickRate)
	}

	// Holding the current direction doubles the speed
	res := g.Step(frame(core.ActionRight))
	if res.State.TickRate != 32 {
		t.Errorf("fast-forward speed = %d, want 32", res.State.TickRate)
	}
	res = g.Step(core.NewInputFrame())
	if res.State.TickRate != 16 {
		t.Errorf("speed after release = %d, want 16", res.State.TickRate)
	}
}

func TestBoundaryGameOver(t *testing.T) {
	g, clock := newTestGame(t, VariantStandard, 3)
	g.body = NewBody(Cell{X: g.grid.Width - 1, Y: 3}, 3, DirRight)
	clock.Advance(4 * time.Second)

	res := g.Step(core.NewInputFrame())

	if !res.State.GameOver || g.reason != ReasonBoundary {
		t.Fatalf("state %+v reason %q, want boundary game over", res.State, g.reason)
	}
	if res.Result == nil {
		t.Fatal("session result should be delivered on the final tick")
	}
	if res.Result.Reason != "boundary" || res.Result.Mode != "Standard" || res.Result.Elapsed != 4*time.Second {
		t.Errorf("result = %+v", *res.Result)
	}

	// Delivered once
	if again := g.Step(core.NewInputFrame()); again.Result != nil {
		t.Error("session result delivered twice")
	}
}

func TestSelfCollisionGameOver(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 5)
	g.hasItem = false
	g.body = Body{
		cells: []Cell{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {3, 1}},
		dir:   DirUp,
	}

	res := g.Step(frame(core.ActionRight))

	if !res.State.GameOver || g.reason != ReasonSelf {
		t.Errorf("state %+v reason %q, want self game over", res.State, g.reason)
	}
}

func TestMovingIntoVacatedTail(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 5)
	g.hasItem = false
	// A 2x2 loop: the head moves into the cell the tail leaves
	g.body = Body{
		cells: []Cell{{2, 2}, {2, 3}, {3, 3}, {3, 2}},
		dir:   DirUp,
	}

	g.Step(frame(core.ActionRight))

	if g.state != StateRunning {
		t.Errorf("state = %s (%s), want running", g.state, g.reason)
	}
}

func TestHazardCollisions(t *testing.T) {
	tests := []struct {
		variant Variant
		kind    HazardKind
		want    Reason
	}{
		{VariantWalls, HazardWall, ReasonWall},
		{VariantPoison, HazardPoison, ReasonPoison},
		{VariantExtreme, HazardPoison, ReasonPoison},
	}

	for _, tc := range tests {
		t.Run(string(tc.variant), func(t *testing.T) {
			g, _ := newTestGame(t, tc.variant, 9)
			g.hasItem = false
			ahead := g.body.Head().Add(Cell{X: 1})
			g.hazards = []HazardSet{{Kind: tc.kind, Cells: []Cell{ahead}}}

			res := g.Step(core.NewInputFrame())

			if res.Result == nil || res.Result.Reason != string(tc.want) {
				t.Errorf("result = %+v, want reason %s", res.Result, tc.want)
			}
		})
	}
}

func TestModeCheckOrder(t *testing.T) {
	mode, err := NewMode(config.ModeConfig{ID: "walls", Label: "Walls", Hazards: []config.HazardConfig{{Kind: "wall", Length: 3}}})
	if err != nil {
		t.Fatal(err)
	}
	grid := Grid{Width: 10, Height: 10}
	body := Body{cells: []Cell{{4, 4}, {4, 5}, {4, 6}}}

	if r := mode.Check(grid, body, nil); r != ReasonNone {
		t.Errorf("free head reason = %q", r)
	}
	// Self is reported before a hazard on the same cell
	hz := []HazardSet{{Kind: HazardWall, Cells: []Cell{{4, 4}}}}
	body.cells = []Cell{{4, 4}, {4, 5}, {4, 4}}
	if r := mode.Check(grid, body, hz); r != ReasonSelf {
		t.Errorf("reason = %q, want self", r)
	}
	body.cells = []Cell{{-1, 4}, {0, 4}}
	if r := mode.Check(grid, body, hz); r != ReasonBoundary {
		t.Errorf("reason = %q, want boundary", r)
	}
}

func TestNewModeLayers(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	for _, id := range []string{"standard", "walls", "poison", "extreme"} {
		mc, _ := cfg.Mode(id)
		m, err := NewMode(mc)
		if err != nil {
			t.Fatalf("NewMode(%s) error: %v", id, err)
		}
		if len(m.Layers) != len(mc.Hazards) {
			t.Errorf("%s layers = %d, want %d", id, len(m.Layers), len(mc.Hazards))
		}
	}

	_, err := NewMode(config.ModeConfig{ID: "x", Hazards: []config.HazardConfig{{Kind: "lava"}}})
	if err == nil {
		t.Error("unknown hazard kind should fail")
	}
}

func TestRespawnDisjoint(t *testing.T) {
	g, _ := newTestGame(t, VariantPoison, 21)

	for i := range 300 {
		if err := g.respawn(); err != nil {
			t.Fatalf("respawn %d: %v", i, err)
		}
		if len(g.hazards) != 2 || len(g.hazards[0].Cells) != 16 || len(g.hazards[1].Cells) != 3 {
			t.Fatalf("respawn %d: hazards %+v", i, g.hazards)
		}

		seen := NewOccupancy(g.body.Cells())
		total := g.body.Len()
		for _, group := range append([][]Cell{{g.item}}, g.hazards[0].Cells, g.hazards[1].Cells) {
			for _, c := range group {
				if !g.grid.Contains(c) {
					t.Fatalf("respawn %d: %v off grid", i, c)
				}
				if seen.IsOccupied(c) {
					t.Fatalf("respawn %d: %v placed twice", i, c)
				}
				seen.Add(c)
				total++
			}
		}
		if seen.Len() != total {
			t.Fatalf("respawn %d: occupancy %d, want %d", i, seen.Len(), total)
		}
	}
}

func TestHazardsRegenerateWithItem(t *testing.T) {
	g, _ := newTestGame(t, VariantWalls, 33)
	wall := []Cell{{2, 15}, {3, 15}, {4, 15}}
	g.hazards = []HazardSet{{Kind: HazardWall, Cells: wall}}
	g.item = Cell{X: 30, Y: 20}

	// Without a bite the wall stays put
	g.Step(core.NewInputFrame())
	if !reflect.DeepEqual(wall, g.hazards[0].Cells) {
		t.Fatal("wall moved without a bite")
	}

	feed(g)
	g.Step(core.NewInputFrame())
	if g.state != StateRunning {
		t.Fatalf("unexpected game over: %s", g.reason)
	}
	if len(g.hazards) != 1 || len(g.hazards[0].Cells) != 16 {
		t.Errorf("wall should be regenerated when the item respawns, got %+v", g.hazards)
	}
}

func TestSaturationEndsGame(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Modes = append(cfg.Modes, config.ModeConfig{
		ID:      "crowded",
		Label:   "Crowded",
		Hazards: []config.HazardConfig{{Kind: config.HazardPoison, Count: 1000}},
	})
	cfg.Placement.MaxAttempts = 200

	g, err := New("crowded", cfg)
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 25, Seed: 1})

	if g.state != StateGameOver || g.reason != ReasonNoSpace {
		t.Fatalf("state %s reason %q, want no_space game over", g.state, g.reason)
	}
	res := g.Step(core.NewInputFrame())
	if res.Result == nil || res.Result.Reason != "no_space" {
		t.Errorf("result = %+v, want no_space", res.Result)
	}
}

func TestPauseExcludedFromElapsed(t *testing.T) {
	g, clock := newTestGame(t, VariantStandard, 8)
	g.hasItem = false

	clock.Advance(3 * time.Second)
	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}

	head := g.body.Head()
	clock.Advance(10 * time.Second)
	g.Step(frame(core.ActionUp))
	if g.body.Head() != head || g.body.Direction() != DirRight {
		t.Error("paused game should not move or turn")
	}
	if got := g.Elapsed(); got != 3*time.Second {
		t.Errorf("elapsed while paused = %v, want 3s", got)
	}
	if snap := g.Snapshot(); snap.Speed != 0 {
		t.Errorf("snapshot speed while paused = %d, want 0", snap.Speed)
	}

	g.Step(frame(core.ActionPause))
	clock.Advance(2 * time.Second)
	g.body = NewBody(Cell{X: g.grid.Width - 1, Y: 3}, 2, DirRight)
	res = g.Step(core.NewInputFrame())

	if res.Result == nil {
		t.Fatal("expected game over")
	}
	if res.Result.Elapsed != 5*time.Second {
		t.Errorf("elapsed = %v, want 5s", res.Result.Elapsed)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g, _ := newTestGame(t, VariantWalls, 4)
	g.score = 50
	g.body = NewBody(Cell{X: g.grid.Width - 1, Y: 3}, 2, DirRight)
	g.Step(core.NewInputFrame())
	if g.state != StateGameOver {
		t.Fatal("expected game over")
	}

	res := g.Step(frame(core.ActionRestart))
	if res.State.GameOver || res.State.Score != 0 || g.state != StateRunning {
		t.Errorf("after restart: %+v state %s", res.State, g.state)
	}
	if len(g.hazards) != 1 || !g.hasItem {
		t.Error("restart should respawn item and hazards")
	}
}

func TestRestartAppliesNewScreen(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 4)
	g.body = NewBody(Cell{X: g.grid.Width - 1, Y: 3}, 2, DirRight)
	g.Step(core.NewInputFrame())
	if g.state != StateGameOver {
		t.Fatal("expected game over")
	}

	g.SetScreen(60, 30)
	if g.grid.Width != 38 {
		t.Fatalf("SetScreen relaid the finished board: %+v", g.grid)
	}

	g.Step(frame(core.ActionRestart))
	if g.grid.Width != 58 || g.grid.Height != 27 {
		t.Errorf("grid after restart = %+v, want 58x27", g.grid)
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	g, _ := newTestGame(t, VariantStandard, 4)
	g.hasItem = false
	g.score = 20

	g.Step(frame(core.ActionRestart))
	if g.score != 20 {
		t.Error("restart should only apply after game over")
	}
}

func TestTooSmall(t *testing.T) {
	g, err := New(VariantWalls, config.DefaultSnakeConfig())
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if g.state != StateTooSmall {
		t.Fatalf("state = %s, want too_small", g.state)
	}
	res := g.Step(frame(core.ActionRight, core.ActionPause))
	if res.State.GameOver || res.State.Paused {
		t.Errorf("too small game should not change, got %+v", res.State)
	}
	if g.Fits(20, 10) {
		t.Error("Fits should be false while too small")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("too small overlay not rendered")
	}
}

func TestFixedGrid(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid = config.GridConfig{Width: 20, Height: 18}
	g, _ := newTestGameConfig(t, VariantStandard, 1, cfg)

	if g.grid != (Grid{Width: 20, Height: 18}) {
		t.Errorf("grid = %+v, want 20x18", g.grid)
	}
	if g.mapOffsetX != 10 {
		t.Errorf("grid should be centered, offset %d", g.mapOffsetX)
	}
	if !g.Fits(22, 21) || g.Fits(21, 21) {
		t.Error("Fits should track the fixed grid size")
	}
}

func TestDeterminism(t *testing.T) {
	inputs := []core.Action{
		core.ActionNone, core.ActionDown, core.ActionNone, core.ActionRight,
		core.ActionUp, core.ActionNone, core.ActionLeft, core.ActionDown,
	}

	run := func() []Snapshot {
		g, _ := newTestGame(t, VariantExtreme, 12345)
		var snaps []Snapshot
		for i := range 200 {
			f := core.NewInputFrame()
			if a := inputs[i%len(inputs)]; a != core.ActionNone {
				f.Set(a)
			}
			g.Step(f)
			snaps = append(snaps, g.Snapshot())
			if g.state == StateGameOver {
				break
			}
		}
		return snaps
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs should give identical snapshots")
	}
}

func TestSnapshotIndependent(t *testing.T) {
	g, _ := newTestGame(t, VariantPoison, 2)
	snap := g.Snapshot()

	snap.Body[0] = Cell{-5, -5}
	snap.Hazards[0].Cells[0] = Cell{-5, -5}

	if g.body.Head() == (Cell{-5, -5}) || g.hazards[0].Cells[0] == (Cell{-5, -5}) {
		t.Error("snapshot should not alias game state")
	}
	if head, ok := snap.Head(); !ok || head != (Cell{-5, -5}) {
		t.Errorf("Head() = %v %v", head, ok)
	}
}

func TestGameOccupancy(t *testing.T) {
	g, _ := newTestGame(t, VariantPoison, 6)
	occ := g.Occupancy()

	if occ.Len() != g.body.Len()+1+16+3 {
		t.Errorf("occupancy len = %d", occ.Len())
	}
	if !occ.IsOccupied(g.item) || !occ.IsOccupied(g.body.Head()) {
		t.Error("occupancy missing item or head")
	}
}

func TestRender(t *testing.T) {
	g, clock := newTestGame(t, VariantWalls, 13)
	g.Reset(core.RuntimeConfig{ScreenW: 60, ScreenH: 25, Seed: 13, Clock: clock.Now})
	screen := core.NewScreen(60, 25)

	g.Render(screen)
	hud := strings.Split(screen.String(), "\n")[0]
	for _, want := range []string{"SCORE: 0", "MODE: Walls", "SPEED: 15", "TIME: 0 s"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	head := g.body.Head()
	if c := screen.GetCell(g.mapOffsetX+head.X, g.mapOffsetY+head.Y); c.Rune != 'O' || c.Color != core.ColorBrightGreen {
		t.Errorf("head cell = %+v", c)
	}
	wall := g.hazards[0].Cells[0]
	if c := screen.GetCell(g.mapOffsetX+wall.X, g.mapOffsetY+wall.Y); c.Rune != '#' {
		t.Errorf("wall cell = %+v", c)
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "SPEED: 0") || !strings.Contains(out, "GAME IS PAUSED") {
		t.Error("pause overlay or zero speed missing")
	}
}

func TestDebugState(t *testing.T) {
	g, _ := newTestGame(t, VariantPoison, 2)
	s := g.DebugState()
	if !strings.Contains(s, "Mode: Poison") || !strings.Contains(s, "poison: 3 cells") {
		t.Errorf("DebugState() = %q", s)
	}
}
