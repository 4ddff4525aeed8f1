// Package loop runs a game session without a terminal: one Step per tick,
// paced by the speed the game reports after every tick.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/snake-modes/internal/core"
)

// ErrQuit is returned when a session is abandoned before it ends.
var ErrQuit = errors.New("loop: session quit")

// Game is the part of a game the driver needs.
type Game interface {
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
}

// InputSource supplies the input for one tick. Poll is called exactly once
// per tick from the driver's goroutine.
type InputSource interface {
	Poll() core.InputFrame
}

// Presenter receives the rendered screen after every tick.
type Presenter interface {
	Present(screen *core.Screen, state core.GameState)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(screen *core.Screen, state core.GameState)

// Present implements Presenter.
func (f PresenterFunc) Present(screen *core.Screen, state core.GameState) {
	f(screen, state)
}

// Config configures a Driver.
type Config struct {
	ScreenW, ScreenH int

	// GameOverDelay holds the final frame before Run returns.
	GameOverDelay time.Duration

	// Presenter is optional.
	Presenter Presenter

	// Sleep waits between ticks. Nil means time.Sleep.
	Sleep func(time.Duration)

	// MaxTicks stops the session with ErrQuit after this many ticks.
	// Zero means no limit.
	MaxTicks uint64
}

// Driver runs one session of a game.
type Driver struct {
	game   Game
	input  InputSource
	cfg    Config
	screen *core.Screen
	ticks  uint64
}

// NewDriver creates a driver. The game must already be Reset.
func NewDriver(game Game, input InputSource, cfg Config) *Driver {
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &Driver{
		game:   game,
		input:  input,
		cfg:    cfg,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
	}
}

// Run steps the game until it reports a session result. Cancellation of
// ctx is checked once per tick, before input is polled; a session that ends
// that way returns an error wrapping ErrQuit and no result.
func (d *Driver) Run(ctx context.Context) (core.SessionResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return core.SessionResult{}, fmt.Errorf("%w after %d ticks: %w", ErrQuit, d.ticks, err)
		}
		if d.cfg.MaxTicks > 0 && d.ticks >= d.cfg.MaxTicks {
			return core.SessionResult{}, fmt.Errorf("%w: tick limit %d reached", ErrQuit, d.cfg.MaxTicks)
		}

		res := d.game.Step(d.input.Poll())
		d.ticks++
		d.present(res.State)

		if res.Result != nil {
			if d.cfg.GameOverDelay > 0 {
				d.cfg.Sleep(d.cfg.GameOverDelay)
			}
			return *res.Result, nil
		}

		d.cfg.Sleep(Interval(res.State.TickRate))
	}
}

// Ticks returns the number of ticks run so far.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

func (d *Driver) present(state core.GameState) {
	if d.cfg.Presenter == nil {
		return
	}
	d.screen.Clear()
	d.game.Render(d.screen)
	d.cfg.Presenter.Present(d.screen, state)
}

// Interval converts ticks per second into the wait between ticks.
func Interval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 1
	}
	return time.Second / time.Duration(tickRate)
}

// Script replays a fixed list of input frames, then returns empty frames.
type Script struct {
	frames []core.InputFrame
	next   int
}

// NewScript creates a scripted input source. Each action becomes one
// frame; core.ActionNone yields an empty frame.
func NewScript(actions ...core.Action) *Script {
	frames := make([]core.InputFrame, len(actions))
	for i, a := range actions {
		frames[i] = core.NewInputFrame()
		if a != core.ActionNone {
			frames[i].Set(a)
		}
	}
	return &Script{frames: frames}
}

// Poll implements InputSource.
func (s *Script) Poll() core.InputFrame {
	if s.next >= len(s.frames) {
		return core.NewInputFrame()
	}
	f := s.frames[s.next]
	s.next++
	return f
}
