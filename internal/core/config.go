package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay

	// Clock supplies wall-clock time for elapsed play time accounting.
	// Nil means time.Now.
	Clock func() time.Time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// Now returns the current time from the configured clock.
func (c RuntimeConfig) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused

	// TickRate is the number of simulation ticks per second the driver
	// should run at for the next tick. Games with a variable pace change it
	// between ticks.
	TickRate int
}

// SessionResult is what a finished play session hands to the caller for
// score submission.
type SessionResult struct {
	Mode    string        // Mode label, e.g. "Walls"
	Score   int           // Final score
	Elapsed time.Duration // Play time, excluding paused intervals
	EndedAt time.Time     // Moment the session reached game over
	Reason  string        // Why the session ended
}

// ElapsedSeconds returns the play time in fractional seconds.
func (r SessionResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// Timestamp returns the end time as fractional unix seconds.
func (r SessionResult) Timestamp() float64 {
	return float64(r.EndedAt.UnixNano()) / float64(time.Second)
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Result is set exactly once, on the tick the session ends.
	Result *SessionResult
}
