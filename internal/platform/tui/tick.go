// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, the menu and score screens,
// and serving the same flow over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-modes/internal/loop"
)

// TickMsg is sent to trigger a game simulation tick.
// Session ties the tick to the game model that scheduled it, so ticks left
// over from an abandoned session are dropped.
type TickMsg struct {
	Session int
	Time    time.Time
}

// holdDoneMsg ends the pause between game over and name entry.
type holdDoneMsg struct {
	Session int
}

// tickCmd returns a command that sends one tick after the interval for the
// given rate.
func tickCmd(session, tickRate int) tea.Cmd {
	return tea.Tick(loop.Interval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Session: session, Time: t}
	})
}

// holdCmd waits d and then reports that the game-over hold is done.
func holdCmd(session int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return holdDoneMsg{Session: session}
	})
}
