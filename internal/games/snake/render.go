package snake

import (
	"fmt"

	"github.com/vovakirdan/snake-modes/internal/core"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.state == StateTooSmall || g.state == StateInitializing {
		minW, minH := g.cfg.MinGrid()
		g.renderOverlay(dst, core.ColorYellow, "Window too small",
			fmt.Sprintf("Need %dx%d", minW+2, minH+hudHeight+1))
		return
	}

	// Border around the playfield
	dst.DrawBox(core.NewRect(g.mapOffsetX-1, g.mapOffsetY-1, g.grid.Width+2, g.grid.Height+2), core.ColorGray)

	for _, hz := range g.hazards {
		r, c := '#', core.ColorOrange
		if hz.Kind == HazardPoison {
			r, c = 'x', core.ColorBlue
		}
		for _, cell := range hz.Cells {
			g.plot(dst, cell, r, c)
		}
	}

	if g.hasItem {
		g.plot(dst, g.item, '*', core.ColorBrightWhite)
	}

	g.renderSnake(dst)

	switch g.state {
	case StateGameOver:
		g.renderOverlay(dst, core.ColorRed, fmt.Sprintf("GAME OVER! Score: %d", g.score), "Press R to restart")
	case StatePaused:
		g.renderOverlay(dst, core.ColorWhite, "GAME IS PAUSED", "Press Space to continue")
	}
}

// renderHUD draws the status line as four evenly spaced fields.
func (g *Game) renderHUD(dst *core.Screen) {
	speed := g.Speed()
	if g.state == StatePaused {
		speed = 0
	}

	fields := []string{
		fmt.Sprintf("SCORE: %d", g.score),
		fmt.Sprintf("MODE: %s", g.mode.Label),
		fmt.Sprintf("SPEED: %d", speed),
		fmt.Sprintf("TIME: %d s", int(g.Elapsed().Seconds())),
	}

	width := dst.Width() / len(fields)
	next := 0
	for i, f := range fields {
		x := max(i*width+1, next)
		dst.DrawTextColor(x, 0, f, core.ColorBrightWhite)
		next = x + len(f) + 2
	}
}

// renderSnake draws the snake, head last so it stays visible.
func (g *Game) renderSnake(dst *core.Screen) {
	tail := g.body.Tail()
	for i := len(tail) - 1; i >= 0; i-- {
		g.plot(dst, tail[i], 'o', core.ColorGreen)
	}
	g.plot(dst, g.body.Head(), 'O', core.ColorBrightGreen)
}

// plot draws a grid cell at its screen position.
func (g *Game) plot(dst *core.Screen, c Cell, r rune, color core.Color) {
	if !g.grid.Contains(c) {
		return
	}
	dst.SetColor(g.mapOffsetX+c.X, g.mapOffsetY+c.Y, r, color)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, color core.Color, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	dst.DrawTextCentered(box.Y+1, line1, color)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
