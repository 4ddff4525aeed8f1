package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-modes/internal/core"
	"github.com/vovakirdan/snake-modes/internal/registry"
)

// fitter is implemented by games that can tell whether their playfield
// still fits a resized screen.
type fitter interface {
	Fits(screenW, screenH int) bool
}

// screenSizer is implemented by games that keep their board on resize and
// apply the new size on their next restart.
type screenSizer interface {
	SetScreen(screenW, screenH int)
}

// GameModel is the Bubble Tea model that drives one game.
//
// Keys are collected into an input frame and applied on the next tick. When
// a session ends the model holds the game-over screen for the configured
// delay and then asks for a player name (see NeedsName). Resume continues
// ticking once the name was handled.
type GameModel struct {
	session    int
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	delay      time.Duration
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	result    *core.SessionResult // Finished session awaiting a player name
	holding   bool                // Showing game over before name entry
	needsName bool

	screenshotDir string // Empty disables ctrl+s
	quitting      bool
	backToMenu    bool
}

// NewGameModel creates a model for the given game. session identifies the
// model's ticks; delay is the game-over hold before name entry.
func NewGameModel(session int, game registry.Game, cfg core.RuntimeConfig, delay time.Duration) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		session:    session,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		delay:      delay,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// WithScreenshots enables ctrl+s screen dumps into dir.
func (m GameModel) WithScreenshots(dir string) GameModel {
	m.screenshotDir = dir
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.session, m.game.State().TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Session != m.session || m.holding || m.needsName {
			return m, nil
		}
		return m.handleTick()

	case holdDoneMsg:
		if msg.Session == m.session && m.holding {
			m.holding = false
			m.needsName = true
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// The game-over screen is shown without interruption until the name prompt
	if m.holding || m.needsName {
		return m, nil
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// A finished game keeps its board until restarted; anything else
	// restarts on a board sized for the new screen when the old one no
	// longer fits
	if m.gameState.GameOver {
		if s, ok := m.game.(screenSizer); ok {
			s.SetScreen(msg.Width, msg.Height)
		}
		return m, nil
	}
	if f, ok := m.game.(fitter); ok && f.Fits(msg.Width, msg.Height) {
		return m, nil
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	// Quit ends the session without a result
	if m.inputFrame.Has(core.ActionQuit) {
		m.inputFrame.Clear()
		m.backToMenu = true
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Result != nil {
		res := *result.Result
		m.result = &res
		m.holding = true
		return m, holdCmd(m.session, m.delay)
	}

	return m, tickCmd(m.session, m.gameState.TickRate)
}

// Resume restarts the tick loop after the name prompt was handled.
func (m GameModel) Resume() (GameModel, tea.Cmd) {
	m.needsName = false
	m.result = nil
	return m, tickCmd(m.session, m.gameState.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}

	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", strings.ToLower(m.game.Title()), timestamp)
	path := filepath.Join(m.screenshotDir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Result returns the finished session waiting for a player name.
func (m GameModel) Result() *core.SessionResult {
	return m.result
}

// NeedsName reports that the hold is over and the result wants a name.
func (m GameModel) NeedsName() bool {
	return m.needsName
}

// IsQuitting returns true if the user pressed ctrl+c.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user left the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Session returns the identifier carried by this model's ticks.
func (m GameModel) Session() int {
	return m.session
}
