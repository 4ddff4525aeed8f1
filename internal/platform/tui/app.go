package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-modes/internal/config"
	"github.com/vovakirdan/snake-modes/internal/core"
	"github.com/vovakirdan/snake-modes/internal/games/snake"
	"github.com/vovakirdan/snake-modes/internal/registry"
	"github.com/vovakirdan/snake-modes/internal/storage"
)

// view is the screen an App currently shows.
type view int

const (
	viewMenu view = iota
	viewInstructions
	viewGame
	viewName
	viewScores
)

// Options configures an App.
type Options struct {
	Store        *storage.Store // Nil runs without score recording
	Config       config.SnakeConfig
	Instructions config.Instructions
	Runtime      core.RuntimeConfig // Screen size, seed (0 = time based), clock

	// StartMode skips the menu and starts this mode right away.
	StartMode string

	// ScreenshotDir enables ctrl+s screen dumps in games.
	ScreenshotDir string
}

// App is the top-level model: menu, instructions, games, name entry and
// high scores. The same model runs locally and per SSH session.
type App struct {
	opts     Options
	runtime  core.RuntimeConfig
	current  view
	sessions int

	menu   MenuModel
	pager  InstructionsModel
	game   GameModel
	name   NameModel
	scores ScoreboardModel

	status   string
	quitting bool
}

// NewApp creates the app model. It fails when StartMode is not a
// configured mode.
func NewApp(opts Options) (App, error) {
	m := App{
		opts:    opts,
		runtime: opts.Runtime,
	}
	m.menu = NewMenuModel(opts.Config, opts.Store, m.runtime)

	if opts.StartMode != "" {
		if err := m.startGame(opts.StartMode); err != nil {
			return App{}, err
		}
	}
	return m, nil
}

// Init starts the first screen.
func (m App) Init() tea.Cmd {
	if m.current == viewGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// startGame creates a game for mode and switches to it.
func (m *App) startGame(mode string) error {
	game, err := registry.Create(snake.GameID, mode, m.opts.Config)
	if err != nil {
		return fmt.Errorf("tui: start %q: %w", mode, err)
	}

	rc := m.runtime
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	m.sessions++
	m.game = NewGameModel(m.sessions, game, rc, m.opts.Config.Session.GameOverDelay).
		WithScreenshots(m.opts.ScreenshotDir)
	m.current = viewGame
	return nil
}

// Update routes messages to the current screen and handles transitions.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		return m.resize(msg)
	}

	switch m.current {
	case viewInstructions:
		return m.updateInstructions(msg)
	case viewGame:
		return m.updateGame(msg)
	case viewName:
		return m.updateName(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// resize forwards the new size to every live screen.
func (m App) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	update := func(model tea.Model) tea.Model {
		next, cmd := model.Update(msg)
		cmds = append(cmds, cmd)
		return next
	}

	m.menu = update(m.menu).(MenuModel)
	switch m.current {
	case viewInstructions:
		m.pager = update(m.pager).(InstructionsModel)
	case viewScores:
		m.scores = update(m.scores).(ScoreboardModel)
	case viewName:
		m.name = update(m.name).(NameModel)
		m.game = update(m.game).(GameModel)
	case viewGame:
		m.game = update(m.game).(GameModel)
	}
	return m, tea.Batch(cmds...)
}

// updateMenu handles updates when in menu mode.
func (m App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		return m.openScores("")
	}

	if selected := m.menu.Selected(); selected != nil {
		switch selected.Kind {
		case MenuInstructions:
			m.pager = NewInstructionsModel(m.opts.Instructions, m.runtime.ScreenW, m.runtime.ScreenH)
			m.current = viewInstructions
			return m, m.pager.Init()
		case MenuScores:
			return m.openScores("")
		default:
			if err := m.startGame(selected.Mode); err != nil {
				return m.backToMenu(err.Error())
			}
			return m, m.game.Init()
		}
	}

	return m, cmd
}

// updateInstructions handles updates when showing instructions.
func (m App) updateInstructions(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.pager.Update(msg)
	m.pager = next.(InstructionsModel)

	if m.pager.IsGoingBack() {
		return m.backToMenu("")
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		return m.backToMenu("")

	case m.game.NeedsName():
		res := m.game.Result()
		if res == nil || m.opts.Store == nil {
			m.game, cmd = m.game.Resume()
			return m, cmd
		}
		m.name = NewNameModel(*res, m.opts.Config.Session.PlayerNameLength, m.runtime.ScreenW, m.runtime.ScreenH)
		m.current = viewName
		return m, m.name.Init()
	}

	return m, cmd
}

// updateName handles updates while asking for the player name.
func (m App) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.name.Update(msg)
	m.name = next.(NameModel)

	switch {
	case m.name.Submitted():
		if _, err := m.opts.Store.RecordSession(m.name.Name(), m.name.Result()); err != nil {
			m.status = err.Error()
		}
	case m.name.Cancelled():
	default:
		return m, cmd
	}

	m.current = viewGame
	m.game, cmd = m.game.Resume()
	return m, cmd
}

// updateScores handles updates when browsing high scores.
func (m App) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu("")
	}
	return m, cmd
}

// openScores switches to the scoreboard with the given tab selected.
func (m App) openScores(focus string) (tea.Model, tea.Cmd) {
	labels := make([]string, 0, len(m.opts.Config.Modes))
	for _, mc := range m.opts.Config.Modes {
		labels = append(labels, mc.Label)
	}
	m.scores = NewScoreboardModel(m.opts.Store, labels, focus, m.runtime.ScreenW, m.runtime.ScreenH)
	m.current = viewScores
	return m, m.scores.Init()
}

// backToMenu rebuilds the menu so best scores are current.
func (m App) backToMenu(status string) (tea.Model, tea.Cmd) {
	if status == "" {
		status = m.status
	}
	m.status = ""
	m.menu = NewMenuModel(m.opts.Config, m.opts.Store, m.runtime).WithStatus(status)
	m.current = viewMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case viewInstructions:
		return m.pager.View()
	case viewGame:
		return m.game.View()
	case viewName:
		return m.name.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
