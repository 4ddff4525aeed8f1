package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-modes/internal/config"
	"github.com/vovakirdan/snake-modes/internal/core"
	"github.com/vovakirdan/snake-modes/internal/storage"
)

// MenuKind tells what a menu entry opens.
type MenuKind int

const (
	MenuInstructions MenuKind = iota
	MenuPlay
	MenuScores
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Kind  MenuKind
	Mode  string // Mode id for MenuPlay
	Title string
	Best  int // Best recorded score for MenuPlay entries
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	status         string
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when the user picks an entry
	openScoreboard bool      // True if the user pressed Tab
}

// NewMenuModel creates the main menu: instructions, one entry per
// configured mode, then high scores. store may be nil.
func NewMenuModel(cfg config.SnakeConfig, store *storage.Store, rc core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(cfg.Modes)+2)
	items = append(items, MenuItem{Kind: MenuInstructions, Title: "Instructions"})

	for _, mc := range cfg.Modes {
		item := MenuItem{Kind: MenuPlay, Mode: mc.ID, Title: mc.Label}
		if store != nil {
			if best, err := store.HighScore(mc.Label); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	items = append(items, MenuItem{Kind: MenuScores, Title: "High Scores"})

	return MenuModel{
		items:     items,
		cursor:    0,
		width:     rc.ScreenW,
		height:    rc.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// WithStatus sets a message shown under the menu, e.g. a storage error.
func (m MenuModel) WithStatus(status string) MenuModel {
	m.status = status
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S N A K E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + item.Title
		if item.Kind == MenuPlay && item.Best > 0 {
			line = fmt.Sprintf("%-14s best %d", line, item.Best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		b.WriteString(centerText(statusStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}

	return b.String()
}

// Items returns the menu entries.
func (m MenuModel) Items() []MenuItem {
	return m.items
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
