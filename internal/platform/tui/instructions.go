package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-modes/internal/config"
)

// Rows used by the pager title and help bar.
const pagerChrome = 4

// PagerKeyMap defines the key bindings for the instructions pager.
type PagerKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PagerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k PagerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Back}}
}

// InstructionsModel shows the instruction document in a scrolling viewport.
type InstructionsModel struct {
	doc       config.Instructions
	viewport  viewport.Model
	help      help.Model
	keys      PagerKeyMap
	width     int
	goingBack bool
}

// NewInstructionsModel creates a pager sized for the screen.
func NewInstructionsModel(doc config.Instructions, width, height int) InstructionsModel {
	vp := viewport.New(width, max(height-pagerChrome, 1))

	m := InstructionsModel{
		doc:      doc,
		viewport: vp,
		help:     help.New(),
		keys: PagerKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("up/k", "scroll up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("down/j", "scroll down"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc", "b", "q"),
				key.WithHelp("esc/b", "back"),
			),
		},
		width: width,
	}
	m.viewport.SetContent(m.content())
	return m
}

// content lays the sections out as plain wrapped text.
func (m InstructionsModel) content() string {
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	textStyle := lipgloss.NewStyle().Width(max(m.width-4, 20)).PaddingLeft(2)

	var b strings.Builder
	for i, s := range m.doc.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(headStyle.Render(s.Heading))
		b.WriteString("\n")
		b.WriteString(textStyle.Render(strings.TrimSpace(s.Text)))
		b.WriteString("\n")
	}
	return b.String()
}

// Init initializes the pager.
func (m InstructionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the pager.
func (m InstructionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			m.goingBack = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-pagerChrome, 1)
		m.viewport.SetContent(m.content())
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pager.
func (m InstructionsModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render(m.doc.Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if the user left the pager.
func (m InstructionsModel) IsGoingBack() bool {
	return m.goingBack
}
