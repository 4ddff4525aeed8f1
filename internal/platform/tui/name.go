package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-modes/internal/core"
)

// NameModel asks for the player name a finished session is recorded under.
// Only letters are accepted, up to the configured length, shown upper-case.
type NameModel struct {
	input     textinput.Model
	result    core.SessionResult
	maxLen    int
	width     int
	height    int
	errMsg    string
	submitted bool
	cancelled bool
}

// NewNameModel creates the prompt for res.
func NewNameModel(res core.SessionResult, maxLen, width, height int) NameModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = strings.Repeat("_", maxLen)
	ti.CharLimit = maxLen
	ti.Width = maxLen + 1
	ti.Focus()

	return NameModel{
		input:  ti,
		result: res,
		maxLen: maxLen,
		width:  width,
		height: height,
	}
}

// Init starts the cursor blink.
func (m NameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt.
func (m NameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if NormalizeName(m.input.Value(), m.maxLen) == "" {
				m.errMsg = "Enter at least one letter"
				return m, nil
			}
			m.submitted = true
			return m, nil

		case tea.KeyEsc:
			m.cancelled = true
			return m, nil

		case tea.KeyRunes:
			runes := lettersUpper(msg.Runes)
			if len(runes) == 0 {
				return m, nil
			}
			msg.Runes = runes
			m.errMsg = ""
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m NameModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	top := max((m.height-9)/2, 0)
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(centerText(titleStyle.Render("GAME OVER"), m.width))
	b.WriteString("\n\n")
	summary := fmt.Sprintf("Mode: %s  Score: %d  Time: %.1f s",
		m.result.Mode, m.result.Score, m.result.ElapsedSeconds())
	b.WriteString(centerText(summary, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Enter your name (letters only, up to %d):", m.maxLen), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(centerText(lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.errMsg), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Enter: save  |  Esc: skip"), m.width))

	return b.String()
}

// Name returns the normalized player name.
func (m NameModel) Name() string {
	return NormalizeName(m.input.Value(), m.maxLen)
}

// Result returns the session the name is for.
func (m NameModel) Result() core.SessionResult {
	return m.result
}

// Submitted reports that the player confirmed a valid name.
func (m NameModel) Submitted() bool {
	return m.submitted
}

// Cancelled reports that the player skipped recording the score.
func (m NameModel) Cancelled() bool {
	return m.cancelled
}

// NormalizeName keeps the letters of s, upper-cased, cut to maxLen runes.
func NormalizeName(s string, maxLen int) string {
	runes := lettersUpper([]rune(s))
	if maxLen > 0 && len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return string(runes)
}

func lettersUpper(in []rune) []rune {
	out := make([]rune, 0, len(in))
	for _, r := range in {
		if unicode.IsLetter(r) {
			out = append(out, unicode.ToUpper(r))
		}
	}
	return out
}
