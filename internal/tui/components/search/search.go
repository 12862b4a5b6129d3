package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/aniseek/internal/tui/common"
	"github.com/justchokingaround/aniseek/internal/tui/styles"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// Model is the search box with the search type and translation toggles
type Model struct {
	textInput textinput.Model
	kind      types.SearchType
	dub       bool
	width     int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Width = 60
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)
	ti.Focus()

	return Model{
		textInput: ti,
		kind:      types.SearchText,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > 20 {
			m.textInput.Width = m.width - 20
		}
		return m, nil

	case tea.KeyMsg:
		if !m.textInput.Focused() {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			query := m.textInput.Value()
			return m, func() tea.Msg { return common.PerformSearchMsg{Query: query} }
		case "esc", "down":
			return m, func() tea.Msg { return common.FocusResultsMsg{} }
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("  ")
	for _, kind := range types.SearchTypes {
		b.WriteString(styles.Badge(string(kind), kind == m.kind))
	}
	b.WriteString("   ")
	b.WriteString(styles.Badge("sub", !m.dub))
	b.WriteString(styles.Badge("dub", m.dub))
	b.WriteString("\n\n")

	box := styles.InputStyle
	if m.textInput.Focused() {
		box = styles.InputFocusedStyle
	}
	b.WriteString(box.Render(m.textInput.View()))

	return b.String()
}

// Focus gives the search box the keyboard
func (m *Model) Focus() tea.Cmd {
	return m.textInput.Focus()
}

// Blur hands the keyboard back to the app
func (m *Model) Blur() {
	m.textInput.Blur()
}

// Focused reports whether the search box has the keyboard
func (m Model) Focused() bool {
	return m.textInput.Focused()
}

// SetToggles updates the search type and translation shown above the box
func (m *Model) SetToggles(kind types.SearchType, dub bool) {
	m.kind = kind
	m.dub = dub
}

// SetValue sets the value of the search input
func (m *Model) SetValue(value string) {
	m.textInput.SetValue(value)
	m.textInput.CursorEnd()
}

// Value returns the value of the search input
func (m Model) Value() string {
	return m.textInput.Value()
}
