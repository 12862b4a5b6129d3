package help

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/aniseek/internal/tui/styles"
)

// Context is the part of the screen that has the keyboard
type Context int

const (
	GlobalContext Context = iota
	SearchContext
	ResultsContext
	TitleContext
)

// Shortcut is a key with what it does and where it applies
type Shortcut struct {
	Key         string
	Description string
	Contexts    []Context
	Short       bool // shown in the one-line hint under the view
}

var shortcuts = []Shortcut{
	{Key: "tab", Description: "Cycle search type", Contexts: []Context{GlobalContext}, Short: true},
	{Key: "ctrl+d", Description: "Toggle sub/dub", Contexts: []Context{GlobalContext}, Short: true},
	{Key: "?", Description: "Show/hide this help", Contexts: []Context{GlobalContext}},
	{Key: "ctrl+c", Description: "Quit", Contexts: []Context{GlobalContext}},

	{Key: "enter", Description: "Search", Contexts: []Context{SearchContext}, Short: true},
	{Key: "esc/↓", Description: "Go to results", Contexts: []Context{SearchContext}, Short: true},

	{Key: "↑/↓ or j/k", Description: "Move cursor", Contexts: []Context{ResultsContext}},
	{Key: "enter", Description: "Open title", Contexts: []Context{ResultsContext}, Short: true},
	{Key: "←/→ or [/]", Description: "Previous/next page", Contexts: []Context{ResultsContext}, Short: true},
	{Key: "/", Description: "Filter this page", Contexts: []Context{ResultsContext}, Short: true},
	{Key: "s", Description: "Focus search box", Contexts: []Context{ResultsContext, TitleContext}},
	{Key: "o", Description: "Open title in browser", Contexts: []Context{ResultsContext, TitleContext}, Short: true},
	{Key: "y", Description: "Copy title URL", Contexts: []Context{ResultsContext, TitleContext}, Short: true},
	{Key: "esc", Description: "Clear filter / back to search", Contexts: []Context{ResultsContext}},
	{Key: "q", Description: "Quit", Contexts: []Context{ResultsContext, TitleContext}, Short: true},

	{Key: "esc", Description: "Back to results", Contexts: []Context{TitleContext}, Short: true},
}

// Model is the help overlay
type Model struct {
	context Context
	visible bool
	width   int
}

func New() Model {
	return Model{width: 80}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "?", "esc", "q":
			m.visible = false
		}
	}
	return m, nil
}

// SetContext selects which shortcuts are listed
func (m *Model) SetContext(ctx Context) {
	m.context = ctx
}

func (m *Model) Show()          { m.visible = true }
func (m *Model) Hide()          { m.visible = false }
func (m Model) IsVisible() bool { return m.visible }

// Relevant returns the shortcuts of the current context followed by the global ones
func (m Model) Relevant() []Shortcut {
	var local, global []Shortcut
	for _, sc := range shortcuts {
		switch {
		case applies(sc, m.context) && m.context != GlobalContext:
			local = append(local, sc)
		case applies(sc, GlobalContext):
			global = append(global, sc)
		}
	}
	return append(local, global...)
}

// ShortHelp is the single hint line for the current context
func (m Model) ShortHelp() string {
	var parts []string
	for _, sc := range m.Relevant() {
		if sc.Short {
			parts = append(parts, sc.Key+" "+strings.ToLower(sc.Description))
		}
	}
	return "  " + strings.Join(parts, " • ")
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.OxocarbonPurple).Bold(true).Width(14)
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf(" HELP: %s ", m.contextName())))
	b.WriteString("\n\n")
	for _, sc := range m.Relevant() {
		b.WriteString(keyStyle.Render(sc.Key))
		b.WriteString(styles.MetadataStyle.Render(sc.Description))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render("? or esc to close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OxocarbonPurple).
		Padding(1, 2).
		MarginLeft(3).
		Width(min(m.width-8, 70)).
		Render(b.String())
}

func (m Model) contextName() string {
	switch m.context {
	case SearchContext:
		return "SEARCH"
	case ResultsContext:
		return "RESULTS"
	case TitleContext:
		return "TITLE"
	default:
		return "GLOBAL"
	}
}

func applies(sc Shortcut, ctx Context) bool {
	for _, c := range sc.Contexts {
		if c == ctx {
			return true
		}
	}
	return false
}
