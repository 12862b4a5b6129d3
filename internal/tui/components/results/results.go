package results

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/aniseek/internal/tui/common"
	"github.com/justchokingaround/aniseek/internal/tui/styles"
	"github.com/justchokingaround/aniseek/internal/tui/utils"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// Model lists one page of titles with a cursor, a fuzzy filter over the
// page and the page control
type Model struct {
	titles  []types.Title
	visible []int // indices into titles after filtering
	cursor  int
	dub     bool

	page        int
	hasNextPage bool

	filter  *common.FuzzyFilter
	focused bool
	width   int
	height  int
}

func New() Model {
	return Model{
		filter: common.NewFuzzyFilter(),
		page:   1,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetTitles replaces the list. The cursor goes back to the top when the
// titles differ from what is shown.
func (m *Model) SetTitles(titles []types.Title) {
	if !sameTitles(m.titles, titles) {
		m.cursor = 0
		m.filter.Clear()
	}
	m.titles = titles
	m.refilter()
}

// SetPage updates the page control
func (m *Model) SetPage(page int, hasNextPage bool) {
	m.page = page
	m.hasNextPage = hasNextPage
}

// SetDub selects which episode count is shown
func (m *Model) SetDub(dub bool) {
	m.dub = dub
}

// Focus gives the list the keyboard
func (m *Model) Focus() { m.focused = true }

// Blur takes the keyboard away, locking an open filter
func (m *Model) Blur() {
	m.focused = false
	if m.filter.Editing() {
		m.filter.Lock()
	}
}

// Focused reports whether the list has the keyboard
func (m Model) Focused() bool { return m.focused }

// Filtering reports whether keys go to the filter input
func (m Model) Filtering() bool { return m.filter.Editing() }

// Selected returns the title under the cursor
func (m Model) Selected() (types.Title, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return types.Title{}, false
	}
	return m.titles[m.visible[m.cursor]], true
}

// Visible returns the titles left after filtering, in display order
func (m Model) Visible() []types.Title {
	out := make([]types.Title, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.titles[idx]
	}
	return out
}

func (m *Model) refilter() {
	names := make([]string, len(m.titles))
	for i, t := range m.titles {
		names[i] = t.DisplayName() + " " + t.Name
	}
	m.visible = m.filter.Match(names)
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.filter.Editing() {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.visible)-1, 0)
		case "left", "h", "[":
			return m, pageCmd(-1)
		case "right", "l", "]":
			return m, pageCmd(1)
		case "/":
			return m, m.filter.Edit()
		case "enter":
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return common.TitleSelectedMsg{Title: t} }
			}
		case "esc":
			if m.filter.Active() {
				m.filter.Clear()
				m.refilter()
				return m, nil
			}
			return m, func() tea.Msg { return common.FocusSearchMsg{} }
		}
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filter.Lock()
		if m.filter.Query() == "" {
			m.filter.Clear()
		}
		m.refilter()
		return m, nil
	}

	cmd := m.filter.Update(msg)
	m.cursor = 0
	m.refilter()
	return m, cmd
}

func pageCmd(delta int) tea.Cmd {
	return func() tea.Msg { return common.PageMsg{Delta: delta} }
}

// ShowPageControl reports whether the page control is drawn
func (m Model) ShowPageControl() bool {
	return m.page != 1 || m.hasNextPage
}

// PageControl renders "‹ page N ›" with unavailable directions dimmed
func (m Model) PageControl() string {
	prev := styles.PageArrowStyle.Render("‹")
	if m.page == 1 {
		prev = styles.PageArrowDisabledStyle.Render("‹")
	}
	next := styles.PageArrowStyle.Render("›")
	if !m.hasNextPage {
		next = styles.PageArrowDisabledStyle.Render("›")
	}
	return styles.PageControlStyle.Render(fmt.Sprintf("%s │ page %d │ %s", prev, m.page, next))
}

func (m Model) View() string {
	var b strings.Builder

	if fv := m.filter.View(); fv != "" {
		b.WriteString("   " + fv + "\n\n")
	}

	if len(m.visible) == 0 {
		if m.filter.Active() {
			b.WriteString(styles.HelpStyle.MarginLeft(3).Render("no titles match the filter"))
		}
		return b.String()
	}

	// two lines per entry plus chrome
	perScreen := max((m.height-14)/2, 3)
	start := 0
	if m.cursor >= perScreen {
		start = m.cursor - perScreen + 1
	}
	end := min(start+perScreen, len(m.visible))

	nameWidth := max(m.width-20, 20)
	for i := start; i < end; i++ {
		t := m.titles[m.visible[i]]
		b.WriteString(m.renderItem(t, i == m.cursor, nameWidth))
		b.WriteString("\n")
	}

	if len(m.visible) > perScreen {
		b.WriteString(styles.HelpStyle.MarginLeft(3).Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(m.visible))))
		b.WriteString("\n")
	}

	if m.ShowPageControl() {
		b.WriteString("\n" + m.PageControl())
	}

	return b.String()
}

func (m Model) renderItem(t types.Title, selected bool, width int) string {
	nameStyle := styles.ItemTitleStyle
	box := styles.ItemStyle
	if selected && m.focused {
		nameStyle = styles.ItemSelectedTitleStyle
		box = styles.ItemSelectedStyle
	}

	name := nameStyle.Render(utils.Truncate(t.DisplayName(), width))

	translation := "sub"
	if m.dub {
		translation = "dub"
	}
	meta := styles.EpisodeCountStyle.Render(fmt.Sprintf("%d %s", t.Episodes(m.dub), translation))
	if t.EnglishName != "" && t.Name != "" && t.EnglishName != t.Name {
		meta += styles.MetadataStyle.Render("  " + utils.Truncate(t.Name, width-10))
	}

	return box.Render(name + "\n" + meta)
}

func sameTitles(a, b []types.Title) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
