package title

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/aniseek/internal/tui/common"
	"github.com/justchokingaround/aniseek/internal/tui/styles"
	"github.com/justchokingaround/aniseek/internal/tui/utils"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// Model shows a single title
type Model struct {
	title   *types.Title
	episode string
	dub     bool
	url     string

	details *common.DetailsMsg
	width   int
}

func New() Model {
	return Model{width: 80}
}

// SetTitle changes the title on display. Details of a different title are dropped.
func (m *Model) SetTitle(t *types.Title, url string) {
	if t == nil || m.details == nil || m.details.ID != t.ID {
		m.details = nil
	}
	m.title = t
	m.url = url
}

// SetEpisode sets the selected episode and translation
func (m *Model) SetEpisode(episode string, dub bool) {
	m.episode = episode
	m.dub = dub
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case common.DetailsMsg:
		if m.title != nil && msg.ID == m.title.ID {
			m.details = &msg
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return common.BackMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.title == nil {
		return ""
	}
	t := m.title
	inner := max(m.width-10, 30)

	var b strings.Builder
	b.WriteString(styles.ItemSelectedTitleStyle.Render(utils.Truncate(t.DisplayName(), inner)))
	b.WriteString("\n")

	for _, alt := range []string{t.Name, t.NativeName} {
		if alt != "" && alt != t.DisplayName() {
			b.WriteString(styles.MetadataStyle.Render(utils.Truncate(alt, inner)) + "\n")
		}
	}
	b.WriteString("\n")

	eps := t.AvailableEpisodes
	b.WriteString(styles.EpisodeCountStyle.Render(fmt.Sprintf("sub %d • dub %d • raw %d", eps.Sub, eps.Dub, eps.Raw)))
	b.WriteString("\n")

	translation := "sub"
	if m.dub {
		translation = "dub"
	}
	if m.episode != "" {
		b.WriteString(styles.MetadataStyle.Render(fmt.Sprintf("episode %s of %d (%s)", m.episode, t.Episodes(m.dub), translation)))
		b.WriteString("\n")
	}

	switch {
	case m.details == nil:
	case m.details.Err != nil:
		b.WriteString("\n" + styles.ErrorStyle.UnsetMarginLeft().Render("details unavailable: "+m.details.Err.Error()) + "\n")
	default:
		if m.details.Status != "" || len(m.details.Genres) > 0 {
			b.WriteString("\n")
			if m.details.Status != "" {
				b.WriteString(styles.Badge(m.details.Status, true))
			}
			for _, g := range m.details.Genres {
				b.WriteString(styles.Badge(g, false))
			}
			b.WriteString("\n")
		}
		if m.details.Description != "" {
			b.WriteString("\n")
			for _, para := range strings.Split(m.details.Description, "\n") {
				b.WriteString(styles.MetadataStyle.Italic(true).Render(strings.Join(utils.Wrap(para, inner), "\n")))
				b.WriteString("\n")
			}
		}
	}

	if m.url != "" {
		b.WriteString("\n" + styles.URLStyle.Render(m.url))
	}
	if t.Thumbnail != "" {
		b.WriteString("\n" + styles.URLStyle.Render(utils.Truncate(t.Thumbnail, inner)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OxocarbonPurple).
		Padding(0, 1).
		MarginLeft(3).
		Render(b.String())
}
