package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestRelevantPutsContextFirst(t *testing.T) {
	m := New()
	m.SetContext(ResultsContext)

	got := m.Relevant()
	assert.Equal(t, "↑/↓ or j/k", got[0].Key)
	assert.Equal(t, "ctrl+c", got[len(got)-1].Key)

	for _, sc := range got {
		assert.NotEqual(t, "Back to results", sc.Description, "title shortcuts leak into results")
	}
}

func TestShortHelp(t *testing.T) {
	m := New()
	m.SetContext(SearchContext)

	line := m.ShortHelp()
	assert.Contains(t, line, "enter search")
	assert.Contains(t, line, "tab cycle search type")
	assert.NotContains(t, line, "/ filter")
}

func TestViewToggle(t *testing.T) {
	m := New()
	m.width = 80
	m.SetContext(TitleContext)
	assert.Empty(t, m.View())

	m.Show()
	view := m.View()
	assert.Contains(t, view, "HELP: TITLE")
	assert.Contains(t, view, "Copy title URL")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsVisible())
}
