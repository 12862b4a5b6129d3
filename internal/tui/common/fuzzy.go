package common

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/justchokingaround/aniseek/internal/tui/styles"
)

// FuzzyFilter narrows the visible page of results without a new query.
// While editing it takes every key; locked it keeps the filter applied and
// hands keys back to the list.
type FuzzyFilter struct {
	input   textinput.Model
	active  bool
	editing bool
}

// NewFuzzyFilter creates an inactive filter
func NewFuzzyFilter() *FuzzyFilter {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = ""
	ti.CharLimit = 100
	ti.TextStyle = styles.MetadataStyle
	ti.PlaceholderStyle = styles.HelpStyle.UnsetMarginTop()

	return &FuzzyFilter{input: ti}
}

// Edit activates the filter, or reopens a locked one for editing
func (f *FuzzyFilter) Edit() tea.Cmd {
	if !f.active {
		f.input.SetValue("")
	}
	f.active = true
	f.editing = true
	f.input.Focus()
	return textinput.Blink
}

// Lock stops editing and keeps the current query applied
func (f *FuzzyFilter) Lock() {
	f.editing = false
	f.input.Blur()
}

// Clear removes the filter entirely
func (f *FuzzyFilter) Clear() {
	f.active = false
	f.editing = false
	f.input.Blur()
	f.input.SetValue("")
}

// Active reports whether a filter is applied
func (f *FuzzyFilter) Active() bool { return f.active }

// Editing reports whether keys go to the filter input
func (f *FuzzyFilter) Editing() bool { return f.active && f.editing }

// Query returns the filter text
func (f *FuzzyFilter) Query() string { return f.input.Value() }

// SetQuery replaces the filter text
func (f *FuzzyFilter) SetQuery(q string) { f.input.SetValue(q) }

// Update feeds a message to the input while editing
func (f *FuzzyFilter) Update(msg tea.Msg) tea.Cmd {
	if !f.Editing() {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// Match returns the indices of items matching the query, best match first.
// Without a query every index is returned in order.
func (f *FuzzyFilter) Match(items []string) []int {
	if !f.active || f.Query() == "" {
		all := make([]int, len(items))
		for i := range all {
			all[i] = i
		}
		return all
	}

	matches := fuzzy.Find(f.Query(), items)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	return idx
}

// View renders the filter line, empty when inactive
func (f *FuzzyFilter) View() string {
	if !f.active {
		return ""
	}
	label := styles.MetadataStyle.Render("filter: ")
	bar := styles.ItemSelectedTitleStyle.Render("┃ ")
	if !f.editing {
		return label + bar + styles.ItemTitleStyle.Render(f.Query()) +
			styles.HelpStyle.UnsetMarginTop().Render("  (/ edit • esc clear)")
	}
	return label + bar + f.input.View() + styles.HelpStyle.UnsetMarginTop().Render("  (enter/esc done)")
}
