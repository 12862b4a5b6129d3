package common

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeText(f *FuzzyFilter, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFuzzyFilter(t *testing.T) {
	items := []string{"Naruto", "Naruto: Shippuuden", "Bleach", "Boruto: Naruto Next Generations"}

	f := NewFuzzyFilter()
	assert.False(t, f.Active())
	assert.Equal(t, []int{0, 1, 2, 3}, f.Match(items))
	assert.Empty(t, f.View())

	f.Edit()
	assert.True(t, f.Editing())
	typeText(f, "blch")
	assert.Equal(t, "blch", f.Query())
	assert.Equal(t, []int{2}, f.Match(items))

	f.Lock()
	assert.True(t, f.Active())
	assert.False(t, f.Editing())
	typeText(f, "zzz") // ignored while locked
	assert.Equal(t, "blch", f.Query())
	assert.Contains(t, f.View(), "blch")

	// reopening keeps the query
	f.Edit()
	assert.Equal(t, "blch", f.Query())

	f.Clear()
	assert.False(t, f.Active())
	assert.Len(t, f.Match(items), 4)
}

func TestFuzzyFilterRanksMatches(t *testing.T) {
	f := NewFuzzyFilter()
	f.Edit()
	f.SetQuery("naruto")

	got := f.Match([]string{"Bleach", "Naruto", "Boruto: Naruto Next Generations"})
	assert.ElementsMatch(t, []int{1, 2}, got)
	assert.Equal(t, 1, got[0], "exact prefix match ranks first")
}
