package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/aniseek/internal/search"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// handleKeyMsg routes keyboard input. Global keys come first, then the
// focused component gets the key.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	if a.help.IsVisible() {
		a.help, _ = a.help.Update(msg)
		return a, nil
	}

	switch msg.String() {
	case "tab":
		kind := a.state.SearchType().Next()
		a.logger.Debug("search type changed", "type", kind)
		cmd := a.load(func(ctx context.Context) search.Result { return a.browser.SetKind(ctx, kind) })
		a.sync()
		return a, cmd
	case "ctrl+d":
		a.state.SetIsDub(!a.state.IsDub())
		a.sync()
		return a, nil
	}

	if a.focus == focusSearch {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}

	if a.state.Mode() == types.ModeTitle && a.results.Filtering() {
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.help.Show()
		return a, nil
	case "s":
		return a, a.setFocus(focusSearch)
	case "o":
		if t, ok := a.focusedTitle(); ok {
			return a, a.openInBrowser(t)
		}
		return a, nil
	case "y":
		if t, ok := a.focusedTitle(); ok {
			return a, a.copyTitleURL(t)
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state.Mode() {
	case types.ModeTitle:
		a.results, cmd = a.results.Update(msg)
	case types.ModeEpisode:
		a.title, cmd = a.title.Update(msg)
	}
	return a, cmd
}

// focusedTitle is the title the action keys apply to: the open title in the
// title view, the one under the cursor in the list
func (a *App) focusedTitle() (types.Title, bool) {
	switch a.state.Mode() {
	case types.ModeEpisode:
		if t := a.state.CurrentTitle(); t != nil {
			return *t, true
		}
	case types.ModeTitle:
		return a.results.Selected()
	}
	return types.Title{}, false
}
