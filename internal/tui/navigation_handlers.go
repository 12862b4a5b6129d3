package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/aniseek/internal/search"
	"github.com/justchokingaround/aniseek/internal/tui/common"
	"github.com/justchokingaround/aniseek/pkg/types"
)

func (a *App) handlePerformSearchMsg(msg common.PerformSearchMsg) (tea.Model, tea.Cmd) {
	term := msg.Query
	a.logger.Debug("search submitted", "term", term)
	return a, a.load(func(ctx context.Context) search.Result {
		return a.browser.SetTerm(ctx, term)
	})
}

func (a *App) handleSearchDoneMsg(msg common.SearchDoneMsg) (tea.Model, tea.Cmd) {
	if a.inflight > 0 {
		a.inflight--
	}
	r := msg.Result
	a.sync()

	if r.Stale || r.Skipped {
		return a, nil
	}

	// a fresh list takes the keyboard so it can be browsed right away
	if r.Issued && r.Err == nil && a.state.Mode() == types.ModeTitle && a.focus == focusSearch {
		return a, a.setFocus(focusResults)
	}
	return a, nil
}

func (a *App) handlePageMsg(msg common.PageMsg) (tea.Model, tea.Cmd) {
	status := a.browser.Status()
	if msg.Delta > 0 && !status.HasNextPage {
		return a, nil
	}
	if msg.Delta < 0 && status.Page <= 1 {
		return a, nil
	}

	return a, a.load(func(ctx context.Context) search.Result {
		if msg.Delta > 0 {
			return a.browser.NextPage(ctx)
		}
		return a.browser.PrevPage(ctx)
	})
}

func (a *App) handleTitleSelectedMsg(msg common.TitleSelectedMsg) (tea.Model, tea.Cmd) {
	a.browser.SelectTitle(msg.Title)
	a.search.SetValue("")
	focus := a.setFocus(focusResults)
	a.sync()
	return a, tea.Batch(focus, a.fetchDetails(msg.Title.ID))
}

func (a *App) handleBackMsg() (tea.Model, tea.Cmd) {
	a.browser.Back()
	a.sync()
	if a.state.Mode() == types.ModeTitle {
		return a, a.setFocus(focusResults)
	}
	return a, a.setFocus(focusSearch)
}

// fetchDetails loads description, status and genres of the open title
func (a *App) fetchDetails(id string) tea.Cmd {
	if a.details == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		d, err := a.details.Show(ctx, id)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				a.logger.Warn("failed to load title details", "id", id, "error", err)
			}
			return common.DetailsMsg{ID: id, Err: err}
		}
		return common.DetailsMsg{ID: id, Description: d.Description, Status: d.Status, Genres: d.Genres}
	}
}
