package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/aniseek/internal/tui/common"
	"github.com/justchokingaround/aniseek/pkg/types"
)

func (a *App) titleURL(t types.Title) string {
	if a.details == nil {
		return t.ID
	}
	return a.details.TitleURL(t.ID)
}

// copyTitleURL copies the site URL of t and reports the outcome in the footer
func (a *App) copyTitleURL(t types.Title) tea.Cmd {
	if a.clip == nil {
		return nil
	}
	url := a.titleURL(t)
	ctx := a.ctx
	return func() tea.Msg {
		if err := a.clip.Write(ctx, url); err != nil {
			return common.StatusMsg{Text: "✗ copy failed: " + err.Error(), Error: true}
		}
		return common.StatusMsg{Text: "📋 " + t.DisplayName() + " URL copied to clipboard"}
	}
}

// openInBrowser opens the site page of t
func (a *App) openInBrowser(t types.Title) tea.Cmd {
	if a.openURL == nil {
		return nil
	}
	url := a.titleURL(t)
	return func() tea.Msg {
		if err := a.openURL(url); err != nil {
			return common.StatusMsg{Text: "✗ failed to open browser: " + url, Error: true}
		}
		return common.StatusMsg{Text: "✓ opened " + url}
	}
}

func (a *App) handleStatusMsg(msg common.StatusMsg) (tea.Model, tea.Cmd) {
	if msg.Error {
		a.logger.Warn(msg.Text)
	}
	a.statusMsg = msg.Text
	a.statusError = msg.Error
	a.statusSeq++
	seq := a.statusSeq
	return a, tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
