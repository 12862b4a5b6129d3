package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/aniseek/internal/allanime"
	"github.com/justchokingaround/aniseek/internal/clipboard"
	"github.com/justchokingaround/aniseek/internal/search"
	"github.com/justchokingaround/aniseek/internal/session"
	"github.com/justchokingaround/aniseek/internal/tui/common"
	"github.com/justchokingaround/aniseek/internal/tui/components/help"
	"github.com/justchokingaround/aniseek/internal/tui/components/results"
	searchbox "github.com/justchokingaround/aniseek/internal/tui/components/search"
	"github.com/justchokingaround/aniseek/internal/tui/components/title"
	"github.com/justchokingaround/aniseek/internal/tui/styles"
	"github.com/justchokingaround/aniseek/pkg/types"
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// clearStatusMsg clears the footer message it was scheduled for
type clearStatusMsg struct {
	seq int
}

const statusDuration = 2500 * time.Millisecond

// Details looks up a single title and its page URL
type Details interface {
	Show(ctx context.Context, id string) (*allanime.ShowDetails, error)
	TitleURL(id string) string
}

// Options wires the app to the rest of the program
type Options struct {
	Browser   *search.Browser
	Details   Details
	Clipboard clipboard.Service
	OpenURL   func(url string) error
	Logger    *slog.Logger
}

type App struct {
	ctx     context.Context
	browser *search.Browser
	state   *session.State
	details Details
	clip    clipboard.Service
	openURL func(string) error
	logger  *slog.Logger

	search  searchbox.Model
	results results.Model
	title   title.Model
	help    help.Model
	spinner spinner.Model

	focus    focusArea
	inflight int
	width    int
	height   int

	// Status message (shown briefly at bottom)
	statusMsg   string
	statusError bool
	statusSeq   int
}

func NewApp(ctx context.Context, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return &App{
		ctx:     ctx,
		browser: opts.Browser,
		state:   opts.Browser.State(),
		details: opts.Details,
		clip:    opts.Clipboard,
		openURL: opts.OpenURL,
		logger:  logger.With("component", "tui"),
		search:  searchbox.New(),
		results: results.New(),
		title:   title.New(),
		help:    help.New(),
		spinner: s,
		width:   80,
		height:  24,
	}
}

func (a *App) Init() tea.Cmd {
	a.browser.Mount()

	if term, ok := a.state.SearchTerm(); ok {
		a.search.SetValue(term)
	}

	cmds := []tea.Cmd{a.spinner.Tick}
	switch a.state.Mode() {
	case types.ModeTitle:
		a.setFocus(focusResults)
	case types.ModeEpisode:
		a.setFocus(focusResults)
		if t := a.state.CurrentTitle(); t != nil {
			cmds = append(cmds, a.fetchDetails(t.ID))
		}
	default:
		cmds = append(cmds, a.search.Init())
	}
	a.sync()

	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search, _ = a.search.Update(msg)
		a.results, _ = a.results.Update(msg)
		a.title, _ = a.title.Update(msg)
		a.help, _ = a.help.Update(msg)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case common.PerformSearchMsg:
		return a.handlePerformSearchMsg(msg)

	case common.SearchDoneMsg:
		return a.handleSearchDoneMsg(msg)

	case common.PageMsg:
		return a.handlePageMsg(msg)

	case common.TitleSelectedMsg:
		return a.handleTitleSelectedMsg(msg)

	case common.BackMsg:
		return a.handleBackMsg()

	case common.DetailsMsg:
		a.title, _ = a.title.Update(msg)
		return a, nil

	case common.FocusSearchMsg:
		return a, a.setFocus(focusSearch)

	case common.FocusResultsMsg:
		return a, a.setFocus(focusResults)

	case common.StatusMsg:
		return a.handleStatusMsg(msg)

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
			a.statusError = false
		}
		return a, nil
	}

	// cursor blink and other input internals
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

// sync copies session state and browser status into the components
func (a *App) sync() {
	status := a.browser.Status()
	dub := a.state.IsDub()

	a.search.SetToggles(a.state.SearchType(), dub)
	a.results.SetTitles(a.state.Titles())
	a.results.SetPage(status.Page, status.HasNextPage)
	a.results.SetDub(dub)

	current := a.state.CurrentTitle()
	url := ""
	if current != nil && a.details != nil {
		url = a.details.TitleURL(current.ID)
	}
	a.title.SetTitle(current, url)
	episode, _ := a.state.EpisodeNumber()
	a.title.SetEpisode(episode, dub)

	a.help.SetContext(a.helpContext())
}

func (a *App) helpContext() help.Context {
	switch {
	case a.focus == focusSearch:
		return help.SearchContext
	case a.state.Mode() == types.ModeEpisode:
		return help.TitleContext
	case a.state.Mode() == types.ModeTitle:
		return help.ResultsContext
	default:
		return help.GlobalContext
	}
}

func (a *App) setFocus(f focusArea) tea.Cmd {
	a.focus = f
	var cmd tea.Cmd
	if f == focusSearch {
		a.results.Blur()
		cmd = a.search.Focus()
	} else {
		a.search.Blur()
		a.results.Focus()
	}
	a.help.SetContext(a.helpContext())
	return cmd
}

// load runs fn off the update loop and reports back with a SearchDoneMsg
func (a *App) load(fn func(ctx context.Context) search.Result) tea.Cmd {
	a.inflight++
	ctx := a.ctx
	return func() tea.Msg {
		return common.SearchDoneMsg{Result: fn(ctx)}
	}
}

func (a *App) loading() bool {
	return a.inflight > 0 || a.browser.Status().Loading
}

func (a *App) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(styles.TitleStyle.Render("  ANISEEK  "))
	b.WriteString("\n\n")
	b.WriteString(a.search.View())
	b.WriteString("\n\n")

	if a.help.IsVisible() {
		b.WriteString(a.help.View())
		return b.String()
	}

	if a.loading() {
		b.WriteString("   " + a.spinner.View() + styles.MetadataStyle.Render(" searching..."))
		b.WriteString("\n\n")
	}

	if msg := a.browser.Status().Err; msg != "" {
		b.WriteString(styles.ErrorStyle.Render(msg))
		b.WriteString("\n\n")
	}

	switch a.state.Mode() {
	case types.ModeTitle:
		b.WriteString(a.results.View())
	case types.ModeEpisode:
		b.WriteString(a.title.View())
	default:
		if !a.loading() {
			b.WriteString(styles.HelpStyle.MarginLeft(3).Render("type a title and press enter, or tab for other listings"))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(a.help.ShortHelp()))

	if a.statusMsg != "" {
		footer := styles.FooterStyle
		if a.statusError {
			footer = footer.Foreground(styles.OxocarbonRed)
		}
		b.WriteString("\n\n" + footer.Render(a.statusMsg))
	}

	return b.String()
}
