package search

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/justchokingaround/aniseek/internal/allanime"
	"github.com/justchokingaround/aniseek/internal/session"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// Status is everything the presentation layer renders besides the session state
type Status struct {
	Loading     bool
	Err         string
	Page        int
	HasNextPage bool
}

// ShowPageControl reports whether the page control should be drawn at all
func (s Status) ShowPageControl() bool {
	return s.Page != 1 || s.HasNextPage
}

// Result is what a Load produced
type Result struct {
	Outcome
	Kind        types.SearchType
	Term        string
	Page        int
	HasNextPage bool
	Skipped     bool // a page move was refused at a boundary, nothing ran
}

// Browser couples the pager with the orchestrator. Every page change runs
// the search for the page plus a lookahead for the page after it.
type Browser struct {
	orch   *Orchestrator
	pager  *Pager
	state  *session.State
	client Client
	logger *slog.Logger

	loads atomic.Uint64
}

// NewBrowser creates a browser over state using client for queries
func NewBrowser(client Client, state *session.State, pageSize int, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{
		orch:   NewOrchestrator(client, state, pageSize, logger),
		pager:  NewPager(),
		state:  state,
		client: client,
		logger: logger.With("component", "browser"),
	}
}

// State returns the session state the browser writes to
func (b *Browser) State() *session.State {
	return b.state
}

// Status snapshots loading, error and paging
func (b *Browser) Status() Status {
	return Status{
		Loading:     b.orch.Loading(),
		Err:         b.orch.Error(),
		Page:        b.pager.Page(),
		HasNextPage: b.pager.HasNextPage(),
	}
}

// Mount resets paging. The restored session is shown as is; nothing is queried.
func (b *Browser) Mount() {
	b.pager.Reset()
}

// SetTerm changes the search term, resetting paging when it differs, and loads
func (b *Browser) SetTerm(ctx context.Context, term string) Result {
	if b.state.SetSearchTerm(term) {
		b.pager.Reset()
	}
	return b.Load(ctx)
}

// SetKind changes the search type, resetting paging when it differs, and loads
func (b *Browser) SetKind(ctx context.Context, kind types.SearchType) Result {
	if b.state.SetSearchType(kind) {
		b.pager.Reset()
	}
	return b.Load(ctx)
}

// NextPage advances and loads; refused without a next page
func (b *Browser) NextPage(ctx context.Context) Result {
	if !b.pager.Next() {
		return b.skipped()
	}
	return b.Load(ctx)
}

// PrevPage goes back and loads; refused on page 1
func (b *Browser) PrevPage(ctx context.Context) Result {
	if !b.pager.Previous() {
		return b.skipped()
	}
	return b.Load(ctx)
}

func (b *Browser) skipped() Result {
	term, _ := b.state.SearchTerm()
	return Result{
		Kind:        b.state.SearchType(),
		Term:        term,
		Page:        b.pager.Page(),
		HasNextPage: b.pager.HasNextPage(),
		Skipped:     true,
	}
}

// Load runs the search for the current term, type and page
func (b *Browser) Load(ctx context.Context) Result {
	load := b.loads.Add(1)
	kind := b.state.SearchType()
	term, _ := b.state.SearchTerm()
	page := b.pager.Page()

	res := Result{Kind: kind, Term: term, Page: page}

	switch {
	case kind == types.SearchNew || kind == types.SearchRandom:
		res.Outcome = b.orch.Run(ctx, kind, term, page)
		b.pager.SetHasNext(false)

	case kind == types.SearchPopular:
		res.Outcome = b.orch.Run(ctx, kind, term, page)

	case strings.TrimSpace(term) == "":
		res.Outcome = b.orch.Run(ctx, kind, term, page)

	default:
		var hasNext bool
		var g errgroup.Group
		g.Go(func() error {
			res.Outcome = b.orch.Run(ctx, kind, term, page)
			return nil
		})
		g.Go(func() error {
			next, err := b.client.Shows(ctx, allanime.QueryBuilder{PageSize: b.orch.pageSize, Dub: b.state.IsDub()}.Search(term, page+1))
			if err != nil {
				return err
			}
			hasNext = len(next) != 0
			return nil
		})
		if err := g.Wait(); err != nil {
			b.logger.Warn("lookahead failed, assuming last page", "term", term, "page", page+1, "error", err)
		}

		if b.loads.Load() == load {
			b.pager.SetHasNext(hasNext)
		}
	}

	res.HasNextPage = b.pager.HasNextPage()
	return res
}

// SelectTitle opens a title: it becomes current, mode switches to episode
// and the search term is cleared. No query runs.
func (b *Browser) SelectTitle(t types.Title) {
	b.state.SetCurrentTitle(&t)
	b.state.SetMode(types.ModeEpisode)
	if b.state.SetSearchTerm("") {
		b.pager.Reset()
	}
}

// Back leaves the title view for the list it came from, or for nothing
func (b *Browser) Back() {
	if b.state.Mode() != types.ModeEpisode {
		return
	}
	b.state.SetCurrentTitle(nil)
	if len(b.state.Titles()) > 0 {
		b.state.SetMode(types.ModeTitle)
		return
	}
	b.state.SetMode(types.ModeNone)
}
