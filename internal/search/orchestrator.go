package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/justchokingaround/aniseek/internal/allanime"
	"github.com/justchokingaround/aniseek/internal/session"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// ErrNoResults is returned when a query succeeds with an empty list
var ErrNoResults = errors.New("no search results")

// Client is the part of the allanime client the search layer needs
type Client interface {
	Shows(ctx context.Context, q allanime.Query) ([]types.Title, error)
	Do(ctx context.Context, q allanime.Query, out any) error
}

// Message converts a search failure into the text shown to the user
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoResults):
		return "No search results."
	default:
		return err.Error()
	}
}

// Outcome describes what a Run did
type Outcome struct {
	Titles  []types.Title
	Err     error
	Issued  bool // a query went out
	Stale   bool // a newer run started before this one finished; nothing was applied
	Cleared bool // empty text term, mode left the title list
}

// Orchestrator runs searches and moves their results into the session state
type Orchestrator struct {
	client   Client
	state    *session.State
	pageSize int
	logger   *slog.Logger

	// applyMu orders state writes between runs; mu guards the fields below
	// and is never held while the state is written.
	applyMu sync.Mutex
	mu      sync.Mutex
	loading bool
	errMsg  string
	gen     uint64
}

// NewOrchestrator creates an orchestrator writing results into state
func NewOrchestrator(client Client, state *session.State, pageSize int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		client:   client,
		state:    state,
		pageSize: pageSize,
		logger:   logger.With("component", "search"),
	}
}

// Loading reports whether a text search is in flight
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// Error returns the message of the last failed search, or ""
func (o *Orchestrator) Error() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

func (o *Orchestrator) queries() allanime.QueryBuilder {
	return allanime.QueryBuilder{PageSize: o.pageSize, Dub: o.state.IsDub()}
}

// Run searches kind at page. term is only used for text searches.
//
// new and random are not wired to a listing yet and issue nothing.
// popular issues its query but drops the response and every error.
func (o *Orchestrator) Run(ctx context.Context, kind types.SearchType, term string, page int) Outcome {
	if page < 1 {
		page = 1
	}

	q := o.queries().ForKind(kind, term, page)

	switch kind {
	case types.SearchNew, types.SearchRandom:
		o.supersede()
		o.logger.Debug("search type has no listing yet", "type", kind, "query", q.Name)
		return Outcome{}

	case types.SearchPopular:
		o.supersede()
		if err := o.client.Do(ctx, q, nil); err != nil {
			o.logger.Debug("popular query failed", "error", err)
		}
		return Outcome{Issued: true}
	}

	if strings.TrimSpace(term) == "" {
		o.applyMu.Lock()
		defer o.applyMu.Unlock()
		o.supersede()

		cleared := false
		if o.state.Mode() == types.ModeTitle {
			o.state.SetMode(types.ModeNone)
			cleared = true
		}
		return Outcome{Cleared: cleared}
	}

	gen := o.begin()
	o.logger.Info("searching", "term", term, "page", page)

	titles, err := o.client.Shows(ctx, q)
	if err == nil && len(titles) == 0 {
		err = ErrNoResults
	}

	return o.finish(gen, titles, err)
}

// supersede makes every run still in flight stale and drops its loading
// and error status
func (o *Orchestrator) supersede() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	o.loading = false
	o.errMsg = ""
}

// begin starts a text search: loading on, episode back to 1, titles and error cleared
func (o *Orchestrator) begin() uint64 {
	o.applyMu.Lock()
	defer o.applyMu.Unlock()

	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.loading = true
	o.errMsg = ""
	o.mu.Unlock()

	o.state.SetEpisodeNumber("1")
	o.state.SetTitles([]types.Title{})
	return gen
}

func (o *Orchestrator) finish(gen uint64, titles []types.Title, err error) Outcome {
	o.applyMu.Lock()
	defer o.applyMu.Unlock()

	o.mu.Lock()
	if gen != o.gen {
		current := o.gen
		o.mu.Unlock()
		o.logger.Debug("discarding stale search result", "generation", gen, "current", current)
		return Outcome{Titles: titles, Err: err, Issued: true, Stale: true}
	}
	o.loading = false
	o.errMsg = Message(err)
	o.mu.Unlock()

	if err != nil {
		if errors.Is(err, ErrNoResults) {
			o.logger.Info("search returned nothing")
		} else {
			o.logger.Warn("search failed", "error", err)
		}
		return Outcome{Err: err, Issued: true}
	}

	o.state.SetTitles(titles)
	o.state.SetCurrentTitle(nil)
	o.state.SetMode(types.ModeTitle)
	return Outcome{Titles: titles, Issued: true}
}
