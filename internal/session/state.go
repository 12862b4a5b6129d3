package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/justchokingaround/aniseek/pkg/types"
)

// Field names a piece of session state in change notifications
type Field string

const (
	FieldAll           Field = "all" // whole snapshot applied at once
	FieldMode          Field = "mode"
	FieldTitles        Field = "titles"
	FieldCurrentTitle  Field = "currentTitle"
	FieldIsDub         Field = "isDub"
	FieldEpisodeNumber Field = "episodeNumber"
	FieldSearchTerm    Field = "searchTerm"
	FieldSearchType    Field = "searchType"
)

// Change is delivered to subscribers after a setter modified the state
type Change struct {
	Field    Field
	Snapshot Snapshot
}

// InSnapshot reports whether the changed field is part of the persisted snapshot
func (c Change) InSnapshot() bool {
	return c.Field != FieldSearchType
}

// State is the session state container. One instance exists per application
// session and is passed explicitly to whatever needs it. Setters are the only
// mutation path and are safe for concurrent use.
type State struct {
	mu            sync.RWMutex
	mode          types.Mode
	titles        []types.Title
	currentTitle  *types.Title
	isDub         bool
	episodeNumber *string
	searchTerm    *string
	searchType    types.SearchType

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

// NewState creates a state with defaults: mode none, text search, no titles
func NewState() *State {
	return &State{
		mode:       types.ModeNone,
		searchType: types.SearchText,
		subs:       make(map[int]func(Change)),
	}
}

// Hydrate applies the stored snapshot, if any, verbatim. Corrupt data is
// logged and the defaults are kept; the next save overwrites it.
func (s *State) Hydrate(ctx context.Context, store *Store, logger *slog.Logger) error {
	snap, ok, err := store.Load(ctx)
	if err != nil {
		var corrupt *CorruptSessionError
		if errors.As(err, &corrupt) {
			logger.Warn("ignoring corrupt session data", "error", corrupt.Err)
			return nil
		}
		return err
	}
	if !ok {
		logger.Debug("no saved session")
		return nil
	}

	s.Apply(snap)
	logger.Debug("session restored", "mode", snap.Mode, "titles", len(snap.Titles))
	return nil
}

// Subscribe registers fn for change notifications and returns a function that removes it.
// fn runs synchronously on the goroutine that called the setter.
func (s *State) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *State) notify(field Field) {
	change := Change{Field: field, Snapshot: s.Snapshot()}

	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// Snapshot returns a copy of the persisted subset of the state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Mode:          s.mode,
		Titles:        cloneTitles(s.titles),
		CurrentTitle:  clonePtr(s.currentTitle),
		IsDub:         s.isDub,
		EpisodeNumber: clonePtr(s.episodeNumber),
		SearchTerm:    clonePtr(s.searchTerm),
	}
}

// Apply replaces every snapshot field at once
func (s *State) Apply(snap Snapshot) {
	s.mu.Lock()
	s.mode = snap.Mode
	s.titles = cloneTitles(snap.Titles)
	s.currentTitle = clonePtr(snap.CurrentTitle)
	s.isDub = snap.IsDub
	s.episodeNumber = clonePtr(snap.EpisodeNumber)
	s.searchTerm = clonePtr(snap.SearchTerm)
	s.mu.Unlock()

	s.notify(FieldAll)
}

// Mode returns the current view mode
func (s *State) Mode() types.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode changes the view mode
func (s *State) SetMode(mode types.Mode) {
	s.mu.Lock()
	if s.mode == mode {
		s.mu.Unlock()
		return
	}
	s.mode = mode
	s.mu.Unlock()

	s.notify(FieldMode)
}

// Titles returns a copy of the current title list
func (s *State) Titles() []types.Title {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTitles(s.titles)
}

// SetTitles replaces the title list. Every call notifies.
func (s *State) SetTitles(titles []types.Title) {
	s.mu.Lock()
	s.titles = cloneTitles(titles)
	s.mu.Unlock()

	s.notify(FieldTitles)
}

// CurrentTitle returns the selected title or nil
func (s *State) CurrentTitle() *types.Title {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePtr(s.currentTitle)
}

// SetCurrentTitle selects a title; nil clears the selection
func (s *State) SetCurrentTitle(t *types.Title) {
	s.mu.Lock()
	if s.currentTitle == nil && t == nil {
		s.mu.Unlock()
		return
	}
	s.currentTitle = clonePtr(t)
	s.mu.Unlock()

	s.notify(FieldCurrentTitle)
}

// IsDub reports whether dubbed episodes are preferred
func (s *State) IsDub() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isDub
}

// SetIsDub sets the dub preference
func (s *State) SetIsDub(dub bool) {
	s.mu.Lock()
	if s.isDub == dub {
		s.mu.Unlock()
		return
	}
	s.isDub = dub
	s.mu.Unlock()

	s.notify(FieldIsDub)
}

// EpisodeNumber returns the selected episode and whether one is set
func (s *State) EpisodeNumber() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deref(s.episodeNumber)
}

// SetEpisodeNumber selects an episode
func (s *State) SetEpisodeNumber(ep string) {
	s.mu.Lock()
	if s.episodeNumber != nil && *s.episodeNumber == ep {
		s.mu.Unlock()
		return
	}
	s.episodeNumber = &ep
	s.mu.Unlock()

	s.notify(FieldEpisodeNumber)
}

// SearchTerm returns the search term and whether one was ever set
func (s *State) SearchTerm() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deref(s.searchTerm)
}

// SetSearchTerm changes the search term and reports whether it differs from the previous one
func (s *State) SetSearchTerm(term string) bool {
	s.mu.Lock()
	if s.searchTerm != nil && *s.searchTerm == term {
		s.mu.Unlock()
		return false
	}
	s.searchTerm = &term
	s.mu.Unlock()

	s.notify(FieldSearchTerm)
	return true
}

// SearchType returns the listing category
func (s *State) SearchType() types.SearchType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchType
}

// SetSearchType changes the listing category and reports whether it changed
func (s *State) SetSearchType(st types.SearchType) bool {
	s.mu.Lock()
	if s.searchType == st {
		s.mu.Unlock()
		return false
	}
	s.searchType = st
	s.mu.Unlock()

	s.notify(FieldSearchType)
	return true
}

func cloneTitles(in []types.Title) []types.Title {
	if in == nil {
		return nil
	}
	return slices.Clone(in)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}
