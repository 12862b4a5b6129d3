package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/justchokingaround/aniseek/pkg/types"
)

// Persister writes the snapshot to a Store whenever the state changes.
// Sessions in mode none are never written, so an uninitialized session
// cannot overwrite a saved one.
type Persister struct {
	store  *Store
	logger *slog.Logger

	// mu serializes writes; each write reads the state inside it, so the
	// last write to finish always holds the newest state
	mu sync.Mutex
}

// NewPersister creates a persister writing to store
func NewPersister(store *Store, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	return &Persister{store: store, logger: logger.With("component", "session")}
}

// Attach subscribes the persister to state and returns the detach function
func (p *Persister) Attach(state *State) (detach func()) {
	return state.Subscribe(func(change Change) { p.handle(state, change) })
}

func (p *Persister) handle(state *State, change Change) {
	if !change.InSnapshot() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	snap := state.Snapshot()
	if snap.Mode == types.ModeNone {
		return
	}

	// Fire and forget: the setter that caused the change never sees a write failure
	if err := p.store.Save(context.Background(), snap); err != nil {
		p.logger.Error("failed to persist session", "field", change.Field, "error", err)
		return
	}
	p.logger.Debug("session persisted", "field", change.Field, "mode", snap.Mode)
}
