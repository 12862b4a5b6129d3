package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/justchokingaround/aniseek/pkg/types"
)

// StorageKey is the single key the whole session snapshot lives under
const StorageKey = "settings"

// KV is a synchronous key/value text store
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Snapshot is the persisted subset of the session state
type Snapshot struct {
	Mode          types.Mode    `json:"mode"`
	Titles        []types.Title `json:"titles"`
	CurrentTitle  *types.Title  `json:"currentTitle,omitempty"`
	IsDub         bool          `json:"isDub"`
	EpisodeNumber *string       `json:"episodeNumber,omitempty"`
	SearchTerm    *string       `json:"searchTerm,omitempty"`
}

// CorruptSessionError reports stored session data that cannot be used
type CorruptSessionError struct {
	Err error
}

func (e *CorruptSessionError) Error() string {
	return fmt.Sprintf("corrupt session data: %v", e.Err)
}

func (e *CorruptSessionError) Unwrap() error {
	return e.Err
}

// Store serializes snapshots into a KV under StorageKey
type Store struct {
	kv KV
}

// NewStore creates a snapshot store on kv
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save overwrites the stored snapshot
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored snapshot. The bool is false when nothing is stored.
// Unusable content yields a *CorruptSessionError.
func (s *Store) Load(ctx context.Context) (Snapshot, bool, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok || raw == "" {
		return Snapshot{}, false, nil
	}

	snap, err := decodeSnapshot([]byte(raw))
	if err != nil {
		return Snapshot{}, false, &CorruptSessionError{Err: err}
	}
	return snap, true, nil
}

// Clear removes the stored snapshot
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func decodeSnapshot(data []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, err
	}
	if dec.More() {
		return Snapshot{}, errors.New("trailing data after snapshot")
	}
	if err := snap.validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s Snapshot) validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	for i, t := range s.Titles {
		if err := validateTitle(t); err != nil {
			return fmt.Errorf("titles[%d]: %w", i, err)
		}
	}
	if s.CurrentTitle != nil {
		if err := validateTitle(*s.CurrentTitle); err != nil {
			return fmt.Errorf("currentTitle: %w", err)
		}
	}
	return nil
}

func validateTitle(t types.Title) error {
	if t.ID == "" {
		return errors.New("title has no id")
	}
	ep := t.AvailableEpisodes
	if ep.Sub < 0 || ep.Dub < 0 || ep.Raw < 0 {
		return fmt.Errorf("title %s has a negative episode count", t.ID)
	}
	return nil
}

// MemoryKV is an in-process KV
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory KV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KV
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete implements KV
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
