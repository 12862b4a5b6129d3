package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/aniseek/pkg/types"
)

func strPtr(s string) *string { return &s }

func sampleTitles() []types.Title {
	return []types.Title{
		{ID: "a1", Name: "Naruto", EnglishName: "Naruto", Thumbnail: "https://img/a1.jpg",
			AvailableEpisodes: types.AvailableEpisodes{Sub: 220, Dub: 220}},
		{ID: "b2", Name: "Naruto: Shippuuden", NativeName: "ナルト 疾風伝",
			AvailableEpisodes: types.AvailableEpisodes{Sub: 500, Dub: 500, Raw: 2}},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// failingKV fails every operation
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (failingKV) Set(context.Context, string, string) error { return errors.New("disk on fire") }
func (failingKV) Delete(context.Context, string) error      { return errors.New("disk on fire") }

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	titles := sampleTitles()

	snapshots := map[string]Snapshot{
		"title list": {
			Mode:          types.ModeTitle,
			Titles:        titles,
			IsDub:         true,
			EpisodeNumber: strPtr("1"),
			SearchTerm:    strPtr("naruto"),
		},
		"episode view": {
			Mode:          types.ModeEpisode,
			Titles:        titles,
			CurrentTitle:  &titles[1],
			EpisodeNumber: strPtr("12"),
			SearchTerm:    strPtr(""),
		},
		"empty title list": {
			Mode:   types.ModeTitle,
			Titles: []types.Title{},
		},
		"unset optionals": {
			Mode: types.ModeEpisode,
		},
	}

	for name, snap := range snapshots {
		t.Run(name, func(t *testing.T) {
			store := NewStore(NewMemoryKV())

			require.NoError(t, store.Save(ctx, snap))

			got, ok, err := store.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			if diff := cmp.Diff(snap, got); diff != "" {
				t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		_, ok, err := NewStore(NewMemoryKV()).Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	corrupt := map[string]string{
		"not json":          `{"mode":`,
		"wrong type":        `{"mode":"title","titles":"naruto"}`,
		"unknown mode":      `{"mode":"grid","titles":[]}`,
		"title without id":  `{"mode":"title","titles":[{"name":"Naruto"}]}`,
		"negative episodes": `{"mode":"title","titles":[{"_id":"a","availableEpisodes":{"sub":-1}}]}`,
		"unknown field":     `{"mode":"title","titles":[],"volume":11}`,
		"trailing data":     `{"mode":"title"}{"mode":"none"}`,
		"bad current title": `{"mode":"episode","currentTitle":{"name":"x"}}`,
	}

	for name, raw := range corrupt {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(ctx, StorageKey, raw))

			_, ok, err := NewStore(kv).Load(ctx)
			assert.False(t, ok)

			var corruptErr *CorruptSessionError
			require.ErrorAs(t, err, &corruptErr)
		})
	}

	t.Run("storage failure is not corruption", func(t *testing.T) {
		_, _, err := NewStore(failingKV{}).Load(ctx)
		require.Error(t, err)

		var corruptErr *CorruptSessionError
		assert.False(t, errors.As(err, &corruptErr))
	})
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	require.NoError(t, store.Save(ctx, Snapshot{Mode: types.ModeTitle}))
	require.NoError(t, store.Clear(ctx))

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateSetters(t *testing.T) {
	state := NewState()

	assert.Equal(t, types.ModeNone, state.Mode())
	assert.Equal(t, types.SearchText, state.SearchType())
	_, ok := state.SearchTerm()
	assert.False(t, ok)

	var changes []Field
	unsubscribe := state.Subscribe(func(c Change) { changes = append(changes, c.Field) })

	state.SetMode(types.ModeTitle)
	state.SetMode(types.ModeTitle) // unchanged, no notification
	assert.True(t, state.SetSearchTerm("naruto"))
	assert.False(t, state.SetSearchTerm("naruto"))
	assert.True(t, state.SetSearchType(types.SearchNew))
	assert.False(t, state.SetSearchType(types.SearchNew))
	state.SetIsDub(true)
	state.SetEpisodeNumber("1")
	state.SetEpisodeNumber("1")
	state.SetCurrentTitle(nil) // already nil
	state.SetTitles(sampleTitles())

	assert.Equal(t, []Field{FieldMode, FieldSearchTerm, FieldSearchType, FieldIsDub, FieldEpisodeNumber, FieldTitles}, changes)

	unsubscribe()
	state.SetMode(types.ModeNone)
	assert.Len(t, changes, 6)
}

func TestStateReturnsCopies(t *testing.T) {
	state := NewState()
	titles := sampleTitles()
	state.SetTitles(titles)

	titles[0].Name = "mutated by caller"
	got := state.Titles()
	assert.Equal(t, "Naruto", got[0].Name)

	got[1].Name = "mutated by reader"
	assert.Equal(t, "Naruto: Shippuuden", state.Titles()[1].Name)

	title := titles[1]
	state.SetCurrentTitle(&title)
	title.ID = "changed"
	assert.Equal(t, "b2", state.CurrentTitle().ID)
}

func TestPersister(t *testing.T) {
	ctx := context.Background()

	t.Run("does not write while mode is none", func(t *testing.T) {
		kv := NewMemoryKV()
		state := NewState()
		NewPersister(NewStore(kv), discardLogger()).Attach(state)

		state.SetSearchTerm("naruto")
		state.SetTitles(sampleTitles())
		state.SetIsDub(true)

		_, ok, _ := kv.Get(ctx, StorageKey)
		assert.False(t, ok)
	})

	t.Run("writes every snapshot change once mode is set", func(t *testing.T) {
		kv := NewMemoryKV()
		store := NewStore(kv)
		state := NewState()
		NewPersister(store, discardLogger()).Attach(state)

		state.SetTitles(sampleTitles())
		state.SetMode(types.ModeTitle)

		snap, ok, err := store.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, types.ModeTitle, snap.Mode)
		assert.Len(t, snap.Titles, 2)

		state.SetIsDub(true)
		snap, _, _ = store.Load(ctx)
		assert.True(t, snap.IsDub)
	})

	t.Run("search type alone does not write", func(t *testing.T) {
		kv := NewMemoryKV()
		state := NewState()
		state.SetMode(types.ModeTitle)
		NewPersister(NewStore(kv), discardLogger()).Attach(state)

		state.SetSearchType(types.SearchPopular)

		_, ok, _ := kv.Get(ctx, StorageKey)
		assert.False(t, ok)
	})

	t.Run("write failures are logged, not propagated", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		state := NewState()
		NewPersister(NewStore(failingKV{}), logger).Attach(state)

		assert.NotPanics(t, func() { state.SetMode(types.ModeTitle) })
		assert.Contains(t, buf.String(), "failed to persist session")
	})
}

// gatedKV holds the first Set until release is closed
type gatedKV struct {
	*MemoryKV
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedKV() *gatedKV {
	return &gatedKV{
		MemoryKV: NewMemoryKV(),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (g *gatedKV) Set(ctx context.Context, key, value string) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.MemoryKV.Set(ctx, key, value)
}

func TestPersisterKeepsNewestStateUnderConcurrentSetters(t *testing.T) {
	ctx := context.Background()
	kv := newGatedKV()
	store := NewStore(kv)

	state := NewState()
	state.Apply(Snapshot{Mode: types.ModeTitle, Titles: sampleTitles()})
	NewPersister(store, discardLogger()).Attach(state)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		state.SetIsDub(true)
	}()
	<-kv.entered

	go func() {
		defer wg.Done()
		state.SetSearchTerm("naruto")
	}()
	require.Eventually(t, func() bool {
		term, ok := state.SearchTerm()
		return ok && term == "naruto"
	}, time.Second, time.Millisecond)

	close(kv.release)
	wg.Wait()

	snap, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, snap.IsDub)
	require.NotNil(t, snap.SearchTerm)
	assert.Equal(t, "naruto", *snap.SearchTerm)
	if diff := cmp.Diff(state.Snapshot(), snap); diff != "" {
		t.Errorf("stored snapshot differs from state (-state +stored):\n%s", diff)
	}
}

func TestHydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies saved snapshot verbatim", func(t *testing.T) {
		store := NewStore(NewMemoryKV())
		titles := sampleTitles()
		saved := Snapshot{
			Mode:          types.ModeEpisode,
			Titles:        titles,
			CurrentTitle:  &titles[0],
			IsDub:         true,
			EpisodeNumber: strPtr("3"),
			SearchTerm:    strPtr(""),
		}
		require.NoError(t, store.Save(ctx, saved))

		state := NewState()
		require.NoError(t, state.Hydrate(ctx, store, discardLogger()))

		if diff := cmp.Diff(saved, state.Snapshot()); diff != "" {
			t.Errorf("hydrated state mismatch (-want +got):\n%s", diff)
		}
		ep, ok := state.EpisodeNumber()
		assert.True(t, ok)
		assert.Equal(t, "3", ep)
	})

	t.Run("empty storage keeps defaults", func(t *testing.T) {
		state := NewState()
		require.NoError(t, state.Hydrate(ctx, NewStore(NewMemoryKV()), discardLogger()))

		assert.Equal(t, types.ModeNone, state.Mode())
		assert.Nil(t, state.Titles())
	})

	t.Run("corrupt storage keeps defaults", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(ctx, StorageKey, "{not json"))

		var buf bytes.Buffer
		state := NewState()
		require.NoError(t, state.Hydrate(ctx, NewStore(kv), slog.New(slog.NewTextHandler(&buf, nil))))

		assert.Equal(t, types.ModeNone, state.Mode())
		assert.Contains(t, buf.String(), "ignoring corrupt session data")
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		state := NewState()
		err := state.Hydrate(ctx, NewStore(failingKV{}), discardLogger())
		require.Error(t, err)
	})
}
