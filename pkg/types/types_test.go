package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		title Title
		want  string
	}{
		{"english preferred", Title{Name: "Shingeki no Kyojin", EnglishName: "Attack on Titan"}, "Attack on Titan"},
		{"falls back to name", Title{Name: "Naruto"}, "Naruto"},
		{"blank english ignored", Title{Name: " Bleach ", EnglishName: "  "}, "Bleach"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.title.DisplayName())
		})
	}
}

func TestTitleDecodesWireFormat(t *testing.T) {
	raw := `{"_id":"abc","name":"Naruto","englishName":"Naruto","thumbnail":"https://img/x.jpg",
		"availableEpisodes":{"sub":220,"dub":220,"raw":0},"__typename":"Show"}`

	var title Title
	require.NoError(t, json.Unmarshal([]byte(raw), &title))

	assert.Equal(t, "abc", title.ID)
	assert.Equal(t, 220, title.Episodes(true))
	assert.Equal(t, 220, title.Episodes(false))
}

func TestParseSearchType(t *testing.T) {
	st, err := ParseSearchType("Popular")
	require.NoError(t, err)
	assert.Equal(t, SearchPopular, st)

	st, err = ParseSearchType("")
	require.NoError(t, err)
	assert.Equal(t, SearchText, st)

	_, err = ParseSearchType("trending")
	assert.Error(t, err)
}

func TestSearchTypeNextCycles(t *testing.T) {
	st := SearchText
	seen := []SearchType{st}
	for range SearchTypes {
		st = st.Next()
		seen = append(seen, st)
	}
	assert.Equal(t, []SearchType{SearchText, SearchNew, SearchPopular, SearchRandom, SearchText}, seen)
}

func TestModeValid(t *testing.T) {
	assert.True(t, ModeNone.Valid())
	assert.True(t, ModeTitle.Valid())
	assert.True(t, ModeEpisode.Valid())
	assert.False(t, Mode("grid").Valid())
}
