package types

import (
	"fmt"
	"strings"
)

// AvailableEpisodes holds episode counts per translation
type AvailableEpisodes struct {
	Sub int `json:"sub"`
	Dub int `json:"dub"`
	Raw int `json:"raw"`
}

// Title is one browsable anime entry. Identity is the ID.
type Title struct {
	ID                string            `json:"_id"`
	Name              string            `json:"name"`
	EnglishName       string            `json:"englishName,omitempty"`
	NativeName        string            `json:"nativeName,omitempty"`
	Thumbnail         string            `json:"thumbnail,omitempty"`
	AvailableEpisodes AvailableEpisodes `json:"availableEpisodes"`
}

// DisplayName prefers the English name and falls back to the romanized one
func (t Title) DisplayName() string {
	if name := strings.TrimSpace(t.EnglishName); name != "" {
		return name
	}
	return strings.TrimSpace(t.Name)
}

// Episodes returns the episode count for the chosen translation
func (t Title) Episodes(dub bool) int {
	if dub {
		return t.AvailableEpisodes.Dub
	}
	return t.AvailableEpisodes.Sub
}

// Mode is the coarse view state
type Mode string

const (
	ModeNone    Mode = "none"
	ModeTitle   Mode = "title"   // title list
	ModeEpisode Mode = "episode" // single title
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	switch m {
	case ModeNone, ModeTitle, ModeEpisode:
		return true
	}
	return false
}

// SearchType is the category of listing requested
type SearchType string

const (
	SearchText    SearchType = "text"
	SearchNew     SearchType = "new"
	SearchPopular SearchType = "popular"
	SearchRandom  SearchType = "random"
)

// SearchTypes lists every search type in toggle order
var SearchTypes = []SearchType{SearchText, SearchNew, SearchPopular, SearchRandom}

// ParseSearchType converts a user supplied string into a SearchType
func ParseSearchType(s string) (SearchType, error) {
	st := SearchType(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return SearchText, nil
	}
	for _, known := range SearchTypes {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown search type %q (want text, new, popular or random)", s)
}

// Next returns the following search type, wrapping around
func (s SearchType) Next() SearchType {
	for i, known := range SearchTypes {
		if known == s {
			return SearchTypes[(i+1)%len(SearchTypes)]
		}
	}
	return SearchText
}
