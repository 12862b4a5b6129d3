package common

import (
	"github.com/justchokingaround/aniseek/internal/search"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// Custom tea.Msg types passed between the app and its components.

// PerformSearchMsg submits the search box
type PerformSearchMsg struct {
	Query string
}

// SearchDoneMsg carries the result of a load started by the app
type SearchDoneMsg struct {
	Result search.Result
}

// PageMsg asks for the previous (-1) or next (+1) page
type PageMsg struct {
	Delta int
}

// TitleSelectedMsg is sent when enter is pressed on a result
type TitleSelectedMsg struct {
	Title types.Title
}

// FocusSearchMsg moves keyboard focus to the search box
type FocusSearchMsg struct{}

// FocusResultsMsg moves keyboard focus to the result list
type FocusResultsMsg struct{}

// StatusMsg shows a short lived message in the footer
type StatusMsg struct {
	Text  string
	Error bool
}

// BackMsg leaves the title view
type BackMsg struct{}

// DetailsMsg carries the details fetched for the open title
type DetailsMsg struct {
	ID          string
	Description string
	Status      string
	Genres      []string
	Err         error
}
