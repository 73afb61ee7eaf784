// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// SearchRequested asks the search view to run a search for Keyword.
type SearchRequested struct {
	Keyword string
}

// SearchCompleted carries a search report back to the model. Seq
// identifies the search that produced it.
type SearchCompleted struct {
	Seq    uint64
	Report *domain.SearchReport
	Err    error
}

// FileOpened signals an open attempt finished.
type FileOpened struct {
	Path string
	Err  error
}

// FavoriteToggled signals a favorite was added or removed.
type FavoriteToggled struct {
	Path  string
	Added bool
	Err   error
}

// HistoryChanged signals that a history store was modified.
type HistoryChanged struct {
	Store domain.StoreName
}

// HistoryCleared signals a store was cleared.
type HistoryCleared struct {
	Store domain.StoreName
	Err   error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewHistory shows searches, recent files and favorites.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
