// Package tui provides an interactive terminal user interface for pdfseek.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pdfseek/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs keyword searches over a directory tree.
	Search driving.SearchService

	// History owns search history, recent files and favorites.
	History driving.HistoryService

	// ResultAction opens files and toggles favorites. Optional.
	ResultAction driving.ResultActionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	history driving.HistoryService,
	resultAction driving.ResultActionService,
) *Ports {
	return &Ports{
		Search:       search,
		History:      history,
		ResultAction: resultAction,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	return nil
}
