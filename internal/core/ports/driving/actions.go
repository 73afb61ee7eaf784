package driving

import (
	"context"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// ResultActionService provides actions on search results for external actors.
// This is used by TUI, CLI, and MCP adapters.
type ResultActionService interface {
	// OpenFile opens path in the default application and, on success,
	// records it in recent files.
	OpenFile(ctx context.Context, path string) error

	// OpenMatch opens the match's document.
	OpenMatch(ctx context.Context, match domain.MatchRecord) error

	// ToggleFavorite adds the match's document to favorites, or removes it
	// if already present. Returns true if the document is now a favorite.
	ToggleFavorite(ctx context.Context, match domain.MatchRecord) (bool, error)
}
