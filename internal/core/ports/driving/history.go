package driving

import (
	"context"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// HistoryService owns the search, recent-files and favorites stores.
// Every mutation is written through to the HistoryGateway. A returned error
// wrapping domain.ErrPersistenceSave means the in-memory change was kept
// but could not be persisted.
type HistoryService interface {
	// RecordSearch adds a keyword to search history.
	RecordSearch(ctx context.Context, keyword string) error

	// Searches returns search history, most recent first.
	Searches() []string

	// Suggest returns history entries starting with prefix, case-insensitively.
	// An empty prefix yields no suggestions.
	Suggest(prefix string) []string

	// RecordOpened moves path to the front of recent files.
	RecordOpened(ctx context.Context, path string) error

	// Recent returns recently opened files, most recent first.
	Recent() []string

	// AddFavorite marks path as a favorite. match may be nil.
	AddFavorite(ctx context.Context, path string, match *domain.MatchRecord) error

	// RemoveFavorite unmarks path. Returns domain.ErrNotFound if absent.
	RemoveFavorite(ctx context.Context, path string) error

	// IsFavorite reports whether path is a favorite.
	IsFavorite(path string) bool

	// Favorites returns favorites, most recently added first.
	Favorites() []domain.Favorite

	// Clear empties one store.
	Clear(ctx context.Context, store domain.StoreName) error

	// Subscribe registers fn to be called after any store changes.
	// fn runs synchronously and must not mutate history.
	// The returned function removes the subscription.
	Subscribe(fn func(domain.StoreName)) (unsubscribe func())
}
