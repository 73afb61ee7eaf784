package driven

import (
	"context"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// HistoryGateway persists history stores as ordered item sequences.
// Save followed by Load must reproduce the sequence exactly.
type HistoryGateway interface {
	// Load returns the persisted items for store, front to back.
	// A store that was never saved loads as an empty sequence.
	Load(ctx context.Context, store domain.StoreName) ([]domain.HistoryItem, error)

	// Save replaces the persisted items for store.
	Save(ctx context.Context, store domain.StoreName, items []domain.HistoryItem) error
}
