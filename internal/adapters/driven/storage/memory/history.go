package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
)

// Ensure HistoryGateway implements the interface.
var _ driven.HistoryGateway = (*HistoryGateway)(nil)

// HistoryGateway is an in-memory implementation of driven.HistoryGateway
// for testing and for runs that should leave no trace on disk.
type HistoryGateway struct {
	mu     sync.RWMutex
	stores map[domain.StoreName][]domain.HistoryItem
}

// NewHistoryGateway creates a new in-memory history gateway.
func NewHistoryGateway() *HistoryGateway {
	return &HistoryGateway{
		stores: make(map[domain.StoreName][]domain.HistoryItem),
	}
}

// Load returns a copy of the saved items for store.
func (g *HistoryGateway) Load(_ context.Context, store domain.StoreName) ([]domain.HistoryItem, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return copyItems(g.stores[store]), nil
}

// Save replaces the items for store with a copy of items.
func (g *HistoryGateway) Save(_ context.Context, store domain.StoreName, items []domain.HistoryItem) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stores[store] = copyItems(items)
	return nil
}

func copyItems(items []domain.HistoryItem) []domain.HistoryItem {
	out := make([]domain.HistoryItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.Match != nil {
			m := item.Match.Clone()
			out[i].Match = &m
		}
	}
	return out
}
