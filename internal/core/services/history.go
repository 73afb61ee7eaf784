package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driving"
	"github.com/custodia-labs/pdfseek/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService owns the search, recent-files and favorites stores for one
// session and writes every change through to the gateway.
type HistoryService struct {
	gateway driven.HistoryGateway

	// mu serialises mutate-then-save so saves land in mutation order.
	mu        sync.Mutex
	searches  *domain.BoundedHistory[string]
	recent    *domain.BoundedHistory[string]
	favorites *domain.BoundedHistory[domain.Favorite]

	subMu   sync.Mutex
	subs    map[int]func(domain.StoreName)
	nextSub int
}

// NewHistoryService creates a history service with empty stores.
// Call Load to populate it from the gateway.
func NewHistoryService(gateway driven.HistoryGateway) *HistoryService {
	return &HistoryService{
		gateway:   gateway,
		searches:  domain.NewBoundedHistory(domain.HistoryCapacity, domain.InsertOnce, domain.EqualTermsFold),
		recent:    domain.NewBoundedHistory(domain.HistoryCapacity, domain.MoveToFront, domain.EqualPaths),
		favorites: domain.NewBoundedHistory(domain.HistoryCapacity, domain.InsertOnce, equalFavorites),
		subs:      make(map[int]func(domain.StoreName)),
	}
}

func equalFavorites(a, b domain.Favorite) bool {
	return domain.EqualPaths(a.Path, b.Path)
}

// Load reads every store from the gateway. A store that fails to load is
// left empty and the failure is returned wrapped in domain.ErrPersistenceLoad;
// the service remains usable either way.
func (s *HistoryService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, store := range domain.AllStores() {
		items, err := s.gateway.Load(ctx, store)
		if err != nil {
			logger.Warn("Failed to load %s history, starting empty: %v", store, err)
			if !errors.Is(err, domain.ErrPersistenceLoad) {
				err = fmt.Errorf("%w: %s: %v", domain.ErrPersistenceLoad, store, err)
			}
			errs = append(errs, err)
			items = nil
		}
		s.replace(store, items)
		logger.Debug("Loaded %d %s history items", len(items), store)
	}
	return errors.Join(errs...)
}

// RecordSearch adds a keyword to search history.
func (s *HistoryService) RecordSearch(ctx context.Context, keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return fmt.Errorf("%w: keyword is empty", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.searches.Add(keyword) {
		return nil
	}
	return s.persist(ctx, domain.StoreSearch)
}

// Searches returns search history, most recent first.
func (s *HistoryService) Searches() []string {
	return s.searches.Items()
}

// Suggest returns search history entries starting with prefix.
func (s *HistoryService) Suggest(prefix string) []string {
	suggestions := []string{}
	if prefix == "" {
		return suggestions
	}

	lower := strings.ToLower(prefix)
	for _, term := range s.searches.Items() {
		if strings.HasPrefix(strings.ToLower(term), lower) {
			suggestions = append(suggestions, term)
		}
	}
	return suggestions
}

// RecordOpened moves path to the front of recent files.
func (s *HistoryService) RecordOpened(ctx context.Context, path string) error {
	path, err := normalisePath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recent.Add(path) {
		return nil
	}
	return s.persist(ctx, domain.StoreRecent)
}

// Recent returns recently opened files, most recent first.
func (s *HistoryService) Recent() []string {
	return s.recent.Items()
}

// AddFavorite marks path as a favorite.
func (s *HistoryService) AddFavorite(ctx context.Context, path string, match *domain.MatchRecord) error {
	path, err := normalisePath(path)
	if err != nil {
		return err
	}

	fav := domain.Favorite{Path: path}
	if match != nil {
		m := match.Clone()
		fav.Match = &m
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.favorites.Add(fav) {
		return nil
	}
	return s.persist(ctx, domain.StoreFavorites)
}

// RemoveFavorite unmarks path.
func (s *HistoryService) RemoveFavorite(ctx context.Context, path string) error {
	path, err := normalisePath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.favorites.Remove(domain.Favorite{Path: path}) {
		return fmt.Errorf("%w: favorite %s", domain.ErrNotFound, path)
	}
	return s.persist(ctx, domain.StoreFavorites)
}

// IsFavorite reports whether path is a favorite.
func (s *HistoryService) IsFavorite(path string) bool {
	path, err := normalisePath(path)
	if err != nil {
		return false
	}
	return s.favorites.Contains(domain.Favorite{Path: path})
}

// Favorites returns favorites, most recently added first.
func (s *HistoryService) Favorites() []domain.Favorite {
	favs := s.favorites.Items()
	for i := range favs {
		if favs[i].Match != nil {
			m := favs[i].Match.Clone()
			favs[i].Match = &m
		}
	}
	return favs
}

// Clear empties one store.
func (s *HistoryService) Clear(ctx context.Context, store domain.StoreName) error {
	if !store.IsValid() {
		return fmt.Errorf("%w: unknown history store %q", domain.ErrInvalidInput, store)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var changed bool
	switch store {
	case domain.StoreSearch:
		changed = s.searches.Clear()
	case domain.StoreRecent:
		changed = s.recent.Clear()
	case domain.StoreFavorites:
		changed = s.favorites.Clear()
	}
	if !changed {
		return nil
	}
	return s.persist(ctx, store)
}

// Subscribe registers fn to be called after any store changes.
func (s *HistoryService) Subscribe(fn func(domain.StoreName)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
		})
	}
}

// persist saves store and notifies subscribers (caller must hold mu).
// The in-memory change stands even if the save fails.
func (s *HistoryService) persist(ctx context.Context, store domain.StoreName) error {
	defer s.notify(store)

	if err := s.gateway.Save(ctx, store, s.items(store)); err != nil {
		logger.Warn("Failed to save %s history: %v", store, err)
		if errors.Is(err, domain.ErrPersistenceSave) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceSave, store, err)
	}
	return nil
}

func (s *HistoryService) notify(store domain.StoreName) {
	s.subMu.Lock()
	fns := make([]func(domain.StoreName), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(store)
	}
}

// items converts a store into its persisted form.
func (s *HistoryService) items(store domain.StoreName) []domain.HistoryItem {
	items := []domain.HistoryItem{}
	switch store {
	case domain.StoreSearch:
		for _, term := range s.searches.Items() {
			items = append(items, domain.HistoryItem{Kind: domain.HistoryItemTerm, Value: term})
		}
	case domain.StoreRecent:
		for _, path := range s.recent.Items() {
			items = append(items, domain.HistoryItem{Kind: domain.HistoryItemFile, Value: path})
		}
	case domain.StoreFavorites:
		for _, fav := range s.favorites.Items() {
			items = append(items, domain.HistoryItem{Kind: domain.HistoryItemFile, Value: fav.Path, Match: fav.Match})
		}
	}
	return items
}

// replace loads persisted items into a store, ignoring items of the wrong kind.
func (s *HistoryService) replace(store domain.StoreName, items []domain.HistoryItem) {
	switch store {
	case domain.StoreSearch:
		s.searches.Replace(itemValues(items, domain.HistoryItemTerm))
	case domain.StoreRecent:
		s.recent.Replace(itemValues(items, domain.HistoryItemFile))
	case domain.StoreFavorites:
		favs := make([]domain.Favorite, 0, len(items))
		for _, item := range items {
			if item.Kind != domain.HistoryItemFile || item.Value == "" {
				continue
			}
			favs = append(favs, domain.Favorite{Path: item.Value, Match: item.Match})
		}
		s.favorites.Replace(favs)
	}
}

func itemValues(items []domain.HistoryItem, kind domain.HistoryItemKind) []string {
	values := make([]string, 0, len(items))
	for _, item := range items {
		if item.Kind == kind && item.Value != "" {
			values = append(values, item.Value)
		}
	}
	return values
}

// normalisePath makes path absolute and clean.
func normalisePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: path is empty", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, path, err)
	}
	return abs, nil
}
