package domain

import (
	"path/filepath"
	"strings"
	"sync"
)

// HistoryCapacity is the maximum number of entries any history store holds.
const HistoryCapacity = 10

// StoreName identifies one of the persisted history stores.
type StoreName string

// History stores.
const (
	// StoreSearch holds previously searched keywords.
	StoreSearch StoreName = "search"

	// StoreRecent holds recently opened files, most recent first.
	StoreRecent StoreName = "recent"

	// StoreFavorites holds files the user explicitly marked.
	StoreFavorites StoreName = "favorites"
)

// IsValid returns true if the store name is recognised.
func (s StoreName) IsValid() bool {
	switch s {
	case StoreSearch, StoreRecent, StoreFavorites:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s StoreName) String() string {
	return string(s)
}

// AllStores returns every history store in a stable order.
func AllStores() []StoreName {
	return []StoreName{StoreSearch, StoreRecent, StoreFavorites}
}

// HistoryItemKind tags the persisted form of a history entry.
type HistoryItemKind string

// History item kinds.
const (
	// HistoryItemTerm is a search term.
	HistoryItemTerm HistoryItemKind = "term"

	// HistoryItemFile is a file path, optionally with the match that produced it.
	HistoryItemFile HistoryItemKind = "file"
)

// HistoryItem is the persistence unit for every history store.
type HistoryItem struct {
	Kind  HistoryItemKind
	Value string
	Match *MatchRecord
}

// Favorite is a file the user marked, optionally paired with the match
// that led them to it.
type Favorite struct {
	Path  string       `json:"path"`
	Match *MatchRecord `json:"match,omitempty"`
}

// DuplicatePolicy decides what Add does with an item that is already present.
type DuplicatePolicy int

const (
	// InsertOnce keeps the existing entry where it is.
	InsertOnce DuplicatePolicy = iota

	// MoveToFront relocates the existing entry to the front.
	MoveToFront
)

// EqualTermsFold compares search terms case-insensitively.
func EqualTermsFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// EqualPaths compares file paths after cleaning.
func EqualPaths(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// BoundedHistory is an ordered, duplicate-free list with front-insert and
// tail-evict semantics. It is safe for concurrent use.
type BoundedHistory[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int
	policy   DuplicatePolicy
	equal    func(a, b T) bool
}

// NewBoundedHistory creates an empty history. A capacity below 1 selects
// HistoryCapacity.
func NewBoundedHistory[T any](capacity int, policy DuplicatePolicy, equal func(a, b T) bool) *BoundedHistory[T] {
	if capacity < 1 {
		capacity = HistoryCapacity
	}
	return &BoundedHistory[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
		policy:   policy,
		equal:    equal,
	}
}

// Add inserts item at the front. It reports whether the store changed.
func (h *BoundedHistory[T]) Add(item T) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := h.indexOf(item); i >= 0 {
		if h.policy == InsertOnce || i == 0 {
			return false
		}
		existing := h.items[i]
		copy(h.items[1:i+1], h.items[:i])
		h.items[0] = existing
		return true
	}

	h.items = append(h.items, item)
	copy(h.items[1:], h.items[:len(h.items)-1])
	h.items[0] = item
	if len(h.items) > h.capacity {
		h.items = h.items[:h.capacity]
	}
	return true
}

// Remove deletes item. It reports whether the store changed.
func (h *BoundedHistory[T]) Remove(item T) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexOf(item)
	if i < 0 {
		return false
	}
	h.items = append(h.items[:i], h.items[i+1:]...)
	return true
}

// Contains reports whether an equal item is present.
func (h *BoundedHistory[T]) Contains(item T) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.indexOf(item) >= 0
}

// Find returns the stored item equal to item.
func (h *BoundedHistory[T]) Find(item T) (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := h.indexOf(item); i >= 0 {
		return h.items[i], true
	}
	var zero T
	return zero, false
}

// Items returns a front-to-back copy of the entries.
func (h *BoundedHistory[T]) Items() []T {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]T, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of entries.
func (h *BoundedHistory[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Capacity returns the maximum number of entries.
func (h *BoundedHistory[T]) Capacity() int {
	return h.capacity
}

// Clear removes every entry. It reports whether the store changed.
func (h *BoundedHistory[T]) Clear() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return false
	}
	h.items = h.items[:0]
	return true
}

// Replace discards the current entries and loads items front-to-back.
// Duplicates after the first occurrence and entries beyond capacity are dropped.
func (h *BoundedHistory[T]) Replace(items []T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = make([]T, 0, h.capacity)
	for _, item := range items {
		if len(h.items) == h.capacity {
			break
		}
		if h.indexOf(item) >= 0 {
			continue
		}
		h.items = append(h.items, item)
	}
}

func (h *BoundedHistory[T]) indexOf(item T) int {
	for i, existing := range h.items {
		if h.equal(existing, item) {
			return i
		}
	}
	return -1
}
