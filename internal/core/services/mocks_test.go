package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
)

// fakeTextSource serves page texts keyed by base file name.
type fakeTextSource struct {
	mu       sync.Mutex
	pages    map[string][]string
	openErrs map[string]error
	pageErrs map[string]error

	opened atomic.Int32
	closed atomic.Int32
	// inFlight tracks the peak number of open handles.
	inFlight atomic.Int32
	peak     atomic.Int32

	// onOpen runs before a document is opened.
	onOpen func(path string)
}

func newFakeTextSource() *fakeTextSource {
	return &fakeTextSource{
		pages:    make(map[string][]string),
		openErrs: make(map[string]error),
		pageErrs: make(map[string]error),
	}
}

func (f *fakeTextSource) Open(_ context.Context, path string) (driven.DocumentHandle, error) {
	if f.onOpen != nil {
		f.onOpen(path)
	}

	f.mu.Lock()
	name := filepath.Base(path)
	err := f.openErrs[name]
	pages := f.pages[name]
	pageErr := f.pageErrs[name]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	f.opened.Add(1)
	n := f.inFlight.Add(1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	return &fakeHandle{source: f, pages: pages, pageErr: pageErr}, nil
}

type fakeHandle struct {
	source  *fakeTextSource
	pages   []string
	pageErr error
}

func (h *fakeHandle) PageCount() int { return len(h.pages) }

func (h *fakeHandle) PageText(i int) (string, error) {
	if h.pageErr != nil && i == len(h.pages)-1 {
		return "", h.pageErr
	}
	return h.pages[i], nil
}

func (h *fakeHandle) Close() error {
	h.source.closed.Add(1)
	h.source.inFlight.Add(-1)
	return nil
}

// mockGateway records saves and can be told to fail.
type mockGateway struct {
	mu      sync.Mutex
	data    map[domain.StoreName][]domain.HistoryItem
	loadErr map[domain.StoreName]error
	saveErr error
	saves   map[domain.StoreName]int
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		data:    make(map[domain.StoreName][]domain.HistoryItem),
		loadErr: make(map[domain.StoreName]error),
		saves:   make(map[domain.StoreName]int),
	}
}

func (g *mockGateway) Load(_ context.Context, store domain.StoreName) ([]domain.HistoryItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.loadErr[store]; err != nil {
		return nil, err
	}
	return append([]domain.HistoryItem{}, g.data[store]...), nil
}

func (g *mockGateway) Save(_ context.Context, store domain.StoreName, items []domain.HistoryItem) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves[store]++
	if g.saveErr != nil {
		return g.saveErr
	}
	g.data[store] = append([]domain.HistoryItem{}, items...)
	return nil
}

func (g *mockGateway) saveCount(store domain.StoreName) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves[store]
}

func (g *mockGateway) stored(store domain.StoreName) []domain.HistoryItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.data[store]
}

// mockOpener records opened paths.
type mockOpener struct {
	opened []string
	err    error
}

func (o *mockOpener) Open(_ context.Context, path string) error {
	if o.err != nil {
		return o.err
	}
	o.opened = append(o.opened, path)
	return nil
}

var errBoom = errors.New("boom")

// touch creates empty files under root so the tree can enumerate them.
func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0644))
	}
}
