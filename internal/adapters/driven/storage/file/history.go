package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
)

// Ensure HistoryGateway implements the interface.
var _ driven.HistoryGateway = (*HistoryGateway)(nil)

// formatVersion is the only document version this package reads and writes.
const formatVersion = 1

// historyDir is the subdirectory of the data directory holding store files.
const historyDir = "history"

// historyDocument is the on-disk form of one store.
type historyDocument struct {
	Version int          `toml:"version"`
	Store   string       `toml:"store"`
	Items   []itemRecord `toml:"items"`
}

type itemRecord struct {
	Kind  string       `toml:"kind"`
	Value string       `toml:"value"`
	Match *matchRecord `toml:"match,omitempty"`
}

type matchRecord struct {
	FileName      string   `toml:"file_name"`
	FilePath      string   `toml:"file_path"`
	Keyword       string   `toml:"keyword"`
	Page          int      `toml:"page"`
	ContextBefore []string `toml:"context_before"`
	ContextAfter  []string `toml:"context_after"`
}

// HistoryGateway stores each history list as a TOML document.
type HistoryGateway struct {
	mu  sync.Mutex
	dir string
}

// NewHistoryGateway creates a gateway rooted at dataDir.
// If dataDir is empty, defaults to ~/.pdfseek/data.
func NewHistoryGateway(dataDir string) (*HistoryGateway, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pdfseek", "data")
	}

	dir := filepath.Join(dataDir, historyDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	return &HistoryGateway{dir: dir}, nil
}

// Path returns the file used for store.
func (g *HistoryGateway) Path(store domain.StoreName) string {
	return filepath.Join(g.dir, string(store)+".toml")
}

// Load reads one store. A store that was never saved is empty.
func (g *HistoryGateway) Load(_ context.Context, store domain.StoreName) ([]domain.HistoryItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	data, err := os.ReadFile(g.Path(store))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.HistoryItem{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrPersistenceLoad, store, err)
	}

	var doc historyDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrPersistenceLoad, store, err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", domain.ErrPersistenceLoad, store, doc.Version)
	}
	if doc.Store != string(store) {
		return nil, fmt.Errorf("%w: %s: document belongs to store %q", domain.ErrPersistenceLoad, store, doc.Store)
	}

	items := make([]domain.HistoryItem, 0, len(doc.Items))
	for _, rec := range doc.Items {
		item := domain.HistoryItem{Kind: domain.HistoryItemKind(rec.Kind), Value: rec.Value}
		if rec.Match != nil {
			m := domain.NewMatchRecord(rec.Match.FilePath, rec.Match.Keyword, rec.Match.Page, domain.ContextWindow{
				Before: rec.Match.ContextBefore,
				After:  rec.Match.ContextAfter,
			})
			m.FileName = rec.Match.FileName
			item.Match = &m
		}
		items = append(items, item)
	}
	return items, nil
}

// Save atomically replaces one store's document.
func (g *HistoryGateway) Save(_ context.Context, store domain.StoreName, items []domain.HistoryItem) error {
	doc := historyDocument{
		Version: formatVersion,
		Store:   string(store),
		Items:   make([]itemRecord, 0, len(items)),
	}
	for _, item := range items {
		rec := itemRecord{Kind: string(item.Kind), Value: item.Value}
		if item.Match != nil {
			rec.Match = &matchRecord{
				FileName:      item.Match.FileName,
				FilePath:      item.Match.FilePath,
				Keyword:       item.Match.Keyword,
				Page:          item.Match.Page,
				ContextBefore: item.Match.ContextBefore,
				ContextAfter:  item.Match.ContextAfter,
			}
		}
		doc.Items = append(doc.Items, rec)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", domain.ErrPersistenceSave, store, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := writeAtomic(g.Path(store), data); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceSave, store, err)
	}
	return nil
}

// writeAtomic writes data to a temp file beside path and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename has happened.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
