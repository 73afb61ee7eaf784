package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func termItems(n int) []domain.HistoryItem {
	items := make([]domain.HistoryItem, n)
	for i := range n {
		items[i] = domain.HistoryItem{Kind: domain.HistoryItemTerm, Value: fmt.Sprintf("term-%d", i)}
	}
	return items
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, dbFileName), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreRecordedOnce(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	v, err := first.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, first.Close())

	// Reopening must not re-run migrations
	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_MigrateAppliesOnlyNewerVersions(t *testing.T) {
	store := setupTestStore(t)

	migrations := fstest.MapFS{
		"001_history.up.sql": {Data: []byte("CREATE TABLE already_applied (id INTEGER)")},
		"002_extra.up.sql":   {Data: []byte("CREATE TABLE extra (id INTEGER)")},
		"002_extra.down.sql": {Data: []byte("DROP TABLE extra")},
	}
	require.NoError(t, store.migrate(migrations))

	v, err := store.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	tables := func(name string) int {
		var n int
		require.NoError(t, store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n))
		return n
	}
	assert.Equal(t, 0, tables("already_applied"))
	assert.Equal(t, 1, tables("extra"))
}

func TestHistoryGateway_LoadEmpty(t *testing.T) {
	gateway := setupTestStore(t).HistoryGateway()

	items, err := gateway.Load(context.Background(), domain.StoreSearch)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestHistoryGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	gateway := setupTestStore(t).HistoryGateway()

	for n := 0; n <= domain.HistoryCapacity; n++ {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			items := termItems(n)

			require.NoError(t, gateway.Save(ctx, domain.StoreSearch, items))
			loaded, err := gateway.Load(ctx, domain.StoreSearch)

			require.NoError(t, err)
			assert.Equal(t, items, loaded)
		})
	}
}

func TestHistoryGateway_RoundTripWithMatches(t *testing.T) {
	ctx := context.Background()
	gateway := setupTestStore(t).HistoryGateway()

	match := domain.NewMatchRecord("/docs/a.pdf", "Cat", 2, domain.ContextWindow{
		Before: []string{"The"},
		After:  []string{"sat", "on"},
	})
	empty := domain.NewMatchRecord("/docs/b.pdf", "cat", 1, domain.ContextWindow{})
	items := []domain.HistoryItem{
		{Kind: domain.HistoryItemFile, Value: "/docs/a.pdf", Match: &match},
		{Kind: domain.HistoryItemFile, Value: "/docs/c.pdf"},
		{Kind: domain.HistoryItemFile, Value: "/docs/b.pdf", Match: &empty},
	}

	require.NoError(t, gateway.Save(ctx, domain.StoreFavorites, items))
	loaded, err := gateway.Load(ctx, domain.StoreFavorites)

	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestHistoryGateway_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	gateway := setupTestStore(t).HistoryGateway()

	require.NoError(t, gateway.Save(ctx, domain.StoreRecent, []domain.HistoryItem{
		{Kind: domain.HistoryItemFile, Value: "/a.pdf"},
		{Kind: domain.HistoryItemFile, Value: "/b.pdf"},
	}))
	require.NoError(t, gateway.Save(ctx, domain.StoreRecent, []domain.HistoryItem{
		{Kind: domain.HistoryItemFile, Value: "/b.pdf"},
	}))

	loaded, err := gateway.Load(ctx, domain.StoreRecent)
	require.NoError(t, err)
	assert.Equal(t, []domain.HistoryItem{{Kind: domain.HistoryItemFile, Value: "/b.pdf"}}, loaded)
}

func TestHistoryGateway_StoresAreIndependent(t *testing.T) {
	ctx := context.Background()
	gateway := setupTestStore(t).HistoryGateway()

	require.NoError(t, gateway.Save(ctx, domain.StoreSearch, termItems(3)))
	require.NoError(t, gateway.Save(ctx, domain.StoreRecent, []domain.HistoryItem{{Kind: domain.HistoryItemFile, Value: "/a.pdf"}}))
	require.NoError(t, gateway.Save(ctx, domain.StoreSearch, nil))

	recent, err := gateway.Load(ctx, domain.StoreRecent)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	searches, err := gateway.Load(ctx, domain.StoreSearch)
	require.NoError(t, err)
	assert.Empty(t, searches)
}

func TestHistoryGateway_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.HistoryGateway().Save(ctx, domain.StoreSearch, termItems(2)))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	loaded, err := second.HistoryGateway().Load(ctx, domain.StoreSearch)
	require.NoError(t, err)
	assert.Equal(t, termItems(2), loaded)
}

func TestHistoryGateway_CorruptMatchIsLoadFailure(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	_, err := store.db.Exec(
		"INSERT INTO history_items (store, position, kind, value, match_json) VALUES (?, 0, 'file', '/a.pdf', '{not json')",
		string(domain.StoreFavorites),
	)
	require.NoError(t, err)

	_, err = store.HistoryGateway().Load(ctx, domain.StoreFavorites)

	assert.ErrorIs(t, err, domain.ErrPersistenceLoad)
}

func TestHistoryGateway_ClosedStoreErrors(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	gateway := store.HistoryGateway()
	require.NoError(t, store.Close())

	_, err = gateway.Load(ctx, domain.StoreSearch)
	assert.ErrorIs(t, err, domain.ErrPersistenceLoad)

	err = gateway.Save(ctx, domain.StoreSearch, termItems(1))
	assert.ErrorIs(t, err, domain.ErrPersistenceSave)
}
