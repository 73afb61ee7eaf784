package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("pdf.pdftotext_path", "/usr/bin/pdftotext"))
	require.NoError(t, store.Set("search.workers", 4))
	require.NoError(t, store.Set("search.skip_hidden", true))

	val, ok := store.Get("pdf.pdftotext_path")
	assert.True(t, ok)
	assert.Equal(t, "/usr/bin/pdftotext", val)
	assert.Equal(t, "/usr/bin/pdftotext", store.GetString("pdf.pdftotext_path"))
	assert.Equal(t, 4, store.GetInt("search.workers"))
	assert.True(t, store.GetBool("search.skip_hidden"))
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("search.workers", "four"))

	assert.Equal(t, 0, store.GetInt("search.workers"))
	assert.False(t, store.GetBool("search.workers"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt_NumericTypes(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("a", int64(3)))
	require.NoError(t, store.Set("b", float64(5)))

	assert.Equal(t, 3, store.GetInt("a"))
	assert.Equal(t, 5, store.GetInt("b"))
}

func TestConfigStore_SaveIsNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
}

func TestConfigStore_KeysSorted(t *testing.T) {
	store := NewConfigStore()
	assert.Empty(t, store.Keys())

	require.NoError(t, store.Set("storage.backend", "toml"))
	require.NoError(t, store.Set("search.workers", 2))

	assert.Equal(t, []string{"search.workers", "storage.backend"}, store.Keys())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("search.workers", i)
			_ = store.GetInt("search.workers")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("search.workers")
	assert.True(t, ok)
}
