package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pdfseek", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("pdf.pdftotext_path", "/usr/local/bin/pdftotext"))
	require.NoError(t, store.Set("search.workers", 8))
	require.NoError(t, store.Set("search.skip_hidden", true))

	assert.Equal(t, "/usr/local/bin/pdftotext", store.GetString("pdf.pdftotext_path"))
	assert.Equal(t, 8, store.GetInt("search.workers"))
	assert.True(t, store.GetBool("search.skip_hidden"))

	// Wrong types fall back to zero values
	assert.Equal(t, "", store.GetString("search.workers"))
	assert.Equal(t, 0, store.GetInt("pdf.pdftotext_path"))
	assert.False(t, store.GetBool("search.workers"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("storage.backend", "toml"))
	require.NoError(t, store1.Set("search.workers", 4))
	require.NoError(t, store1.Set("search.skip_hidden", true))

	// Create new store instance - should load from file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "toml", store2.GetString("storage.backend"))
	assert.Equal(t, 4, store2.GetInt("search.workers"))
	assert.True(t, store2.GetBool("search.skip_hidden"))
	assert.Equal(t, []string{"search.skip_hidden", "search.workers", "storage.backend"}, store2.Keys())
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search.workers", 4))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Contains(t, string(data), "[search]")
	assert.NotContains(t, string(data), "'search.workers'")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[search]\nworkers = 2\nskip_hidden = true\n\n[pdf]\npdftotext_path = \"/opt/pdftotext\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 2, store.GetInt("search.workers"))
	assert.True(t, store.GetBool("search.skip_hidden"))
	assert.Equal(t, "/opt/pdftotext", store.GetString("pdf.pdftotext_path"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search.workers", 1))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search.workers", 1))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("search.workers", 2))
	assert.Error(t, store.Save())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = store.Set("search.workers", id)
			_ = store.GetInt("search.workers")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("search.workers")
	assert.True(t, ok)
}

func TestFlattenAndNestMap(t *testing.T) {
	flat := map[string]any{
		"search.workers":     int64(4),
		"search.skip_hidden": false,
		"pdf.pdftotext_path": "pdftotext",
		"top":                "level",
	}

	nested := nestMap(flat)
	assert.Equal(t, map[string]any{
		"search": map[string]any{"workers": int64(4), "skip_hidden": false},
		"pdf":    map[string]any{"pdftotext_path": "pdftotext"},
		"top":    "level",
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}

func TestNestMap_ValueAndTableConflict(t *testing.T) {
	nested := nestMap(map[string]any{
		"search":         "flat",
		"search.workers": 2,
	})

	assert.Equal(t, "flat", nested["search"])
	assert.Equal(t, 2, nested["search.workers"])
}
