package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
}

func TestTree_Enumerate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.pdf"))
	writeFile(t, filepath.Join(root, "a.PDF"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "a", "nested.pdf"))
	writeFile(t, filepath.Join(root, "z", "deep", "c.pdf"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.pdf"), 0755))

	paths, err := NewTree().Enumerate(context.Background(), root, domain.EnumerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.PDF"),
		filepath.Join(root, "a", "nested.pdf"),
		filepath.Join(root, "b.pdf"),
		filepath.Join(root, "z", "deep", "c.pdf"),
	}, paths)
}

func TestTree_Enumerate_Hidden(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "visible.pdf"))
	writeFile(t, filepath.Join(root, ".hidden.pdf"))
	writeFile(t, filepath.Join(root, ".cache", "inside.pdf"))

	tree := NewTree()

	all, err := tree.Enumerate(context.Background(), root, domain.EnumerateOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	visible, err := tree.Enumerate(context.Background(), root, domain.EnumerateOptions{SkipHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "visible.pdf")}, visible)
}

func TestTree_Enumerate_EmptyDirectory(t *testing.T) {
	paths, err := NewTree().Enumerate(context.Background(), t.TempDir(), domain.EnumerateOptions{})

	require.NoError(t, err)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
}

func TestTree_Enumerate_InvalidRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.pdf")
	writeFile(t, file)

	tests := []struct {
		name string
		root string
	}{
		{"missing", filepath.Join(t.TempDir(), "does-not-exist")},
		{"file not directory", file},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTree().Enumerate(context.Background(), tt.root, domain.EnumerateOptions{})
			assert.ErrorIs(t, err, domain.ErrInvalidDirectory)
		})
	}
}

func TestTree_Enumerate_UnreadableSubdirectorySkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.pdf"))
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "secret.pdf"))
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	paths, err := NewTree().Enumerate(context.Background(), root, domain.EnumerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "ok.pdf")}, paths)
}

func TestTree_Enumerate_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTree().Enumerate(ctx, root, domain.EnumerateOptions{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTree_Enumerate_RelativeRootReturnsAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"))
	t.Chdir(root)

	paths, err := NewTree().Enumerate(context.Background(), ".", domain.EnumerateOptions{})

	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.True(t, filepath.IsAbs(paths[0]))
}

func TestTree_Watch(t *testing.T) {
	t.Run("reports created pdf", func(t *testing.T) {
		root := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := NewTree().Watch(ctx, root)
		require.NoError(t, err)

		target := filepath.Join(root, "new.pdf")
		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(target, []byte("%PDF"), 0644)
		}()

		select {
		case change := <-changes:
			assert.Equal(t, target, change.Path)
			assert.Contains(t, []domain.TreeChangeKind{domain.TreeChangeCreated, domain.TreeChangeModified}, change.Kind)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change")
		}
	})

	t.Run("reports removed pdf", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "old.pdf")
		writeFile(t, target)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := NewTree().Watch(ctx, root)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.Remove(target)
		}()

		select {
		case change := <-changes:
			assert.Equal(t, domain.TreeChangeRemoved, change.Kind)
			assert.Equal(t, target, change.Path)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change")
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		changes, err := NewTree().Watch(context.Background(), "/non/existent/path")

		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "root path error")
		assert.ErrorIs(t, err, domain.ErrInvalidDirectory)
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		changes, err := NewTree().Watch(ctx, t.TempDir())
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changes:
			if ok {
				for range changes {
				}
			}
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})
}

// TestHandleFsEvent tests the handleFsEvent function with various event types.
func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		createFile   bool
		createDir    bool
		operation    fsnotify.Op
		expectChange bool
		expectedKind domain.TreeChangeKind
	}{
		{"create pdf", "a.pdf", true, false, fsnotify.Create, true, domain.TreeChangeCreated},
		{"write pdf", "a.pdf", true, false, fsnotify.Write, true, domain.TreeChangeModified},
		{"remove pdf", "gone.pdf", false, false, fsnotify.Remove, true, domain.TreeChangeRemoved},
		{"rename pdf", "moved.pdf", false, false, fsnotify.Rename, true, domain.TreeChangeRemoved},
		{"chmod pdf ignored", "a.pdf", true, false, fsnotify.Chmod, false, ""},
		{"create text file ignored", "a.txt", true, false, fsnotify.Create, false, ""},
		{"create directory ignored", "sub.pdf", false, true, fsnotify.Create, false, ""},
		{"write upper-case extension", "B.PDF", true, false, fsnotify.Write | fsnotify.Chmod, true, domain.TreeChangeModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if tt.createFile {
				writeFile(t, path)
			}
			if tt.createDir {
				require.NoError(t, os.Mkdir(path, 0755))
			}

			change := handleFsEvent(nil, fsnotify.Event{Name: path, Op: tt.operation})

			if !tt.expectChange {
				assert.Nil(t, change)
				return
			}
			require.NotNil(t, change)
			assert.Equal(t, tt.expectedKind, change.Kind)
			assert.Equal(t, path, change.Path)
		})
	}
}

// TestIsHidden tests the isHidden function with various names.
func TestIsHidden(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{".hidden", true},
		{".git", true},
		{"file.pdf", false},
		{"file.hidden", false},
		{".", false},
		{"..", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isHidden(tt.name))
		})
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("/a/b.pdf"))
	assert.True(t, IsPDF("/a/b.PdF"))
	assert.False(t, IsPDF("/a/b.pdf.txt"))
	assert.False(t, IsPDF("/a/pdf"))
}
