package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
	"github.com/custodia-labs/pdfseek/internal/logger"
)

// Ensure Tree implements the interface.
var _ driven.DocumentTree = (*Tree)(nil)

// pdfExt is compared case-insensitively.
const pdfExt = ".pdf"

// Tree enumerates and watches PDF files on the local filesystem.
type Tree struct{}

// NewTree creates a filesystem document tree.
func NewTree() *Tree {
	return &Tree{}
}

// Enumerate returns absolute paths of every PDF under root in lexicographic order.
func (t *Tree) Enumerate(ctx context.Context, root string, opts domain.EnumerateOptions) ([]string, error) {
	root, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && opts.SkipHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsPDF(path) {
			return nil
		}
		if !isRegular(path, d) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("enumerate cancelled: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDirectory, root, walkErr)
	}

	sort.Strings(paths)
	if paths == nil {
		paths = []string{}
	}
	return paths, nil
}

// Watch reports PDF changes under root until ctx is cancelled.
// Directories created after the watch starts are watched too.
func (t *Tree) Watch(ctx context.Context, root string) (<-chan domain.TreeChange, error) {
	root, err := checkRoot(root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addRecursive(watcher, root); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}

	changes := make(chan domain.TreeChange, 16)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change := handleFsEvent(watcher, event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent converts an fsnotify event into a PDF change.
// New directories are added to the watcher and produce no change.
func handleFsEvent(watcher *fsnotify.Watcher, event fsnotify.Event) *domain.TreeChange {
	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if watcher != nil {
				if err := addRecursive(watcher, event.Name); err != nil {
					logger.Warn("Cannot watch new directory %s: %v", event.Name, err)
				}
			}
			return nil
		}
		if !IsPDF(event.Name) || !info.Mode().IsRegular() {
			return nil
		}
		return &domain.TreeChange{Kind: domain.TreeChangeCreated, Path: event.Name}

	case event.Has(fsnotify.Write):
		if !IsPDF(event.Name) {
			return nil
		}
		return &domain.TreeChange{Kind: domain.TreeChangeModified, Path: event.Name}

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if !IsPDF(event.Name) {
			return nil
		}
		return &domain.TreeChange{Kind: domain.TreeChangeRemoved, Path: event.Name}
	}

	return nil
}

// addRecursive watches dir and every readable directory beneath it.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			if path == dir {
				return err
			}
			logger.Debug("Cannot watch %s: %v", path, err)
		}
		return nil
	})
}

// checkRoot validates that root is an existing, readable directory and
// returns its absolute form.
func checkRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("%w: no directory given", domain.ErrInvalidDirectory)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidDirectory, root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s does not exist", domain.ErrInvalidDirectory, abs)
		}
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidDirectory, abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidDirectory, abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidDirectory, abs, err)
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %s is not readable: %v", domain.ErrInvalidDirectory, abs, err)
	}

	return abs, nil
}

// IsPDF reports whether path has a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), pdfExt)
}

// isRegular reports whether the entry is a regular file, following symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// isHidden reports whether a file or directory name is dot-prefixed.
// "." and ".." are not hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
