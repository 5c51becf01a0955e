// Package filesystem watches local directories for documentation changes.
// It feeds the ingest pipeline's watch mode with file-level change events.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ChangeType classifies a filesystem change.
type ChangeType string

// Available change types.
const (
	// ChangeUpdated covers file creation and modification; both trigger
	// a re-ingest of the file.
	ChangeUpdated ChangeType = "updated"

	// ChangeRemoved covers deletion and rename-away.
	ChangeRemoved ChangeType = "removed"
)

// Change is one filesystem event relevant to ingestion.
type Change struct {
	// Path is the absolute file path.
	Path string

	// Type classifies the change.
	Type ChangeType
}

// Watcher emits change events for files under a root directory.
type Watcher struct {
	root string
}

// NewWatcher creates a watcher rooted at the given directory.
func NewWatcher(root string) *Watcher {
	return &Watcher{root: root}
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Watch streams change events until the context is cancelled.
// The returned channel is closed on cancellation or watcher failure.
// Subdirectories are watched recursively, including ones created later.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", w.root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := addRecursive(fsw, w.root); err != nil {
		fsw.Close()
		return nil, err
	}

	changes := make(chan Change)
	go func() {
		defer close(changes)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				change, ok := classify(event)
				if !ok {
					continue
				}

				// New directories need their own watch
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = addRecursive(fsw, event.Name)
						continue
					}
				}

				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}

			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// classify maps an fsnotify event to a Change.
// Chmod events and hidden files are ignored.
func classify(event fsnotify.Event) (Change, bool) {
	if isHidden(event.Name) {
		return Change{}, false
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		return Change{Path: event.Name, Type: ChangeUpdated}, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return Change{Path: event.Name, Type: ChangeRemoved}, true
	default:
		return Change{}, false
	}
}

// addRecursive adds the directory and all non-hidden subdirectories to the watcher.
func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// isHidden reports whether the path's base name starts with a dot.
func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
