package manifest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period [Watch] waits for before rescanning.
const DefaultDebounce = 250 * time.Millisecond

// Watch rescans dir after changes below it and calls fn with the result.
// A burst of events within debounce triggers a single rescan; zero means
// [DefaultDebounce]. Watcher errors are passed to fn with a nil manifest.
// Watch blocks until ctx is done.
//
// Events for files directly inside dir are ignored because [Scan] ignores
// those files; this keeps a manifest written into dir from retriggering.
func Watch(ctx context.Context, dir string, debounce time.Duration, fn func(*Manifest, error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := filepath.Clean(dir)
	if err := watchTree(w, root); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(root, ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watchTree(w, ev.Name)
				}
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, err)

		case <-timer.C:
			fn(Scan(os.DirFS(root)))
		}
	}
}

// relevant reports whether ev can change the scanned manifest.
func relevant(root string, ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	if filepath.Dir(ev.Name) != root {
		return true
	}
	// Top-level entry: only directories matter. A removed or renamed entry
	// can no longer be inspected, so it always counts.
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		return filepath.Base(ev.Name) != FileName
	}
	info, err := os.Stat(ev.Name)
	return err == nil && info.IsDir()
}

// watchTree adds dir and every directory below it. fsnotify is not
// recursive.
func watchTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
