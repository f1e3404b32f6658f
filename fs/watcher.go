package fs

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.Watcher = (*Watcher)(nil)

// Watcher reports writes to watched files using fsnotify.
type Watcher struct{}

// NewWatcher creates a new file watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch emits a path on the returned channel whenever that file is
// written or created, until ctx is cancelled. Parent directories are
// watched rather than the files themselves, so editors that replace a
// file on save keep triggering events. Every matching event is
// forwarded; consumers own coalescing.
func (w *Watcher) Watch(ctx context.Context, paths ...string) (<-chan string, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Map cleaned absolute paths back to the paths the caller gave us.
	watched := make(map[string]string, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		watched[abs] = p
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	ch := make(chan string)
	go func() {
		defer close(ch)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil {
					continue
				}
				path, ok := watched[abs]
				if !ok {
					continue
				}
				select {
				case ch <- path:
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
	return ch, nil
}
