package mock

import (
	"context"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.Watcher = (*Watcher)(nil)

// Watcher is a mock implementation of splitdiff.Watcher.
type Watcher struct {
	WatchFn func(ctx context.Context, paths ...string) (<-chan string, error)
}

func (w *Watcher) Watch(ctx context.Context, paths ...string) (<-chan string, error) {
	return w.WatchFn(ctx, paths...)
}
