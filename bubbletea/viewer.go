// Package bubbletea provides a dual-pane terminal viewer for
// side-by-side diffs using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/view"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ splitdiff.Viewer = (*Viewer)(nil)

// ReloadFunc loads fresh file pairs after a watched path changed.
type ReloadFunc func(ctx context.Context) ([]splitdiff.FilePair, error)

// Viewer implements splitdiff.Viewer with a Bubble Tea TUI. Each View
// call owns one session: a view.View computing off the interactive
// path, the program rendering it, and optionally a watcher feeding
// fresh pairs into the debounced recompute.
type Viewer struct {
	differ    splitdiff.Differ
	spanner   splitdiff.SpanDiffer
	debounce  time.Duration
	watcher   splitdiff.Watcher
	paths     []string
	reload    ReloadFunc
	modelOpts []Option
}

// ViewerOption configures a Viewer.
type ViewerOption func(*Viewer)

// WithSpanDiffer enables intraline highlighting.
func WithSpanDiffer(d splitdiff.SpanDiffer) ViewerOption {
	return func(v *Viewer) {
		v.spanner = d
	}
}

// WithDebounce sets how long snapshot changes are coalesced before a
// recomputation starts.
func WithDebounce(d time.Duration) ViewerOption {
	return func(v *Viewer) {
		v.debounce = d
	}
}

// WithWatch reloads pairs through fn whenever one of the paths
// changes, for as long as the viewer runs.
func WithWatch(w splitdiff.Watcher, fn ReloadFunc, paths ...string) ViewerOption {
	return func(v *Viewer) {
		v.watcher = w
		v.reload = fn
		v.paths = paths
	}
}

// WithModelOptions forwards options to the underlying Model.
func WithModelOptions(opts ...Option) ViewerOption {
	return func(v *Viewer) {
		v.modelOpts = append(v.modelOpts, opts...)
	}
}

// NewViewer creates a Viewer computing diffs with the given differ.
func NewViewer(differ splitdiff.Differ, opts ...ViewerOption) *Viewer {
	v := &Viewer{
		differ:   differ,
		debounce: view.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// View displays the pairs and blocks until the user exits or ctx is
// cancelled.
func (v *Viewer) View(ctx context.Context, pairs []splitdiff.FilePair) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Commits can land before the program exists; they are dropped
	// since NewModel renders the initial computation itself.
	var prog atomic.Pointer[tea.Program]
	session := view.New(v.differ,
		view.WithDebounce(v.debounce),
		view.WithSpanDiffer(v.spanner),
		view.WithOnUpdate(func() {
			if p := prog.Load(); p != nil {
				p.Send(RecomputeMsg{})
			}
		}),
	)
	defer session.Close()

	m := NewModel(session, pairs, v.modelOpts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	prog.Store(p)

	var events <-chan string
	if v.watcher != nil && v.reload != nil {
		ch, err := v.watcher.Watch(ctx, v.paths...)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		events = ch
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	if events != nil {
		g.Go(func() error {
			for range events {
				fresh, err := v.reload(ctx)
				if err != nil {
					p.Send(statusMsg(fmt.Sprintf("reload failed: %v", err)))
					continue
				}
				p.Send(ReloadMsg{Pairs: fresh})
			}
			return nil
		})
	}

	err := g.Wait()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
