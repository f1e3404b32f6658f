// Package view owns the mutable state of a side-by-side diff session:
// the current snapshot pair, the last committed alignment, focus, and
// per-pane scroll. Diffing, alignment and highlighting are pure
// computations over immutable snapshots; the view schedules them off
// the interactive path and swaps their results in atomically.
package view

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/splitdiff"
)

// DefaultDebounce is how long snapshot changes are coalesced before a
// recomputation starts.
const DefaultDebounce = 250 * time.Millisecond

// Option configures a View.
type Option func(*View)

// WithDebounce sets the recompute debounce window. Zero or negative
// schedules immediately.
func WithDebounce(d time.Duration) Option {
	return func(v *View) {
		v.debounce = d
	}
}

// WithSpanDiffer enables intraline highlighting using d. Without it
// replaced rows carry no character spans.
func WithSpanDiffer(d splitdiff.SpanDiffer) Option {
	return func(v *View) {
		v.spanner = d
	}
}

// WithOnUpdate registers a callback invoked after every commit, from
// the computing goroutine, outside the view's lock.
func WithOnUpdate(fn func()) Option {
	return func(v *View) {
		v.onUpdate = fn
	}
}

// computation is one committed result: the script and everything
// derived from it. Committed values are immutable.
type computation struct {
	script splitdiff.EditScript
	m      *splitdiff.AlignmentMap
	spans  map[int]splitdiff.RowSpans
}

// View coordinates one side-by-side diff session. All methods are safe
// for concurrent use. While a recomputation is in flight, reads and
// commands keep operating against the last committed alignment.
type View struct {
	differ   splitdiff.Differ
	spanner  splitdiff.SpanDiffer
	debounce time.Duration
	onUpdate func()

	mu        sync.RWMutex
	pair      splitdiff.FilePair
	committed computation
	focus     splitdiff.Pane
	scroll    [2]splitdiff.ScrollPosition
	echo      [2]*splitdiff.ScrollPosition
	timer     *time.Timer
	cancel    context.CancelFunc
	gen       uint64
	closed    bool
}

// New creates a View. The committed alignment starts empty; install
// content with SetPair or SetSnapshots, then either wait for the
// debounced recompute or force one with Recompute.
func New(differ splitdiff.Differ, opts ...Option) *View {
	v := &View{
		differ:   differ,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.committed = computation{m: splitdiff.Align(splitdiff.EditScript{})}
	return v
}

// SetPair replaces the whole pair, names included, and schedules a
// recompute.
func (v *View) SetPair(pair splitdiff.FilePair) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.pair = pair
	v.scheduleLocked()
}

// SetSnapshots replaces both snapshots together and schedules a
// recompute. The pair is swapped under one lock acquisition so a
// computation never sees mismatched revisions.
func (v *View) SetSnapshots(old, new *splitdiff.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.pair.Old = old
	v.pair.New = new
	v.scheduleLocked()
}

// scheduleLocked supersedes any pending or in-flight computation and
// arms the debounce timer for a new one.
func (v *View) scheduleLocked() {
	if v.closed {
		return
	}
	v.gen++
	gen := v.gen
	if v.cancel != nil {
		v.cancel()
	}
	if v.timer != nil {
		v.timer.Stop()
	}

	pair := v.pair
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.timer = time.AfterFunc(v.debounce, func() {
		v.recompute(ctx, gen, pair)
	})
}

// Recompute supersedes any scheduled work and runs one computation
// synchronously. It still commits through the generation check, so a
// concurrent SetSnapshots wins over the running pass.
func (v *View) Recompute() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.gen++
	gen := v.gen
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	pair := v.pair
	v.mu.Unlock()

	v.recompute(context.Background(), gen, pair)
}

// recompute runs the pure pipeline over a pair captured at schedule
// time, then commits unless a newer generation superseded it. The
// context lets a cancelled computation stop between stages.
func (v *View) recompute(ctx context.Context, gen uint64, pair splitdiff.FilePair) {
	script := v.differ.Diff(pair.Old, pair.New)
	if ctx.Err() != nil {
		return
	}
	m := splitdiff.Align(script)
	var spans map[int]splitdiff.RowSpans
	if v.spanner != nil {
		spans = splitdiff.IntralineSpans(m, pair.Old, pair.New, v.spanner)
	}
	if ctx.Err() != nil {
		return
	}

	v.mu.Lock()
	if v.closed || gen != v.gen {
		v.mu.Unlock()
		return
	}
	v.committed = computation{script: script, m: m, spans: spans}
	v.rebaseScrollLocked()
	cb := v.onUpdate
	v.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// rebaseScrollLocked keeps stored positions valid after a commit: rows
// are clamped into the new map and stale echo tags are dropped since
// their row coordinates belong to the previous map.
func (v *View) rebaseScrollLocked() {
	n := v.committed.m.Len()
	for p := range v.scroll {
		v.scroll[p] = clampPosition(v.scroll[p], n)
		v.echo[p] = nil
	}
}

// Close stops the debounce timer and cancels in-flight work. Further
// snapshot updates are ignored.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

// Map returns the committed alignment map. Never nil.
func (v *View) Map() *splitdiff.AlignmentMap {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.committed.m
}

// SpansAt returns the intraline spans for a replaced row, if any.
func (v *View) SpansAt(row int) (splitdiff.RowSpans, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s, ok := v.committed.spans[row]
	return s, ok
}

// Spans returns all committed intraline spans keyed by row index. The
// map belongs to the committed computation and must not be mutated.
func (v *View) Spans() map[int]splitdiff.RowSpans {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.committed.spans
}

// Pair returns the current snapshot pair.
func (v *View) Pair() splitdiff.FilePair {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pair
}

// Coarse reports whether the committed script was degraded past the
// edit budget.
func (v *View) Coarse() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.committed.script.Coarse
}

// Stats returns the committed script's deleted and added line counts.
func (v *View) Stats() (deleted, added int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.committed.script.Stats()
}

// Title returns the pair's display title.
func (v *View) Title() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.pair.Title != "" {
		return v.pair.Title
	}
	return splitdiff.PairTitle(v.pair.OldName, v.pair.NewName)
}
