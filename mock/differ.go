// Package mock provides test doubles for splitdiff interfaces.
package mock

import "github.com/fwojciec/splitdiff"

// Compile-time interface verification.
var (
	_ splitdiff.Differ     = (*Differ)(nil)
	_ splitdiff.SpanDiffer = (*SpanDiffer)(nil)
)

// Differ is a mock implementation of splitdiff.Differ.
type Differ struct {
	DiffFn func(old, new *splitdiff.Snapshot) splitdiff.EditScript
}

func (d *Differ) Diff(old, new *splitdiff.Snapshot) splitdiff.EditScript {
	return d.DiffFn(old, new)
}

// SpanDiffer is a mock implementation of splitdiff.SpanDiffer.
type SpanDiffer struct {
	DiffSpansFn func(old, new string) (splitdiff.RowSpans, bool)
}

func (d *SpanDiffer) DiffSpans(old, new string) (splitdiff.RowSpans, bool) {
	return d.DiffSpansFn(old, new)
}
