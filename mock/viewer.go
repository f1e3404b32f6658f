package mock

import (
	"context"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of splitdiff.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, pairs []splitdiff.FilePair) error
}

func (v *Viewer) View(ctx context.Context, pairs []splitdiff.FilePair) error {
	return v.ViewFn(ctx, pairs)
}
