package fs

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/fwojciec/splitdiff"
)

// Loader reads file pairs from disk. Every read stamps both snapshots
// with a fresh revision, so views can tell successive reads of the
// same paths apart.
type Loader struct {
	rev atomic.Uint64
}

// NewLoader creates a new pair loader.
func NewLoader() *Loader {
	return &Loader{}
}

// ReadPair loads both files into a pair. Both reads must succeed.
func (l *Loader) ReadPair(oldPath, newPath string) (splitdiff.FilePair, error) {
	rev := splitdiff.Revision(l.rev.Add(1))

	oldText, err := os.ReadFile(oldPath)
	if err != nil {
		return splitdiff.FilePair{}, fmt.Errorf("read old side: %w", err)
	}
	newText, err := os.ReadFile(newPath)
	if err != nil {
		return splitdiff.FilePair{}, fmt.Errorf("read new side: %w", err)
	}

	return splitdiff.FilePair{
		OldName: oldPath,
		NewName: newPath,
		Old:     splitdiff.SnapshotFromText(string(oldText), rev),
		New:     splitdiff.SnapshotFromText(string(newText), rev),
	}, nil
}
