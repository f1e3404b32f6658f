// Package splitdiff provides domain types for computing and viewing
// side-by-side diffs.
package splitdiff

import (
	"context"
	"fmt"
	"io"
)

// Range is a half-open interval [Start, End) over line indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of lines the range covers.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range covers no lines.
func (r Range) Empty() bool { return r.End <= r.Start }

// Contains reports whether i falls inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// EditKind identifies the type of an edit operation.
type EditKind int

// Edit operation kinds.
const (
	EditEqual EditKind = iota
	EditInsert
	EditDelete
	EditReplace
)

// String returns the lowercase name of the kind.
func (k EditKind) String() string {
	switch k {
	case EditEqual:
		return "equal"
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	case EditReplace:
		return "replace"
	default:
		return fmt.Sprintf("EditKind(%d)", int(k))
	}
}

// EditOp is a single operation in an edit script. Both ranges are
// always populated: an Insert carries an empty Old range anchored at
// the insertion point, and a Delete carries an empty New range at the
// position the lines were removed.
type EditOp struct {
	Kind EditKind
	Old  Range // Line indices in the old snapshot
	New  Range // Line indices in the new snapshot
}

// EditScript is an ordered sequence of operations transforming the old
// snapshot into the new one. Operations cover every line of both sides
// exactly once, contiguous and non-overlapping, ordered by position.
type EditScript struct {
	Ops []EditOp

	// Coarse is true when the script was degraded to a single
	// whole-range Replace because the change exceeded the engine's
	// edit budget. Alignment and rendering still work; intraline
	// highlighting is skipped.
	Coarse bool
}

// Stats returns the number of deleted and added lines in the script.
func (s EditScript) Stats() (deleted, added int) {
	for _, op := range s.Ops {
		switch op.Kind {
		case EditDelete:
			deleted += op.Old.Len()
		case EditInsert:
			added += op.New.Len()
		case EditReplace:
			deleted += op.Old.Len()
			added += op.New.Len()
		}
	}
	return deleted, added
}

// Identical reports whether the script describes two equal snapshots.
func (s EditScript) Identical() bool {
	for _, op := range s.Ops {
		if op.Kind != EditEqual {
			return false
		}
	}
	return true
}

// Differ computes a line-level edit script between two snapshots.
type Differ interface {
	// Diff never fails: degenerate inputs (either side empty or nil)
	// yield a single Insert, Delete or Equal op covering everything.
	Diff(old, new *Snapshot) EditScript
}

// FilePair couples the two revisions of a file shown side by side.
type FilePair struct {
	Title   string // Display title, e.g. "a.go ↔ b.go"
	OldName string // Path of the old revision, used for language detection
	NewName string // Path of the new revision
	Old     *Snapshot
	New     *Snapshot
}

// PairTitle builds a display title from two file names. Identical
// names collapse to one; missing names fall back to "untitled".
func PairTitle(oldName, newName string) string {
	if oldName == "" && newName == "" {
		return "untitled"
	}
	if oldName == newName || oldName == "" {
		return newName
	}
	if newName == "" {
		return oldName
	}
	return oldName + " ↔ " + newName
}

// Pane identifies one side of the split view.
type Pane int

// Panes. PaneLeft shows the old revision, PaneRight the new one.
const (
	PaneLeft Pane = iota
	PaneRight
)

// String returns "left" or "right".
func (p Pane) String() string {
	if p == PaneRight {
		return "right"
	}
	return "left"
}

// Other returns the opposite pane.
func (p Pane) Other() Pane {
	if p == PaneLeft {
		return PaneRight
	}
	return PaneLeft
}

// ScrollPosition is a vertical anchor within a pane: a row index into
// the alignment map plus a fractional offset into that row. Row is the
// shared coordinate both panes agree on; Offset is pane-local since
// rows may render at different heights.
type ScrollPosition struct {
	Row    int
	Offset float64
}

// PatchParser extracts file pairs from a unified diff stream.
type PatchParser interface {
	Parse(r io.Reader) ([]FilePair, error)
}

// GitRunner provides access to git for loading file revisions.
type GitRunner interface {
	// ShowFile returns the contents of path at the given revision.
	ShowFile(ctx context.Context, repoPath, rev, path string) (string, error)
	// ChangedFiles returns paths that differ between two revisions,
	// optionally narrowed to a single path.
	ChangedFiles(ctx context.Context, repoPath, oldRev, newRev, path string) ([]string, error)
}

// Viewer presents file pairs interactively.
type Viewer interface {
	View(ctx context.Context, pairs []FilePair) error
}

// Watcher reports changes to watched filesystem paths.
type Watcher interface {
	// Watch emits on the returned channel whenever any of the paths
	// changes, until ctx is cancelled. The channel is closed on return.
	Watch(ctx context.Context, paths ...string) (<-chan string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}
