package splitdiff

import "strings"

// Revision is a monotonically increasing version identifier for
// snapshot content. Views use it to discard results computed against
// superseded snapshot pairs.
type Revision uint64

// Snapshot is an ordered sequence of lines captured from one side of a
// comparison at a particular revision. Lines carry no trailing
// newline. Snapshots are treated as immutable once constructed; the
// engine only ever reads them.
type Snapshot struct {
	Lines    []string
	Revision Revision
}

// NewSnapshot builds a snapshot from pre-split lines.
func NewSnapshot(lines []string, rev Revision) *Snapshot {
	return &Snapshot{Lines: lines, Revision: rev}
}

// SnapshotFromText splits text into lines. A trailing newline
// terminates the last line rather than opening an empty one, so
// "a\nb" and "a\nb\n" both yield two lines. Empty text yields zero
// lines.
func SnapshotFromText(text string, rev Revision) *Snapshot {
	if text == "" {
		return &Snapshot{Revision: rev}
	}
	text = strings.TrimSuffix(text, "\n")
	return &Snapshot{Lines: strings.Split(text, "\n"), Revision: rev}
}

// Len returns the number of lines. A nil snapshot has zero lines.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Lines)
}

// Line returns line i, or the empty string if i is out of range or
// the snapshot is nil.
func (s *Snapshot) Line(i int) string {
	if s == nil || i < 0 || i >= len(s.Lines) {
		return ""
	}
	return s.Lines[i]
}

// Text reassembles the snapshot content. Non-empty snapshots end with
// a newline.
func (s *Snapshot) Text() string {
	if s.Len() == 0 {
		return ""
	}
	return strings.Join(s.Lines, "\n") + "\n"
}
