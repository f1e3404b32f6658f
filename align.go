package splitdiff

import "fmt"

// NoLine marks the absent side of a filler row.
const NoLine = -1

// RowKind classifies an alignment row.
type RowKind int

// Row kinds.
const (
	RowContext  RowKind = iota // Both sides present and equal
	RowReplaced                // Both sides present and different
	RowDeleted                 // Only the old side present
	RowInserted                // Only the new side present
)

// String returns the lowercase name of the kind.
func (k RowKind) String() string {
	switch k {
	case RowContext:
		return "context"
	case RowReplaced:
		return "replaced"
	case RowDeleted:
		return "deleted"
	case RowInserted:
		return "inserted"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// AlignmentRow is one synchronized display row: at most one old line
// paired with at most one new line. A side holding NoLine is a filler
// for the opposite pane's insert or delete block.
type AlignmentRow struct {
	OldLine int // Old line index, or NoLine
	NewLine int // New line index, or NoLine
	Kind    RowKind
}

// HasOld reports whether the row shows a line in the left pane.
func (r AlignmentRow) HasOld() bool { return r.OldLine != NoLine }

// HasNew reports whether the row shows a line in the right pane.
func (r AlignmentRow) HasNew() bool { return r.NewLine != NoLine }

// HasPane reports whether the row shows a line in the given pane.
func (r AlignmentRow) HasPane(p Pane) bool {
	if p == PaneLeft {
		return r.HasOld()
	}
	return r.HasNew()
}

// Changed reports whether the row belongs to a hunk.
func (r AlignmentRow) Changed() bool { return r.Kind != RowContext }

// Hunk is a maximal run of changed rows in an alignment map. Ordinals
// are assigned top to bottom starting at zero and identify the hunk
// for navigation.
type Hunk struct {
	Ordinal int
	Rows    Range // Alignment row indices covered by the hunk
	Old     Range // Old line indices covered, possibly empty
	New     Range // New line indices covered, possibly empty
}

// AlignmentMap is the shared row coordinate space both panes render
// from: row i of the left pane and row i of the right pane always show
// the same AlignmentRow. Row order is monotonic in both old and new
// line indices, and every line of both snapshots appears in exactly
// one row.
type AlignmentMap struct {
	Rows   []AlignmentRow
	Hunks  []Hunk
	Coarse bool // Carried over from the edit script that produced the map
}

// Align expands an edit script into an alignment map. It is pure and
// deterministic: the same script always yields the same map.
//
// Each Equal op becomes one context row per line pair. Each Replace op
// becomes max(old, new) rows: the first min(old, new) rows pair
// old[i] with new[i], and leftover lines on the longer side become
// filler rows absent on the short side. Pairing replaced lines
// index-by-index keeps them vertically adjacent for intraline
// highlighting instead of pushing all fillers to one end. Pure Insert
// and Delete ops become one filler row per line.
func Align(script EditScript) *AlignmentMap {
	m := &AlignmentMap{Coarse: script.Coarse}

	for _, op := range script.Ops {
		switch op.Kind {
		case EditEqual:
			for i := 0; i < op.Old.Len(); i++ {
				m.Rows = append(m.Rows, AlignmentRow{
					OldLine: op.Old.Start + i,
					NewLine: op.New.Start + i,
					Kind:    RowContext,
				})
			}
		case EditDelete:
			for i := 0; i < op.Old.Len(); i++ {
				m.Rows = append(m.Rows, AlignmentRow{
					OldLine: op.Old.Start + i,
					NewLine: NoLine,
					Kind:    RowDeleted,
				})
			}
		case EditInsert:
			for i := 0; i < op.New.Len(); i++ {
				m.Rows = append(m.Rows, AlignmentRow{
					OldLine: NoLine,
					NewLine: op.New.Start + i,
					Kind:    RowInserted,
				})
			}
		case EditReplace:
			paired := min(op.Old.Len(), op.New.Len())
			for i := 0; i < paired; i++ {
				m.Rows = append(m.Rows, AlignmentRow{
					OldLine: op.Old.Start + i,
					NewLine: op.New.Start + i,
					Kind:    RowReplaced,
				})
			}
			for i := paired; i < op.Old.Len(); i++ {
				m.Rows = append(m.Rows, AlignmentRow{
					OldLine: op.Old.Start + i,
					NewLine: NoLine,
					Kind:    RowDeleted,
				})
			}
			for i := paired; i < op.New.Len(); i++ {
				m.Rows = append(m.Rows, AlignmentRow{
					OldLine: NoLine,
					NewLine: op.New.Start + i,
					Kind:    RowInserted,
				})
			}
		}
	}

	m.Hunks = deriveHunks(m.Rows)
	return m
}

// deriveHunks collects maximal runs of changed rows.
func deriveHunks(rows []AlignmentRow) []Hunk {
	var hunks []Hunk
	start := -1
	for i, row := range rows {
		if row.Changed() {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			hunks = append(hunks, makeHunk(len(hunks), rows, start, i))
			start = -1
		}
	}
	if start >= 0 {
		hunks = append(hunks, makeHunk(len(hunks), rows, start, len(rows)))
	}
	return hunks
}

// makeHunk builds the hunk covering rows[start:end). The old and new
// line ranges follow from the first and last present line on each
// side; a side with no lines gets an empty range anchored where the
// change happened.
func makeHunk(ordinal int, rows []AlignmentRow, start, end int) Hunk {
	h := Hunk{
		Ordinal: ordinal,
		Rows:    Range{Start: start, End: end},
		Old:     Range{Start: NoLine, End: NoLine},
		New:     Range{Start: NoLine, End: NoLine},
	}
	for _, row := range rows[start:end] {
		if row.HasOld() {
			if h.Old.Start == NoLine {
				h.Old.Start = row.OldLine
			}
			h.Old.End = row.OldLine + 1
		}
		if row.HasNew() {
			if h.New.Start == NoLine {
				h.New.Start = row.NewLine
			}
			h.New.End = row.NewLine + 1
		}
	}
	// Anchor an absent side at the position implied by the other: for
	// a pure insertion the old range is empty but still points at the
	// line the insertion happened before, taken from surrounding rows.
	if h.Old.Start == NoLine {
		h.Old = Range{Start: anchorOld(rows, start), End: anchorOld(rows, start)}
	}
	if h.New.Start == NoLine {
		h.New = Range{Start: anchorNew(rows, start), End: anchorNew(rows, start)}
	}
	return h
}

// anchorOld returns the old line index the row at start sits before.
func anchorOld(rows []AlignmentRow, start int) int {
	for i := start - 1; i >= 0; i-- {
		if rows[i].HasOld() {
			return rows[i].OldLine + 1
		}
	}
	return 0
}

// anchorNew returns the new line index the row at start sits before.
func anchorNew(rows []AlignmentRow, start int) int {
	for i := start - 1; i >= 0; i-- {
		if rows[i].HasNew() {
			return rows[i].NewLine + 1
		}
	}
	return 0
}

// Len returns the number of rows. A nil map has zero rows.
func (m *AlignmentMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// NumHunks returns the number of hunks.
func (m *AlignmentMap) NumHunks() int {
	if m == nil {
		return 0
	}
	return len(m.Hunks)
}

// HunkAt returns the hunk containing the given row.
func (m *AlignmentMap) HunkAt(row int) (Hunk, bool) {
	if m == nil {
		return Hunk{}, false
	}
	for _, h := range m.Hunks {
		if h.Rows.Contains(row) {
			return h, true
		}
	}
	return Hunk{}, false
}

// NextHunk returns the first hunk starting strictly after row.
func (m *AlignmentMap) NextHunk(row int) (Hunk, bool) {
	if m == nil {
		return Hunk{}, false
	}
	for _, h := range m.Hunks {
		if h.Rows.Start > row {
			return h, true
		}
	}
	return Hunk{}, false
}

// PrevHunk returns the last hunk starting strictly before row.
func (m *AlignmentMap) PrevHunk(row int) (Hunk, bool) {
	if m == nil {
		return Hunk{}, false
	}
	for i := len(m.Hunks) - 1; i >= 0; i-- {
		if m.Hunks[i].Rows.Start < row {
			return m.Hunks[i], true
		}
	}
	return Hunk{}, false
}

// RowForOld returns the row displaying the given old line.
func (m *AlignmentMap) RowForOld(line int) (int, bool) {
	if m == nil || line < 0 {
		return 0, false
	}
	for i, row := range m.Rows {
		if row.OldLine == line {
			return i, true
		}
	}
	return 0, false
}

// RowForNew returns the row displaying the given new line.
func (m *AlignmentMap) RowForNew(line int) (int, bool) {
	if m == nil || line < 0 {
		return 0, false
	}
	for i, row := range m.Rows {
		if row.NewLine == line {
			return i, true
		}
	}
	return 0, false
}

// NearestContent returns the row closest to row that shows content in
// pane p, preferring the earlier row on ties. It returns false only
// when no row shows content on that side.
func (m *AlignmentMap) NearestContent(row int, p Pane) (int, bool) {
	if m.Len() == 0 {
		return 0, false
	}
	if row < 0 {
		row = 0
	}
	if row >= len(m.Rows) {
		row = len(m.Rows) - 1
	}
	if m.Rows[row].HasPane(p) {
		return row, true
	}
	for d := 1; ; d++ {
		lo, hi := row-d, row+d
		if lo < 0 && hi >= len(m.Rows) {
			return 0, false
		}
		if lo >= 0 && m.Rows[lo].HasPane(p) {
			return lo, true
		}
		if hi < len(m.Rows) && m.Rows[hi].HasPane(p) {
			return hi, true
		}
	}
}
