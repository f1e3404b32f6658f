package splitdiff

// Span is a half-open [Start, End) interval of rune offsets within a
// single line.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether the rune offset i falls inside the span.
func (s Span) Contains(i int) bool { return i >= s.Start && i < s.End }

// RowSpans holds the intraline spans of one replaced row pair: the
// changed regions of the old line and of the new line. Spans on each
// side are non-overlapping and ordered. A side with no spans is
// unchanged apart from what the other side's spans describe, as in a
// pure insertion within the line.
type RowSpans struct {
	Old []Span
	New []Span
}

// SpanDiffer computes intraline spans for a replaced line pair.
type SpanDiffer interface {
	// DiffSpans returns the minimal changed regions of old and new as
	// rune offsets. ok is false when the lines are too dissimilar for
	// character highlighting to be meaningful; callers then treat the
	// whole line as changed.
	DiffSpans(old, new string) (spans RowSpans, ok bool)
}

// IntralineSpans computes character-level spans for every replaced row
// in the map, keyed by row index. Filler rows have no paired line and
// are skipped, as is the entire map when it is coarse. Rows whose pair
// fails the differ's similarity gate get no entry.
func IntralineSpans(m *AlignmentMap, old, new *Snapshot, d SpanDiffer) map[int]RowSpans {
	if m == nil || d == nil || m.Coarse {
		return nil
	}
	var spans map[int]RowSpans
	for i, row := range m.Rows {
		if row.Kind != RowReplaced {
			continue
		}
		rs, ok := d.DiffSpans(old.Line(row.OldLine), new.Line(row.NewLine))
		if !ok {
			continue
		}
		if spans == nil {
			spans = make(map[int]RowSpans)
		}
		spans[i] = rs
	}
	return spans
}
