package splitdiff

import "fmt"

// ValidationReason identifies why an alignment map is invalid.
type ValidationReason string

// Validation error reasons.
const (
	ErrRowShape     ValidationReason = "row_shape"     // Row kind inconsistent with line presence
	ErrRowOrder     ValidationReason = "row_order"     // Line indices not strictly increasing
	ErrLineCoverage ValidationReason = "line_coverage" // Line missing or out of range
	ErrLineRepeated ValidationReason = "round_trip"    // Line shown in more than one row
	ErrRowCount     ValidationReason = "length"        // Row count breaks the length law
)

// ValidationError describes a single invariant violation in an
// alignment map.
type ValidationError struct {
	Row    int              // Index of the offending row, or -1 for map-level errors
	Reason ValidationReason // Why the map is invalid
	Pane   Pane             // Side the error concerns, for order and coverage errors
	Line   int              // Line index involved, for order and coverage errors
	Want   int              // Expected row count, for length errors
	Got    int              // Actual row count, for length errors
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	switch e.Reason {
	case ErrRowShape:
		return fmt.Sprintf("row %d: line presence does not match row kind", e.Row)
	case ErrRowOrder:
		return fmt.Sprintf("row %d: %s line %d out of order", e.Row, e.Pane, e.Line)
	case ErrLineCoverage:
		if e.Row < 0 {
			return fmt.Sprintf("%s line %d missing from alignment map", e.Pane, e.Line)
		}
		return fmt.Sprintf("row %d: %s line %d out of range", e.Row, e.Pane, e.Line)
	case ErrLineRepeated:
		return fmt.Sprintf("row %d: %s line %d shown more than once", e.Row, e.Pane, e.Line)
	case ErrRowCount:
		return fmt.Sprintf("alignment map has %d rows, want %d", e.Got, e.Want)
	default:
		return fmt.Sprintf("row %d: unknown validation failure", e.Row)
	}
}

// Validate checks an alignment map against the invariants every map
// must satisfy for snapshots of the given lengths: row kinds match
// line presence, line indices increase monotonically on both sides,
// every line of both snapshots appears in exactly one row, and the
// row count equals oldLen + newLen minus the number of paired rows.
// Returns a slice of violations, or nil if the map is valid.
func Validate(m *AlignmentMap, oldLen, newLen int) []ValidationError {
	var errs []ValidationError

	seenOld := make([]int, oldLen)
	seenNew := make([]int, newLen)
	lastOld, lastNew := -1, -1
	paired := 0

	for i, row := range m.Rows {
		if !rowShapeOK(row) {
			errs = append(errs, ValidationError{Row: i, Reason: ErrRowShape})
		}
		if row.HasOld() && row.HasNew() {
			paired++
		}
		if row.HasOld() {
			switch {
			case row.OldLine >= oldLen:
				errs = append(errs, ValidationError{Row: i, Reason: ErrLineCoverage, Pane: PaneLeft, Line: row.OldLine})
			case seenOld[row.OldLine] > 0:
				errs = append(errs, ValidationError{Row: i, Reason: ErrLineRepeated, Pane: PaneLeft, Line: row.OldLine})
			default:
				seenOld[row.OldLine]++
			}
			if row.OldLine <= lastOld {
				errs = append(errs, ValidationError{Row: i, Reason: ErrRowOrder, Pane: PaneLeft, Line: row.OldLine})
			}
			lastOld = row.OldLine
		}
		if row.HasNew() {
			switch {
			case row.NewLine >= newLen:
				errs = append(errs, ValidationError{Row: i, Reason: ErrLineCoverage, Pane: PaneRight, Line: row.NewLine})
			case seenNew[row.NewLine] > 0:
				errs = append(errs, ValidationError{Row: i, Reason: ErrLineRepeated, Pane: PaneRight, Line: row.NewLine})
			default:
				seenNew[row.NewLine]++
			}
			if row.NewLine <= lastNew {
				errs = append(errs, ValidationError{Row: i, Reason: ErrRowOrder, Pane: PaneRight, Line: row.NewLine})
			}
			lastNew = row.NewLine
		}
	}

	for line, n := range seenOld {
		if n == 0 {
			errs = append(errs, ValidationError{Row: -1, Reason: ErrLineCoverage, Pane: PaneLeft, Line: line})
		}
	}
	for line, n := range seenNew {
		if n == 0 {
			errs = append(errs, ValidationError{Row: -1, Reason: ErrLineCoverage, Pane: PaneRight, Line: line})
		}
	}

	// Paired rows carry two lines, so the total row count follows
	// from how many rows show both sides at once.
	if want := oldLen + newLen - paired; len(m.Rows) != want {
		errs = append(errs, ValidationError{Row: -1, Reason: ErrRowCount, Want: want, Got: len(m.Rows)})
	}

	return errs
}

// rowShapeOK reports whether a row's kind agrees with which sides are
// present.
func rowShapeOK(r AlignmentRow) bool {
	switch r.Kind {
	case RowContext, RowReplaced:
		return r.HasOld() && r.HasNew()
	case RowDeleted:
		return r.HasOld() && !r.HasNew()
	case RowInserted:
		return !r.HasOld() && r.HasNew()
	default:
		return false
	}
}
