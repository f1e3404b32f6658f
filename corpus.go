package splitdiff

import "time"

// Case is one corpus entry: a pair of file contents whose alignment is
// worth checking, either by the validator or by a human reviewer.
type Case struct {
	Name    string `json:"name"`               // Unique name within the corpus
	OldName string `json:"old_name,omitempty"` // Optional path for language detection
	NewName string `json:"new_name,omitempty"`
	OldText string `json:"old"` // Full old file contents
	NewText string `json:"new"` // Full new file contents
}

// Pair converts the case into a file pair ready for diffing. Both
// snapshots carry revision zero.
func (c Case) Pair() FilePair {
	title := c.Name
	if title == "" {
		title = PairTitle(c.OldName, c.NewName)
	}
	return FilePair{
		Title:   title,
		OldName: c.OldName,
		NewName: c.NewName,
		Old:     SnapshotFromText(c.OldText, 0),
		New:     SnapshotFromText(c.NewText, 0),
	}
}

// Judgment represents a human reviewer's evaluation of how well a
// corpus case is aligned and highlighted.
type Judgment struct {
	Case     string    `json:"case"`      // Links to Case.Name
	Index    int       `json:"index"`     // Position in the corpus file (0-based)
	Judged   bool      `json:"judged"`    // Whether pass/fail has been explicitly set
	Pass     bool      `json:"pass"`      // Whether the alignment is acceptable
	Critique string    `json:"critique"`  // Explanation for failure (empty if pass)
	JudgedAt time.Time `json:"judged_at"` // When judgment was recorded
}

// CaseLoader loads corpus cases from a source.
type CaseLoader interface {
	Load(path string) ([]Case, error)
}

// CaseSaver appends corpus cases to a destination.
type CaseSaver interface {
	Save(path string, c Case) error
}

// JudgmentStore persists and retrieves judgments.
type JudgmentStore interface {
	Load(path string) ([]Judgment, error)
	Save(path string, judgments []Judgment) error
}
