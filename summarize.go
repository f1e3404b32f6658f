package splitdiff

import (
	"context"
	"fmt"
)

// SummaryInput is the complete input for summarizing one comparison:
// the compared pair plus the alignment computed for it.
type SummaryInput struct {
	Pair FilePair
	Map  *AlignmentMap
}

// CaseID returns a stable identifier for this input, used to match
// asynchronous results to the pair they describe. Unnamed pairs fall
// back to the name-derived title, so pairs parsed from one patch get
// distinct identifiers.
func (in SummaryInput) CaseID() string {
	title := in.Pair.Title
	if title == "" {
		title = PairTitle(in.Pair.OldName, in.Pair.NewName)
	}
	var oldRev, newRev Revision
	if in.Pair.Old != nil {
		oldRev = in.Pair.Old.Revision
	}
	if in.Pair.New != nil {
		newRev = in.Pair.New.Revision
	}
	return fmt.Sprintf("%s@%d:%d", title, oldRev, newRev)
}

// HunkSummary describes a single hunk in plain language.
type HunkSummary struct {
	Hunk int    `json:"hunk"` // Ordinal of the hunk the text refers to
	Text string `json:"text"` // Short description of the change
}

// Summary is the LLM's structured description of a comparison.
type Summary struct {
	Overview string        `json:"overview"` // One sentence describing the whole change
	Hunks    []HunkSummary `json:"hunks"`    // Per-hunk descriptions in ordinal order
}

// Validate checks that every hunk reference in the summary points at
// one of numHunks hunks. Returns nil if all references are valid.
func (s *Summary) Validate(numHunks int) error {
	for _, h := range s.Hunks {
		if h.Hunk < 0 || h.Hunk >= numHunks {
			return fmt.Errorf("summary references hunk %d, map has %d hunks", h.Hunk, numHunks)
		}
	}
	return nil
}

// Summarizer produces natural-language summaries of comparisons.
type Summarizer interface {
	Summarize(ctx context.Context, input SummaryInput) (*Summary, error)
}
