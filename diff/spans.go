package diff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.SpanDiffer = (*Spanner)(nil)

// DefaultSimilarity is the minimum similarity ratio a line pair must
// reach for character spans to be produced. Similarity is
// 1 - distance/max(len), measured in runes.
const DefaultSimilarity = 0.3

// SpannerOption configures a Spanner.
type SpannerOption func(*Spanner)

// WithSimilarity sets the minimum similarity ratio.
func WithSimilarity(v float64) SpannerOption {
	return func(s *Spanner) {
		s.similarity = v
	}
}

// Spanner computes character-level intraline spans for replaced line
// pairs. Lines that are too dissimilar produce no spans: character
// highlighting refines "this line changed", it does not replace it.
// Spanner is stateless and safe for concurrent use.
type Spanner struct {
	similarity float64
}

// NewSpanner creates a Spanner with the given options.
func NewSpanner(opts ...SpannerOption) *Spanner {
	s := &Spanner{similarity: DefaultSimilarity}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiffSpans returns the minimal changed regions of old and new as
// rune offsets. ok is false when the pair fails the similarity gate.
func (s *Spanner) DiffSpans(old, new string) (splitdiff.RowSpans, bool) {
	if old == new {
		return splitdiff.RowSpans{}, true
	}

	maxLen := max(utf8.RuneCountInString(old), utf8.RuneCountInString(new))
	if maxLen == 0 {
		return splitdiff.RowSpans{}, true
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, new, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	distance := dmp.DiffLevenshtein(diffs)
	if 1.0-float64(distance)/float64(maxLen) < s.similarity {
		return splitdiff.RowSpans{}, false
	}

	var spans splitdiff.RowSpans
	oldPos, newPos := 0, 0
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldPos += n
			newPos += n
		case diffmatchpatch.DiffDelete:
			spans.Old = append(spans.Old, splitdiff.Span{Start: oldPos, End: oldPos + n})
			oldPos += n
		case diffmatchpatch.DiffInsert:
			spans.New = append(spans.New, splitdiff.Span{Start: newPos, End: newPos + n})
			newPos += n
		}
	}
	return spans, true
}
