// Package worddiff computes word-level intraline spans for replaced
// line pairs.
package worddiff

import (
	"unicode/utf8"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/difflib"
)

// Compile-time interface verification.
var _ splitdiff.SpanDiffer = (*Differ)(nil)

// DefaultSimilarity is the minimum token overlap ratio for word-level
// diffing. Below it, lines are treated as complete replacements.
const DefaultSimilarity = 0.4

// Option configures a Differ.
type Option func(*Differ)

// WithSimilarity sets the minimum token overlap ratio.
func WithSimilarity(v float64) Option {
	return func(d *Differ) {
		d.similarity = v
	}
}

// Differ tokenizes replaced line pairs and marks the token runs that
// changed between them. Spans cover whole tokens, so a renamed
// identifier highlights as one unit rather than scattered characters.
type Differ struct {
	tokenizer  *difflib.Tokenizer
	similarity float64
}

// NewDiffer creates a new Differ instance.
func NewDiffer(opts ...Option) *Differ {
	d := &Differ{
		tokenizer:  difflib.NewTokenizer(),
		similarity: DefaultSimilarity,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiffSpans returns the changed token runs of old and new as rune
// spans. ok is false when the pair shares too few tokens for
// word-level highlighting to be meaningful.
func (d *Differ) DiffSpans(old, new string) (splitdiff.RowSpans, bool) {
	if old == new {
		return splitdiff.RowSpans{}, true
	}
	if old == "" || new == "" {
		return splitdiff.RowSpans{}, false
	}

	oldTokens := d.tokenizer.Tokenize(old)
	newTokens := d.tokenizer.Tokenize(new)

	if difflib.Similarity(oldTokens, newTokens) < d.similarity {
		return splitdiff.RowSpans{}, false
	}

	matches := difflib.LCS(oldTokens, newTokens)
	if len(matches) == 0 {
		return splitdiff.RowSpans{}, false
	}

	matchedOld := make(map[int]bool, len(matches))
	matchedNew := make(map[int]bool, len(matches))
	for _, m := range matches {
		matchedOld[m.OldIdx] = true
		matchedNew[m.NewIdx] = true
	}

	return splitdiff.RowSpans{
		Old: gapSpans(oldTokens, matchedOld),
		New: gapSpans(newTokens, matchedNew),
	}, true
}

// gapSpans converts every unmatched token into a changed span,
// merging runs of adjacent unmatched tokens into single spans.
func gapSpans(tokens []string, matched map[int]bool) []splitdiff.Span {
	var spans []splitdiff.Span
	pos := 0
	for i, tok := range tokens {
		n := utf8.RuneCountInString(tok)
		if !matched[i] {
			if len(spans) > 0 && spans[len(spans)-1].End == pos {
				spans[len(spans)-1].End = pos + n
			} else {
				spans = append(spans, splitdiff.Span{Start: pos, End: pos + n})
			}
		}
		pos += n
	}
	return spans
}
