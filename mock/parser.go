package mock

import (
	"io"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.PatchParser = (*PatchParser)(nil)

// PatchParser is a mock implementation of splitdiff.PatchParser.
type PatchParser struct {
	ParseFn func(r io.Reader) ([]splitdiff.FilePair, error)
}

func (p *PatchParser) Parse(r io.Reader) ([]splitdiff.FilePair, error) {
	return p.ParseFn(r)
}
