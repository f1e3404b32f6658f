// Package gitdiff parses unified diff streams into file pairs using
// the bluekeyes/go-gitdiff library.
package gitdiff

import (
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/splitdiff"
)

// Parser parses unified diff output into file pairs.
type Parser struct{}

// Compile-time interface verification.
var _ splitdiff.PatchParser = (*Parser)(nil)

// NewParser returns a parser for unified diff streams.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a unified diff and reconstructs one file pair per changed
// file. Only the patched region is recovered: the old side holds context
// and deleted lines, the new side context and added lines, concatenated
// across fragments. Both sides omit the same unpatched lines, so diffing
// the pair reproduces the patch's hunks. Binary files are skipped.
func (p *Parser) Parse(r io.Reader) ([]splitdiff.FilePair, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, err
	}

	var pairs []splitdiff.FilePair
	for _, f := range files {
		if pair, ok := pairFromFile(f); ok {
			pairs = append(pairs, pair)
		}
	}
	return pairs, nil
}

func pairFromFile(f *gitdiff.File) (splitdiff.FilePair, bool) {
	if f.IsBinary {
		return splitdiff.FilePair{}, false
	}

	var oldLines, newLines []string
	for _, frag := range f.TextFragments {
		for _, l := range frag.Lines {
			text := strings.TrimSuffix(l.Line, "\n")
			switch l.Op {
			case gitdiff.OpContext:
				oldLines = append(oldLines, text)
				newLines = append(newLines, text)
			case gitdiff.OpDelete:
				oldLines = append(oldLines, text)
			case gitdiff.OpAdd:
				newLines = append(newLines, text)
			}
		}
	}

	return splitdiff.FilePair{
		OldName: f.OldName,
		NewName: f.NewName,
		Old:     splitdiff.NewSnapshot(oldLines, 0),
		New:     splitdiff.NewSnapshot(newLines, 0),
	}, true
}
