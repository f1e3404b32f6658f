package mock

import "github.com/fwojciec/splitdiff"

// Compile-time interface verification.
var _ splitdiff.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of splitdiff.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
