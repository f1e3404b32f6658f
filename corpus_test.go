package splitdiff_test

import (
	"testing"

	"github.com/fwojciec/splitdiff"
	"github.com/stretchr/testify/assert"
)

func TestCase_Pair(t *testing.T) {
	t.Parallel()

	t.Run("converts texts into snapshots", func(t *testing.T) {
		t.Parallel()

		c := splitdiff.Case{
			Name:    "rename-func",
			OldName: "a.go",
			NewName: "b.go",
			OldText: "one\ntwo\n",
			NewText: "one\n",
		}

		pair := c.Pair()

		assert.Equal(t, "rename-func", pair.Title)
		assert.Equal(t, []string{"one", "two"}, pair.Old.Lines)
		assert.Equal(t, []string{"one"}, pair.New.Lines)
	})

	t.Run("falls back to file names for the title", func(t *testing.T) {
		t.Parallel()

		c := splitdiff.Case{OldName: "a.go", NewName: "b.go"}
		assert.Equal(t, "a.go ↔ b.go", c.Pair().Title)
	})
}
