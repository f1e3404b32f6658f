package difflib_test

import (
	"testing"

	"github.com/fwojciec/splitdiff/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tok := difflib.NewTokenizer()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		// Identifiers
		{
			name:     "simple identifier",
			input:    "func",
			expected: []string{"func"},
		},
		{
			name:     "underscore identifier",
			input:    "_privateVar",
			expected: []string{"_privateVar"},
		},
		{
			name:     "identifier with numbers",
			input:    "var123",
			expected: []string{"var123"},
		},

		// Numbers
		{
			name:     "integer",
			input:    "123",
			expected: []string{"123"},
		},
		{
			name:     "float",
			input:    "3.14",
			expected: []string{"3.14"},
		},

		// String literals
		{
			name:     "double quoted string",
			input:    `"hello"`,
			expected: []string{`"hello"`},
		},
		{
			name:     "single quoted string",
			input:    "'x'",
			expected: []string{"'x'"},
		},

		// Operators
		{
			name:     "assignment operator",
			input:    ":=",
			expected: []string{":="},
		},
		{
			name:     "equality operator",
			input:    "==",
			expected: []string{"=="},
		},

		// Punctuation
		{
			name:     "parentheses",
			input:    "()",
			expected: []string{"(", ")"},
		},

		// Whitespace preserved
		{
			name:     "multiple spaces preserved",
			input:    "a  b",
			expected: []string{"a", "  ", "b"},
		},
		{
			name:     "tab preserved",
			input:    "a\tb",
			expected: []string{"a", "\t", "b"},
		},

		// Combined expressions
		{
			name:     "function call",
			input:    "foo(1, 2)",
			expected: []string{"foo", "(", "1", ",", " ", "2", ")"},
		},
		{
			name:     "assignment",
			input:    "x := 42",
			expected: []string{"x", " ", ":=", " ", "42"},
		},

		// Edge cases
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "special characters preserved",
			input:    "@#$?",
			expected: []string{"@", "#", "$", "?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tok.Tokenize(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLCS(t *testing.T) {
	t.Parallel()

	t.Run("matches the common subsequence in order", func(t *testing.T) {
		t.Parallel()

		matches := difflib.LCS(
			[]string{"a", "b", "c", "d"},
			[]string{"a", "x", "c", "d"},
		)

		require.Len(t, matches, 3)
		assert.Equal(t, difflib.Match{OldIdx: 0, NewIdx: 0}, matches[0])
		assert.Equal(t, difflib.Match{OldIdx: 2, NewIdx: 2}, matches[1])
		assert.Equal(t, difflib.Match{OldIdx: 3, NewIdx: 3}, matches[2])
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, difflib.LCS([]string{"a"}, []string{"b"}))
	})

	t.Run("returns nil for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, difflib.LCS(nil, []string{"a"}))
		assert.Nil(t, difflib.LCS([]string{"a"}, nil))
	})

	t.Run("handles repeated tokens", func(t *testing.T) {
		t.Parallel()

		matches := difflib.LCS(
			[]string{"x", "x", "y"},
			[]string{"x", "y"},
		)

		require.Len(t, matches, 2)
		assert.Equal(t, difflib.Match{OldIdx: 2, NewIdx: 1}, matches[1])
	})
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("identical sequences score one", func(t *testing.T) {
		t.Parallel()

		s := difflib.Similarity([]string{"a", "b"}, []string{"a", "b"})
		assert.Equal(t, 1.0, s)
	})

	t.Run("disjoint sequences score zero", func(t *testing.T) {
		t.Parallel()

		s := difflib.Similarity([]string{"a"}, []string{"b"})
		assert.Equal(t, 0.0, s)
	})

	t.Run("partial overlap scores in between", func(t *testing.T) {
		t.Parallel()

		// One shared token out of two per side: 2*1/(2+2).
		s := difflib.Similarity([]string{"a", "b"}, []string{"a", "c"})
		assert.InDelta(t, 0.5, s, 1e-9)
	})

	t.Run("counts duplicates with multiplicity", func(t *testing.T) {
		t.Parallel()

		s := difflib.Similarity([]string{"a", "a"}, []string{"a"})
		assert.InDelta(t, 2.0/3.0, s, 1e-9)
	})

	t.Run("empty side scores zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0.0, difflib.Similarity(nil, []string{"a"}))
	})
}
