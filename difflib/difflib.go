// Package difflib provides word-level sequence matching: a code-aware
// tokenizer, longest-common-subsequence matching, and a token overlap
// similarity measure.
package difflib

import "regexp"

// Tokenizer splits strings into code-aware tokens.
type Tokenizer struct {
	tokenPattern *regexp.Regexp
}

// NewTokenizer creates a new Tokenizer instance.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		tokenPattern: regexp.MustCompile(
			`[a-zA-Z_][a-zA-Z0-9_]*|` + // identifiers
				`[0-9]+\.?[0-9]*|` + // numbers
				`"[^"]*"|'[^']*'|` + // string literals
				`[+\-*/=<>!&|^%:]+|` + // operators (including :)
				`[(){}\[\];,.]|` + // punctuation
				`\s+|` + // whitespace
				`.`, // catch-all for any remaining character
		),
	}
}

// Tokenize splits a string into tokens.
func (t *Tokenizer) Tokenize(s string) []string {
	return t.tokenPattern.FindAllString(s, -1)
}

// Match pairs an index in the old token sequence with the index of
// the equal token in the new sequence.
type Match struct {
	OldIdx int
	NewIdx int
}

// LCS returns the longest common subsequence of two token sequences
// as ordered index pairs. Uses O(n*m) dynamic programming over a flat
// table to minimize allocations.
func LCS(oldTokens, newTokens []string) []Match {
	m, n := len(oldTokens), len(newTokens)
	if m == 0 || n == 0 {
		return nil
	}

	// table[i*(n+1)+j] corresponds to table[i][j]
	table := make([]int, (m+1)*(n+1))
	stride := n + 1

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldTokens[i-1] == newTokens[j-1] {
				table[i*stride+j] = table[(i-1)*stride+j-1] + 1
			} else if table[(i-1)*stride+j] > table[i*stride+j-1] {
				table[i*stride+j] = table[(i-1)*stride+j]
			} else {
				table[i*stride+j] = table[i*stride+j-1]
			}
		}
	}

	lcsLen := table[m*stride+n]
	if lcsLen == 0 {
		return nil
	}

	matches := make([]Match, 0, lcsLen)
	i, j := m, n
	for i > 0 && j > 0 {
		if oldTokens[i-1] == newTokens[j-1] {
			matches = append(matches, Match{OldIdx: i - 1, NewIdx: j - 1})
			i--
			j--
		} else if table[(i-1)*stride+j] > table[i*stride+j-1] {
			i--
		} else {
			j--
		}
	}

	// Backtracking yields matches in reverse order.
	for left, right := 0, len(matches)-1; left < right; left, right = left+1, right-1 {
		matches[left], matches[right] = matches[right], matches[left]
	}
	return matches
}

// Similarity returns the token overlap ratio of two sequences:
// 2*common / (len(old) + len(new)), in [0, 1]. Common tokens are
// counted with multiplicity as an upper bound on the LCS length,
// which makes this cheap enough to gate the full LCS computation.
func Similarity(oldTokens, newTokens []string) float64 {
	if len(oldTokens) == 0 || len(newTokens) == 0 {
		return 0
	}

	counts := make(map[string]int, len(oldTokens))
	for _, t := range oldTokens {
		counts[t]++
	}

	common := 0
	for _, t := range newTokens {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}

	return float64(2*common) / float64(len(oldTokens)+len(newTokens))
}
