package mock

import "github.com/fwojciec/splitdiff"

// Compile-time interface verification.
var (
	_ splitdiff.Tokenizer        = (*Tokenizer)(nil)
	_ splitdiff.LanguageDetector = (*LanguageDetector)(nil)
)

// Tokenizer is a mock implementation of splitdiff.Tokenizer.
type Tokenizer struct {
	TokenizeFn      func(language, source string) []splitdiff.Token
	TokenizeLinesFn func(language, source string) [][]splitdiff.Token
}

func (t *Tokenizer) Tokenize(language, source string) []splitdiff.Token {
	return t.TokenizeFn(language, source)
}

func (t *Tokenizer) TokenizeLines(language, source string) [][]splitdiff.Token {
	return t.TokenizeLinesFn(language, source)
}

// LanguageDetector is a mock implementation of splitdiff.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}
