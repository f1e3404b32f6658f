package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.Summarizer = (*Summarizer)(nil)

// Summarizer wraps a splitdiff.Summarizer with file-based caching.
type Summarizer struct {
	inner    splitdiff.Summarizer
	cacheDir string
}

// NewSummarizer creates a new caching summarizer.
func NewSummarizer(inner splitdiff.Summarizer, cacheDir string) *Summarizer {
	return &Summarizer{
		inner:    inner,
		cacheDir: cacheDir,
	}
}

// Summarize returns a cached summary or delegates to the inner
// summarizer. Cache entries are keyed by a content hash of the input,
// so they survive revision counter resets across runs.
func (s *Summarizer) Summarize(ctx context.Context, input splitdiff.SummaryInput) (*splitdiff.Summary, error) {
	hash := s.hashInput(input)

	// Check cache
	if cached, err := s.loadFromCache(hash); err == nil {
		return cached, nil
	}

	// Cache miss - delegate to inner
	result, err := s.inner.Summarize(ctx, input)
	if err != nil {
		return nil, err
	}

	// Store in cache (best-effort)
	_ = s.saveToCache(hash, result)

	return result, nil
}

// hashInput keys the cache by the pair's stable content. Revisions
// and the computed map are derived or ephemeral and stay out of the
// key.
func (s *Summarizer) hashInput(input splitdiff.SummaryInput) string {
	h := sha256.New()
	h.Write([]byte(input.Pair.Title))
	h.Write([]byte{0})
	h.Write([]byte(input.Pair.Old.Text()))
	h.Write([]byte{0})
	h.Write([]byte(input.Pair.New.Text()))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Summarizer) cachePath(hash string) string {
	return filepath.Join(s.cacheDir, hash+".json")
}

func (s *Summarizer) loadFromCache(hash string) (*splitdiff.Summary, error) {
	data, err := os.ReadFile(s.cachePath(hash))
	if err != nil {
		return nil, err
	}

	var result splitdiff.Summary
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Summarizer) saveToCache(hash string, result *splitdiff.Summary) error {
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return os.WriteFile(s.cachePath(hash), data, 0644)
}
