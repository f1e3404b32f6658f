package mock

import (
	"context"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.GitRunner = (*GitRunner)(nil)

// GitRunner is a mock implementation of splitdiff.GitRunner.
type GitRunner struct {
	ShowFileFn     func(ctx context.Context, repoPath, rev, path string) (string, error)
	ChangedFilesFn func(ctx context.Context, repoPath, oldRev, newRev, path string) ([]string, error)
}

func (g *GitRunner) ShowFile(ctx context.Context, repoPath, rev, path string) (string, error) {
	return g.ShowFileFn(ctx, repoPath, rev, path)
}

func (g *GitRunner) ChangedFiles(ctx context.Context, repoPath, oldRev, newRev, path string) ([]string, error) {
	return g.ChangedFilesFn(ctx, repoPath, oldRev, newRev, path)
}
