// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.GitRunner = (*Runner)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// ShowFile returns the contents of path at the given revision.
func (r *Runner) ShowFile(ctx context.Context, repoPath, rev, path string) (string, error) {
	args := []string{"-C", repoPath, "show", fmt.Sprintf("%s:%s", rev, path)}
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git show failed: %s", string(exitErr.Stderr))
		}
		return "", fmt.Errorf("git show failed: %w", err)
	}
	return string(output), nil
}

// ChangedFiles returns the paths that differ between two revisions,
// optionally narrowed to a single path.
func (r *Runner) ChangedFiles(ctx context.Context, repoPath, oldRev, newRev, path string) ([]string, error) {
	args := []string{"-C", repoPath, "diff", "--name-only", oldRev, newRev}
	if path != "" {
		args = append(args, "--", path)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git diff failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	// Filter empty lines
	var paths []string
	for _, line := range lines {
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}
