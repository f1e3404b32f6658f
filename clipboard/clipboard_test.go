package clipboard_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fwojciec/splitdiff/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandCopy_Copy(t *testing.T) {
	t.Parallel()

	t.Run("pipes content to the command's stdin", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		outPath := filepath.Join(dir, "out.txt")
		scriptPath := filepath.Join(dir, "sink.sh")
		script := "#!/bin/sh\ncat > \"" + outPath + "\"\n"
		require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0755))

		cb := clipboard.NewCommandCopy(scriptPath)

		err := cb.Copy("copied content")

		require.NoError(t, err)
		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, "copied content", string(out))
	})

	t.Run("returns error when the command fails", func(t *testing.T) {
		t.Parallel()
		cb := clipboard.NewCommandCopy("false")

		err := cb.Copy("content")

		require.Error(t, err)
	})

	t.Run("returns error when the command is missing", func(t *testing.T) {
		t.Parallel()
		cb := clipboard.NewCommandCopy("definitely-not-a-real-command-xyz")

		err := cb.Copy("content")

		require.Error(t, err)
	})
}

func TestPBCopy_Copy(t *testing.T) {
	t.Parallel()

	// Skip if pbcopy is not available (non-macOS systems)
	if _, err := exec.LookPath("pbcopy"); err != nil {
		t.Skip("pbcopy not available, skipping clipboard test")
	}

	cb := clipboard.NewPBCopy()
	testContent := "test clipboard content from splitdiff"

	err := cb.Copy(testContent)
	require.NoError(t, err)

	// Verify by reading back with pbpaste
	if _, err := exec.LookPath("pbpaste"); err != nil {
		t.Skip("pbpaste not available, cannot verify clipboard content")
	}

	out, err := exec.Command("pbpaste").Output()
	require.NoError(t, err)
	assert.Equal(t, testContent, string(out))
}
