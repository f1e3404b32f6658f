package fs

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default config file location for
// splitdiff. Uses XDG_CONFIG_HOME if set, otherwise falls back to
// ~/.config/splitdiff, or the system temp directory if home is
// unavailable.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "splitdiff", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "splitdiff", "config.toml")
	}
	return filepath.Join(home, ".config", "splitdiff", "config.toml")
}

// DefaultCacheDir returns the default cache directory for splitdiff.
// Uses XDG_CACHE_HOME if set, otherwise falls back to
// ~/.cache/splitdiff, or the system temp directory if home is
// unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "splitdiff")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "splitdiff")
	}
	return filepath.Join(home, ".cache", "splitdiff")
}
