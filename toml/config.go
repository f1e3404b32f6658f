// Package toml loads viewer configuration from TOML files using the
// BurntSushi/toml library.
package toml

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the settings read from config.toml.
type Config struct {
	Theme        string  `toml:"theme"`         // "dark" or "light"
	Intraline    string  `toml:"intraline"`     // "char", "word" or "off"
	DebounceMS   int     `toml:"debounce_ms"`   // Recompute debounce, 0 disables
	EditBudget   int     `toml:"edit_budget"`   // Changed-line budget, 0 disables
	Similarity   float64 `toml:"similarity"`    // Intraline pairing threshold
	TabWidth     int     `toml:"tab_width"`     // Columns per tab stop
	ClipboardCmd string  `toml:"clipboard_cmd"` // Copy command, content on stdin
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme:        "dark",
		Intraline:    "char",
		DebounceMS:   250,
		EditBudget:   8192,
		Similarity:   0.3,
		TabWidth:     8,
		ClipboardCmd: defaultClipboardCmd(),
	}
}

func defaultClipboardCmd() string {
	if runtime.GOOS == "darwin" {
		return "pbcopy"
	}
	return "xclip -selection clipboard"
}

// Load reads the config file at path, filling unset keys from the
// defaults. A missing file yields the defaults. Unknown keys and
// out-of-range values are errors.
func Load(path string) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("theme must be dark or light, got %q", c.Theme)
	}
	switch c.Intraline {
	case "char", "word", "off":
	default:
		return fmt.Errorf("intraline must be char, word or off, got %q", c.Intraline)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms cannot be negative, got %d", c.DebounceMS)
	}
	if c.EditBudget < 0 {
		return fmt.Errorf("edit_budget cannot be negative, got %d", c.EditBudget)
	}
	if c.Similarity < 0 || c.Similarity > 1 {
		return fmt.Errorf("similarity must be between 0 and 1, got %g", c.Similarity)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width must be at least 1, got %d", c.TabWidth)
	}
	return nil
}
