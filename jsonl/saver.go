package jsonl

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.CaseSaver = (*Saver)(nil)

// Saver appends Case records to JSONL files.
type Saver struct{}

// NewSaver creates a new Saver.
func NewSaver() *Saver {
	return &Saver{}
}

// Save appends a Case to a JSONL file, creating parent directories if needed.
func (s *Saver) Save(path string, c splitdiff.Case) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}
	if _, err := f.WriteString("\n"); err != nil {
		return err
	}

	return nil
}
