// Package jsonl provides JSONL file handling for corpus cases and judgments.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.CaseLoader = (*Loader)(nil)

// Loader loads Case records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (4MB).
// This accommodates whole-file case contents while preventing memory issues.
const maxLineSize = 4 * 1024 * 1024

// Load reads a JSONL file and returns all Case records.
func (l *Loader) Load(path string) ([]splitdiff.Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []splitdiff.Case
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var c splitdiff.Case
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		cases = append(cases, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cases, nil
}
