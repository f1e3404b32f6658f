package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/diff"
	"github.com/fwojciec/splitdiff/jsonl"
)

// ErrNoCases is returned when the corpus file contains no cases.
var ErrNoCases = errors.New("no cases to check")

// App encapsulates the application logic for testing.
type App struct {
	Out    io.Writer
	Loader splitdiff.CaseLoader
	Saver  splitdiff.CaseSaver
	Differ splitdiff.Differ
}

// RunCheck validates every case in the corpus and prints one line per
// case. It returns an error when any case fails, so the process exits
// non-zero on violations.
func (a *App) RunCheck(path string) error {
	cases, err := a.Loader.Load(path)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return ErrNoCases
	}

	failed := 0
	for i, c := range cases {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("case %d", i)
		}
		if errs := a.checkCase(c); len(errs) > 0 {
			failed++
			fmt.Fprintf(a.Out, "FAIL %s\n", name)
			for _, err := range errs {
				fmt.Fprintf(a.Out, "     %v\n", err)
			}
			continue
		}
		pair := c.Pair()
		script := a.Differ.Diff(pair.Old, pair.New)
		m := splitdiff.Align(script)
		deleted, added := script.Stats()
		line := fmt.Sprintf("ok   %s: %d hunks, +%d -%d", name, m.NumHunks(), added, deleted)
		if script.Coarse {
			line += " (coarse)"
		}
		fmt.Fprintln(a.Out, line)
	}

	fmt.Fprintf(a.Out, "%d cases, %d failed\n", len(cases), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(cases))
	}
	return nil
}

// checkCase runs the full pipeline on one case: diff, align, validate
// the alignment invariants, and confirm the engine is stable on the
// same input.
func (a *App) checkCase(c splitdiff.Case) []error {
	pair := c.Pair()
	script := a.Differ.Diff(pair.Old, pair.New)
	m := splitdiff.Align(script)

	var errs []error
	for _, v := range splitdiff.Validate(m, pair.Old.Len(), pair.New.Len()) {
		errs = append(errs, v)
	}

	// Coarse scripts can come from the engine's wall clock timeout, so
	// exact repeatability is only required for full results.
	again := a.Differ.Diff(pair.Old, pair.New)
	if !script.Coarse && !again.Coarse && !reflect.DeepEqual(script, again) {
		errs = append(errs, errors.New("engine produced different scripts for the same input"))
	}

	if !a.Differ.Diff(pair.Old, pair.Old).Identical() {
		errs = append(errs, errors.New("old side does not diff clean against itself"))
	}
	if !a.Differ.Diff(pair.New, pair.New).Identical() {
		errs = append(errs, errors.New("new side does not diff clean against itself"))
	}

	return errs
}

// RunRecord appends a case built from two files to the corpus.
func (a *App) RunRecord(corpusPath, name, oldPath, newPath string) error {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("read old side: %w", err)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("read new side: %w", err)
	}

	c := splitdiff.Case{
		Name:    name,
		OldName: filepath.Base(oldPath),
		NewName: filepath.Base(newPath),
		OldText: string(oldData),
		NewText: string(newData),
	}
	if err := a.Saver.Save(corpusPath, c); err != nil {
		return err
	}

	pair := c.Pair()
	fmt.Fprintf(a.Out, "recorded %s: %d old lines, %d new lines\n", name, pair.Old.Len(), pair.New.Len())
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return errors.New("usage: splitcheck <cases.jsonl>\n\nCommands:\n  record  Append a case from two files")
	}

	app := &App{
		Out:    os.Stdout,
		Loader: jsonl.NewLoader(),
		Saver:  jsonl.NewSaver(),
		Differ: diff.NewEngine(),
	}

	switch os.Args[1] {
	case "record":
		flags := flag.NewFlagSet("record", flag.ExitOnError)
		corpus := flags.String("corpus", "cases.jsonl", "corpus file to append to")
		if err := flags.Parse(os.Args[2:]); err != nil {
			return err
		}
		args := flags.Args()
		if len(args) != 3 {
			return errors.New("usage: splitcheck record [-corpus FILE] NAME OLD NEW")
		}
		return app.RunRecord(*corpus, args[0], args[1], args[2])
	default:
		return app.RunCheck(os.Args[1])
	}
}
