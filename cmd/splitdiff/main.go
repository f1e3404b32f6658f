package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/bubbletea"
	"github.com/fwojciec/splitdiff/chroma"
	"github.com/fwojciec/splitdiff/clipboard"
	"github.com/fwojciec/splitdiff/diff"
	"github.com/fwojciec/splitdiff/fs"
	"github.com/fwojciec/splitdiff/gemini"
	"github.com/fwojciec/splitdiff/git"
	"github.com/fwojciec/splitdiff/gitdiff"
	"github.com/fwojciec/splitdiff/lipgloss"
	"github.com/fwojciec/splitdiff/toml"
	"github.com/fwojciec/splitdiff/worddiff"
)

// ErrNoChanges is returned when the comparison contains nothing to display.
var ErrNoChanges = errors.New("no changes to display")

// ErrNoInput is returned when neither files, a git range nor piped
// input are provided.
var ErrNoInput = errors.New("no input: pass OLD and NEW files, use --git, or pipe a diff")

// PairReader loads a comparison from two files on disk.
type PairReader interface {
	ReadPair(oldPath, newPath string) (splitdiff.FilePair, error)
}

// App encapsulates the application logic for testing.
type App struct {
	Stdin  io.Reader
	Reader PairReader
	Parser splitdiff.PatchParser
	Git    splitdiff.GitRunner
	Viewer splitdiff.Viewer
}

// RunFiles compares two files on disk.
func (a *App) RunFiles(ctx context.Context, oldPath, newPath string) error {
	pair, err := a.Reader.ReadPair(oldPath, newPath)
	if err != nil {
		return err
	}
	return a.Viewer.View(ctx, []splitdiff.FilePair{pair})
}

// RunStdin reads a unified diff from Stdin and displays it.
func (a *App) RunStdin(ctx context.Context) error {
	pairs, err := a.Parser.Parse(a.Stdin)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return ErrNoChanges
	}
	return a.Viewer.View(ctx, pairs)
}

// RunGit compares the files changed between two revisions. An empty
// path compares every changed file.
func (a *App) RunGit(ctx context.Context, repoPath, oldRev, newRev, path string) error {
	files, err := a.Git.ChangedFiles(ctx, repoPath, oldRev, newRev, path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoChanges
	}

	pairs := make([]splitdiff.FilePair, 0, len(files))
	for _, f := range files {
		pair, err := a.gitPair(ctx, repoPath, oldRev, newRev, f)
		if err != nil {
			return err
		}
		pairs = append(pairs, pair)
	}
	return a.Viewer.View(ctx, pairs)
}

// gitPair loads one changed path at both revisions. A side missing at
// its revision reads as empty, so added and deleted files render as
// pure insertions and deletions.
func (a *App) gitPair(ctx context.Context, repoPath, oldRev, newRev, path string) (splitdiff.FilePair, error) {
	oldText, oldErr := a.Git.ShowFile(ctx, repoPath, oldRev, path)
	newText, newErr := a.Git.ShowFile(ctx, repoPath, newRev, path)
	if oldErr != nil && newErr != nil {
		return splitdiff.FilePair{}, oldErr
	}
	return splitdiff.FilePair{
		Title:   path,
		OldName: path,
		NewName: path,
		Old:     splitdiff.SnapshotFromText(oldText, 0),
		New:     splitdiff.SnapshotFromText(newText, 1),
	}, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	gitMode := flag.Bool("git", false, "compare two git revisions")
	repoPath := flag.String("repo", ".", "repository path for --git")
	watch := flag.Bool("watch", false, "reload when the compared files change")
	themeFlag := flag.String("theme", "", "color theme, dark or light (overrides config)")
	configPath := flag.String("config", "", "config file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = fs.DefaultConfigPath()
	}
	cfg, err := toml.Load(cfgPath)
	if err != nil {
		return err
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	theme := lipgloss.Named(cfg.Theme)

	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return fmt.Errorf("syntax highlighting: %w", err)
	}

	modelOpts := []bubbletea.Option{
		bubbletea.WithTheme(theme),
		bubbletea.WithLanguageDetector(chroma.NewDetector()),
		bubbletea.WithTokenizer(tokenizer),
		bubbletea.WithClipboard(clipboard.NewCommandCopy(cfg.ClipboardCmd)),
		bubbletea.WithTabWidth(cfg.TabWidth),
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := gemini.NewClient(ctx, apiKey)
		if err != nil {
			return fmt.Errorf("gemini client: %w", err)
		}
		defer client.Close()
		summarizer := fs.NewSummarizer(
			gemini.NewSummarizer(client, gemini.DefaultModel),
			fs.DefaultCacheDir(),
		)
		modelOpts = append(modelOpts, bubbletea.WithSummarizer(summarizer))
	}

	viewerOpts := []bubbletea.ViewerOption{
		bubbletea.WithDebounce(time.Duration(cfg.DebounceMS) * time.Millisecond),
		bubbletea.WithModelOptions(modelOpts...),
	}
	if spanner := spannerFor(cfg); spanner != nil {
		viewerOpts = append(viewerOpts, bubbletea.WithSpanDiffer(spanner))
	}

	engine := diff.NewEngine(diff.WithEditBudget(cfg.EditBudget))
	args := flag.Args()

	switch {
	case *gitMode:
		if len(args) < 2 || len(args) > 3 {
			return errors.New("usage: splitdiff --git OLDREV NEWREV [PATH]")
		}
		path := ""
		if len(args) == 3 {
			path = args[2]
		}
		app := &App{
			Git:    git.NewRunner(),
			Viewer: bubbletea.NewViewer(engine, viewerOpts...),
		}
		return app.RunGit(ctx, *repoPath, args[0], args[1], path)

	case len(args) == 2:
		oldPath, newPath := args[0], args[1]
		loader := fs.NewLoader()
		if *watch {
			reload := func(ctx context.Context) ([]splitdiff.FilePair, error) {
				pair, err := loader.ReadPair(oldPath, newPath)
				if err != nil {
					return nil, err
				}
				return []splitdiff.FilePair{pair}, nil
			}
			viewerOpts = append(viewerOpts,
				bubbletea.WithWatch(fs.NewWatcher(), reload, oldPath, newPath))
		}
		app := &App{
			Reader: loader,
			Viewer: bubbletea.NewViewer(engine, viewerOpts...),
		}
		return app.RunFiles(ctx, oldPath, newPath)

	case len(args) == 0:
		stat, err := os.Stdin.Stat()
		if err != nil {
			return fmt.Errorf("stat stdin: %w", err)
		}
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return ErrNoInput
		}
		app := &App{
			Stdin:  os.Stdin,
			Parser: gitdiff.NewParser(),
			Viewer: bubbletea.NewViewer(engine, viewerOpts...),
		}
		return app.RunStdin(ctx)

	default:
		return ErrNoInput
	}
}

// spannerFor picks the intraline differ the config asks for, or nil
// when intraline highlighting is off.
func spannerFor(cfg toml.Config) splitdiff.SpanDiffer {
	switch cfg.Intraline {
	case "word":
		return worddiff.NewDiffer(worddiff.WithSimilarity(cfg.Similarity))
	case "off":
		return nil
	default:
		return diff.NewSpanner(diff.WithSimilarity(cfg.Similarity))
	}
}
