package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/bubbletea"
	"github.com/fwojciec/splitdiff/clipboard"
	"github.com/fwojciec/splitdiff/diff"
	"github.com/fwojciec/splitdiff/fs"
	"github.com/fwojciec/splitdiff/jsonl"
	"github.com/fwojciec/splitdiff/lipgloss"
	"github.com/fwojciec/splitdiff/toml"
)

// ErrNoCases is returned when the input file contains no cases.
var ErrNoCases = errors.New("no cases to review")

// judgmentsPath returns the path judgments are stored at for a corpus
// path. cases.jsonl -> cases-judgments.jsonl
func judgmentsPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+"-judgments"+ext)
}

// Reviewer presents loaded cases for judgment and persists the
// outcome to the judgments path.
type Reviewer interface {
	Review(ctx context.Context, cases []splitdiff.Case, judgments []splitdiff.Judgment, judgmentsPath string) error
}

// App encapsulates the application logic for testing.
type App struct {
	Loader   splitdiff.CaseLoader
	Store    splitdiff.JudgmentStore
	Reviewer Reviewer
}

// Run loads the corpus and any existing judgments, then opens the
// review UI.
func (a *App) Run(ctx context.Context, inputPath string) error {
	cases, err := a.Loader.Load(inputPath)
	if err != nil {
		return fmt.Errorf("load cases: %w", err)
	}
	if len(cases) == 0 {
		return ErrNoCases
	}

	outputPath := judgmentsPath(inputPath)
	judgments, err := a.Store.Load(outputPath)
	if err != nil {
		return fmt.Errorf("load judgments: %w", err)
	}

	return a.Reviewer.Review(ctx, cases, judgments, outputPath)
}

// tuiReviewer runs the Bubble Tea judgment program over the cases.
type tuiReviewer struct {
	differ splitdiff.Differ
	store  splitdiff.JudgmentStore
	theme  splitdiff.Theme
	clip   splitdiff.Clipboard
}

func (r *tuiReviewer) Review(ctx context.Context, cases []splitdiff.Case, judgments []splitdiff.Judgment, path string) error {
	opts := []bubbletea.ReviewOption{
		bubbletea.WithReviewStore(r.store, path),
		bubbletea.WithReviewTheme(r.theme),
		bubbletea.WithReviewClipboard(r.clip),
	}
	if len(judgments) > 0 {
		opts = append(opts, bubbletea.WithReviewJudgments(judgments))
	}

	m := bubbletea.NewReviewModel(r.differ, cases, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	themeFlag := flag.String("theme", "", "color theme, dark or light (overrides config)")
	configPath := flag.String("config", "", "config file path")
	flag.Parse()
	if flag.NArg() != 1 {
		return errors.New("usage: splitreview [flags] cases.jsonl")
	}

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

	store := jsonl.NewStore()
	app := &App{
		Loader: jsonl.NewLoader(),
		Store:  store,
		Reviewer: &tuiReviewer{
			differ: diff.NewEngine(diff.WithEditBudget(cfg.EditBudget)),
			store:  store,
			theme:  lipgloss.Named(cfg.Theme),
			clip:   clipboard.NewCommandCopy(cfg.ClipboardCmd),
		},
	}
	return app.Run(ctx, flag.Arg(0))
}
