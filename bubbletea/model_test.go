package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/bubbletea"
	"github.com/fwojciec/splitdiff/diff"
	"github.com/fwojciec/splitdiff/mock"
	"github.com/fwojciec/splitdiff/view"
	"github.com/stretchr/testify/assert"
)

// textPair builds a comparison between two text contents sharing one
// display name.
func textPair(name, old, new string) splitdiff.FilePair {
	return splitdiff.FilePair{
		Title:   name,
		OldName: name,
		NewName: name,
		Old:     splitdiff.SnapshotFromText(old, 1),
		New:     splitdiff.SnapshotFromText(new, 2),
	}
}

// newTestModel builds a Model over a fresh session with the real diff
// engine and word-level spanner.
func newTestModel(t *testing.T, pairs []splitdiff.FilePair, opts ...bubbletea.Option) bubbletea.Model {
	t.Helper()
	v := view.New(diff.NewEngine(), view.WithSpanDiffer(diff.NewSpanner()))
	t.Cleanup(v.Close)
	return bubbletea.NewModel(v, pairs, opts...)
}

// testTheme carries primary colors so escape sequences in rendered
// output are easy to recognize.
type testTheme struct{}

func (testTheme) Styles() splitdiff.Styles {
	return splitdiff.Styles{
		Context:          splitdiff.ColorPair{Foreground: "#c0c0c0"},
		Added:            splitdiff.ColorPair{Foreground: "#00ff00", Background: "#004000"},
		Deleted:          splitdiff.ColorPair{Foreground: "#ff0000", Background: "#400000"},
		AddedHighlight:   splitdiff.ColorPair{Foreground: "#00ff00", Background: "#008000"},
		DeletedHighlight: splitdiff.ColorPair{Foreground: "#ff0000", Background: "#800000"},
		Filler:           splitdiff.ColorPair{Foreground: "#444444"},
		LineNumber:       splitdiff.ColorPair{Foreground: "#888888"},
		PaneTitle:        splitdiff.ColorPair{Foreground: "#aaaaaa"},
		FocusedPaneTitle: splitdiff.ColorPair{Foreground: "#ffffff", Background: "#0000ff"},
		StatusBar:        splitdiff.ColorPair{Foreground: "#dddddd"},
		StatusBarDim:     splitdiff.ColorPair{Foreground: "#777777"},
	}
}

func (testTheme) Palette() splitdiff.Palette {
	return splitdiff.Palette{}
}

func TestModel_Init(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("file.go", "old line\n", "new line\n"),
	})
	cmd := m.Init()

	assert.Nil(t, cmd, "Init should return nil command")
}

func TestModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)

	view := m.View()

	assert.Contains(t, view, "Loading", "View should show loading state before WindowSizeMsg")
}

func TestModel_ViewAfterReady(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("test.go", "test content\n", "test content\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Wait for content to appear - this verifies the view is rendered correctly
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("test content"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_QuitOnQ(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_QuitOnCtrlC(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_PendingGClearedOnOtherKey(t *testing.T) {
	t.Parallel()

	// This test verifies that pressing 'g' followed by a non-'g' key
	// clears the pending state and doesn't trigger GotoTop.
	// We test this by pressing 'g' then 'q' - if pending wasn't cleared
	// properly, the program might not quit.

	m := newTestModel(t, nil)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Press 'g' then 'q' - should quit (not wait for another 'g')
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_WindowResize(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("resize.go", "resize test\n", "resize test\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Wait for initial render
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("resize test"))
	})

	// Resize window
	tm.Send(tea.WindowSizeMsg{Width: 120, Height: 40})

	// Content should still be visible
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("resize test"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_BothPanesShowContent(t *testing.T) {
	t.Parallel()

	// A replaced line puts different content in each pane on the same
	// row, so both sides must be present in one frame.
	m := newTestModel(t, []splitdiff.FilePair{
		textPair("panes.go", "shared first\nOLD_SIDE_ONLY\n", "shared first\nNEW_SIDE_ONLY\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(120, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("OLD_SIDE_ONLY")) &&
			bytes.Contains(out, []byte("NEW_SIDE_ONLY"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_FillerRowsOnInsertion(t *testing.T) {
	t.Parallel()

	// An inserted line exists only in the right pane; the left pane
	// shows a hatched filler row at the same position.
	m := newTestModel(t, []splitdiff.FilePair{
		textPair("filler.go", "shared line\n", "shared line\nINSERTED_LINE\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(120, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("INSERTED_LINE")) &&
			bytes.Contains(out, []byte("╱ ╱ ╱"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_GutterLineNumbers(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("gutter.go", "alpha\nbravo\ncharlie\n", "alpha\nbravo\ncharlie\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Line numbers are right-aligned in a 4-cell gutter
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("   1 ")) &&
			bytes.Contains(out, []byte("   3 "))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func scrollFixture() splitdiff.FilePair {
	var sb strings.Builder
	sb.WriteString("FIRST_LINE_MARKER\n")
	for i := 0; i < 98; i++ {
		sb.WriteString(fmt.Sprintf("line content %d\n", i))
	}
	sb.WriteString("LAST_LINE_MARKER\n")
	text := sb.String()
	return textPair("scroll.go", text, text)
}

func TestModel_GotoBottomOnG(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{scrollFixture()})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 10), // Small height to enable scrolling
	)

	// Wait for initial render with first line visible
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("FIRST_LINE_MARKER"))
	})

	// Scroll down with G (go to bottom)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})

	// Wait for last line to be visible
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("LAST_LINE_MARKER"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_GotoTopOnGG(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{scrollFixture()})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 10), // Small height to enable scrolling
	)

	// Wait for initial render with first line visible
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("FIRST_LINE_MARKER"))
	})

	// First scroll to bottom with G (setup for testing gg)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})

	// Wait for last line to be visible
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("LAST_LINE_MARKER"))
	})

	// Now press gg to go back to top
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})

	// Wait for first line to be visible again
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("FIRST_LINE_MARKER"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

// hunkFixture builds a pair with two changed regions separated by
// enough context to put the second one off screen.
func hunkFixture() splitdiff.FilePair {
	var old, new strings.Builder
	old.WriteString("HUNK1_OLD\n")
	new.WriteString("HUNK1_NEW\n")
	for i := 0; i < 40; i++ {
		line := fmt.Sprintf("context %d\n", i)
		old.WriteString(line)
		new.WriteString(line)
	}
	old.WriteString("HUNK2_OLD\n")
	new.WriteString("HUNK2_NEW\n")
	return textPair("hunks.go", old.String(), new.String())
}

func TestModel_NextHunkNavigation(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{hunkFixture()})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(120, 8), // Small height so hunk 2 starts off screen
	)

	// Wait for initial render - first hunk is at the top
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("HUNK1_NEW")) &&
			bytes.Contains(out, []byte("hunk 1/2"))
	})

	// Press 'n' to go to next hunk - both panes land on it together
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("HUNK2_OLD")) &&
			bytes.Contains(out, []byte("HUNK2_NEW")) &&
			bytes.Contains(out, []byte("hunk 2/2"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_PrevHunkNavigation(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{hunkFixture()})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(120, 8),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("HUNK1_NEW"))
	})

	// Navigate to the second hunk
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("HUNK2_NEW"))
	})

	// Press 'N' to go back to the first hunk
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("HUNK1_NEW"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_NavigationWithEmptyView(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Navigation keys should not panic with no pairs loaded
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	// Should still be able to quit normally
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_FocusToggle(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("focus.go", "alpha\nbravo\n", "alpha\nbravo\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// The status bar names the focused pane; focus starts left
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("left"))
	})

	// 'l' moves focus to the right pane
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("right"))
	})

	// Tab toggles focus as well
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_PairSwitching(t *testing.T) {
	t.Parallel()

	pairs := []splitdiff.FilePair{
		textPair("first.go", "FIRST_PAIR_CONTENT\n", "FIRST_PAIR_CONTENT\n"),
		textPair("second.go", "SECOND_PAIR_CONTENT\n", "SECOND_PAIR_CONTENT\n"),
	}
	m := newTestModel(t, pairs)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Wait for initial render - should show first pair
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("FIRST_PAIR_CONTENT")) &&
			bytes.Contains(out, []byte("pair 1/2"))
	})

	// Press ']' to go to next pair
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("SECOND_PAIR_CONTENT")) &&
			bytes.Contains(out, []byte("pair 2/2"))
	})

	// ']' at the last pair stays put; '[' goes back to the first
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("pair 1/2"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_CopyHunk(t *testing.T) {
	t.Parallel()

	var captured string
	clip := &mock.Clipboard{
		CopyFn: func(content string) error {
			captured = content
			return nil
		},
	}

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("copy.go", "OLD_TEXT\nshared\n", "NEW_TEXT\nshared\n"),
	}, bubbletea.WithClipboard(clip))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("NEW_TEXT"))
	})

	// 'y' copies the hunk under the cursor, preferring the new side
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("copied hunk 1"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))

	assert.Equal(t, "NEW_TEXT\n", captured)
}

func TestModel_CopyHunkWithoutClipboard(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("copy.go", "a\n", "b\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("no clipboard configured"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_CopyHunkOutsideAnyHunk(t *testing.T) {
	t.Parallel()

	clip := &mock.Clipboard{
		CopyFn: func(content string) error { return nil },
	}

	// Identical files produce no hunks at all
	m := newTestModel(t, []splitdiff.FilePair{
		textPair("same.go", "identical\n", "identical\n"),
	}, bubbletea.WithClipboard(clip))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("no hunk at cursor"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_CopyHunkError(t *testing.T) {
	t.Parallel()

	clip := &mock.Clipboard{
		CopyFn: func(content string) error { return errors.New("denied") },
	}

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("copy.go", "a\n", "b\n"),
	}, bubbletea.WithClipboard(clip))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("copy failed: denied"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_Summarize(t *testing.T) {
	t.Parallel()

	summarizer := &mock.Summarizer{
		SummarizeFn: func(ctx context.Context, input splitdiff.SummaryInput) (*splitdiff.Summary, error) {
			return &splitdiff.Summary{Overview: "OVERVIEW_NOTE"}, nil
		},
	}

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("sum.go", "a\n", "b\n"),
	}, bubbletea.WithSummarizer(summarizer))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	// The overview lands in the status bar once the call completes
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("OVERVIEW_NOTE"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_SummarizePerHunkNote(t *testing.T) {
	t.Parallel()

	summarizer := &mock.Summarizer{
		SummarizeFn: func(ctx context.Context, input splitdiff.SummaryInput) (*splitdiff.Summary, error) {
			return &splitdiff.Summary{
				Overview: "OVERVIEW_NOTE",
				Hunks: []splitdiff.HunkSummary{
					{Hunk: 0, Text: "HUNK_ZERO_NOTE"},
				},
			}, nil
		},
	}

	// The cursor starts inside hunk 0, so its note wins over the overview
	m := newTestModel(t, []splitdiff.FilePair{
		textPair("sum.go", "a\n", "b\n"),
	}, bubbletea.WithSummarizer(summarizer))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("HUNK_ZERO_NOTE"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_SummarizeError(t *testing.T) {
	t.Parallel()

	summarizer := &mock.Summarizer{
		SummarizeFn: func(ctx context.Context, input splitdiff.SummaryInput) (*splitdiff.Summary, error) {
			return nil, errors.New("model unavailable")
		},
	}

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("sum.go", "a\n", "b\n"),
	}, bubbletea.WithSummarizer(summarizer))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("summary failed"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_SummarizeWithoutSummarizer(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("sum.go", "a\n", "b\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("no summarizer configured"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_HelpToggle(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("help.go", "a\n", "a\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(120, 30),
	)

	// Short help is visible from the start
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("next hunk"))
	})

	// '?' expands to the full listing, which includes action bindings
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("copy hunk"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_StatusBarSegments(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("status.go", "alpha\nOLD_LINE\n", "alpha\nNEW_LINE\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("status.go")) &&
			bytes.Contains(out, []byte("hunk 1/1")) &&
			bytes.Contains(out, []byte("left")) &&
			bytes.Contains(out, []byte("Top"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_StatusBarCounterpart(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("cp.go", "alpha\nbravo\n", "alpha\nbravo\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Focus is on the left pane, so the counterpart names the right
	// pane's line at the same position
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("new 1"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_StatusBarCoarseIndicator(t *testing.T) {
	t.Parallel()

	// A one-line budget degrades any real change to a coarse replace
	v := view.New(diff.NewEngine(diff.WithEditBudget(1)))
	t.Cleanup(v.Close)
	m := bubbletea.NewModel(v, []splitdiff.FilePair{
		textPair("big.go", "one\ntwo\nthree\n", "uno\ndos\ntres\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("coarse"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_ReloadReplacesPairs(t *testing.T) {
	t.Parallel()

	var tmRef atomic.Pointer[teatest.TestModel]
	v := view.New(diff.NewEngine(),
		view.WithSpanDiffer(diff.NewSpanner()),
		view.WithDebounce(time.Millisecond),
		view.WithOnUpdate(func() {
			if tm := tmRef.Load(); tm != nil {
				tm.Send(bubbletea.RecomputeMsg{})
			}
		}),
	)
	t.Cleanup(v.Close)

	m := bubbletea.NewModel(v, []splitdiff.FilePair{
		textPair("reload.go", "ORIGINAL_CONTENT\n", "ORIGINAL_CONTENT\n"),
	})
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)
	tmRef.Store(tm)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("ORIGINAL_CONTENT"))
	})

	tm.Send(bubbletea.ReloadMsg{Pairs: []splitdiff.FilePair{
		textPair("reload.go", "RELOADED_CONTENT\n", "RELOADED_CONTENT\n"),
	}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("RELOADED_CONTENT"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_DiffColors(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("colors.go", "unchanged\ndeleted line\n", "unchanged\n"),
	},
		bubbletea.WithTheme(testTheme{}),
		bubbletea.WithRenderer(trueColorRenderer()),
	)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Deleted background #400000 renders as RGB 64;0;0
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("48;2;64;0;0"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_IntralineHighlightColors(t *testing.T) {
	t.Parallel()

	// A replaced line with a small change gets word-level spans on
	// both sides, rendered in the highlight backgrounds
	m := newTestModel(t, []splitdiff.FilePair{
		textPair("spans.go", "count = alpha\n", "count = omega\n"),
	},
		bubbletea.WithTheme(testTheme{}),
		bubbletea.WithRenderer(trueColorRenderer()),
	)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(120, 24),
	)

	// DeletedHighlight #800000 is 128;0;0, AddedHighlight #008000 is 0;128;0
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("48;2;128;0;0")) &&
			bytes.Contains(out, []byte("48;2;0;128;0"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_SyntaxHighlighting(t *testing.T) {
	t.Parallel()

	detector := &mock.LanguageDetector{
		DetectFromPathFn: func(path string) string { return "go" },
	}
	tokenizer := &mock.Tokenizer{
		TokenizeLinesFn: func(language, source string) [][]splitdiff.Token {
			assert.Equal(t, "go", language)
			lines := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
			out := make([][]splitdiff.Token, len(lines))
			for i, line := range lines {
				out[i] = []splitdiff.Token{
					{Text: line, Style: splitdiff.Style{Foreground: "#ff00ff"}},
				}
			}
			return out
		},
	}

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("syntax.go", "package main\n", "package main\n"),
	},
		bubbletea.WithTheme(testTheme{}),
		bubbletea.WithRenderer(trueColorRenderer()),
		bubbletea.WithLanguageDetector(detector),
		bubbletea.WithTokenizer(tokenizer),
	)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Token foreground #ff00ff renders as RGB 255;0;255
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("38;2;255;0;255"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_TabExpansionInContent(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, []splitdiff.FilePair{
		textPair("tabs.go", "\tindented\n", "\tindented\n"),
	}, bubbletea.WithTabWidth(4))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// The tab expands to four spaces between the gutter and the text
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("   1     indented"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}
