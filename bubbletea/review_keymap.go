package bubbletea

import "github.com/charmbracelet/bubbles/key"

// ReviewKeyMap defines the key bindings for the corpus reviewer.
type ReviewKeyMap struct {
	// Navigation
	NextCase     key.Binding
	PrevCase     key.Binding
	NextUnjudged key.Binding
	PrevUnjudged key.Binding

	// Scrolling
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Judgment
	Pass     key.Binding
	Fail     key.Binding
	Critique key.Binding

	// Critique mode
	ExitCritique key.Binding

	// Export
	CopyCase key.Binding

	// General
	Quit key.Binding
}

// DefaultReviewKeyMap returns the default key bindings for the corpus
// reviewer.
func DefaultReviewKeyMap() ReviewKeyMap {
	return ReviewKeyMap{
		NextCase: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "next case"),
		),
		PrevCase: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "previous case"),
		),
		NextUnjudged: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "next unjudged"),
		),
		PrevUnjudged: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "previous unjudged"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "scroll up"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		Pass: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "mark pass"),
		),
		Fail: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "mark fail"),
		),
		Critique: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "enter critique"),
		),
		ExitCritique: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "save and exit critique"),
		),
		CopyCase: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy case to clipboard"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
