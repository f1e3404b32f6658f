package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the split viewer.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	NextHunk     key.Binding
	PrevHunk     key.Binding
	FocusLeft    key.Binding
	FocusRight   key.Binding
	ToggleFocus  key.Binding
	NextPair     key.Binding
	PrevPair     key.Binding
	CopyHunk     key.Binding
	Summarize    key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		NextHunk: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next hunk"),
		),
		PrevHunk: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous hunk"),
		),
		FocusLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "focus left pane"),
		),
		FocusRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "focus right pane"),
		),
		ToggleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle focus"),
		),
		NextPair: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next file pair"),
		),
		PrevPair: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous file pair"),
		),
		CopyHunk: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy hunk"),
		),
		Summarize: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "summarize"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.NextHunk, k.ToggleFocus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.HalfPageDown, k.HalfPageUp, k.GotoTop, k.GotoBottom},
		{k.NextHunk, k.PrevHunk, k.NextPair, k.PrevPair},
		{k.FocusLeft, k.FocusRight, k.ToggleFocus},
		{k.CopyHunk, k.Summarize, k.Help, k.Quit},
	}
}
