package splitdiff

// ColorPair represents a foreground and background color combination.
// Colors are hex strings in "#RRGGBB" format (e.g., "#ff0000" for
// red). Empty strings indicate no color override (use terminal
// default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements in a split view.
type Styles struct {
	Context          ColorPair // Unchanged lines
	Added            ColorPair // Inserted lines in the right pane
	Deleted          ColorPair // Removed lines in the left pane
	AddedHighlight   ColorPair // Intraline changed regions within added lines
	DeletedHighlight ColorPair // Intraline changed regions within deleted lines
	Filler           ColorPair // Blank rows keeping the panes aligned
	LineNumber       ColorPair // Line numbers in each pane's gutter
	PaneTitle        ColorPair // Pane title of the unfocused pane
	FocusedPaneTitle ColorPair // Pane title of the focused pane
	StatusBar        ColorPair // Status bar text
	StatusBarDim     ColorPair // De-emphasized status bar text
}

// Palette defines the semantic colors of a theme, used for syntax
// highlighting and UI chrome beyond the diff styles themselves.
type Palette struct {
	// Base colors
	Background string
	Foreground string

	// Diff colors
	Added    string
	Deleted  string
	Modified string
	Context  string

	// Syntax highlighting colors
	Keyword     string
	String      string
	Number      string
	Comment     string
	Operator    string
	Function    string
	Type        string
	Constant    string
	Punctuation string

	// UI colors
	UIBackground string
	UIForeground string
	UIAccent     string
}

// Theme provides styles and a palette for rendering split views.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
