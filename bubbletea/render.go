package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/splitdiff"
	"github.com/mattn/go-runewidth"
)

// minGutterWidth is the minimum width of the line number column in
// each pane's gutter.
const minGutterWidth = 4

// DefaultTabWidth is the tab stop width used when none is configured.
const DefaultTabWidth = 8

// paneConfig holds the rendering parameters for one pane of a split
// view. Both panes render the same alignment rows, so line i of the
// left pane and line i of the right pane always describe the same row.
type paneConfig struct {
	rows     []splitdiff.AlignmentRow
	snap     *splitdiff.Snapshot
	pane     splitdiff.Pane
	spans    map[int]splitdiff.RowSpans
	tokens   [][]splitdiff.Token
	styles   splitdiff.Styles
	renderer *lipgloss.Renderer

	width       int
	gutterWidth int
	tabWidth    int
}

// renderPane renders one pane's rows as styled lines of exactly
// cfg.width display cells each.
func renderPane(cfg paneConfig) []string {
	if cfg.tabWidth < 1 {
		cfg.tabWidth = DefaultTabWidth
	}

	gutterStyle := styleFromColorPair(cfg.styles.LineNumber, cfg.renderer)
	fillerStyle := styleFromColorPair(cfg.styles.Filler, cfg.renderer)

	contentWidth := cfg.width - cfg.gutterWidth - 1
	if contentWidth < 1 {
		contentWidth = 1
	}

	lines := make([]string, 0, len(cfg.rows))
	for i, row := range cfg.rows {
		idx := paneLine(row, cfg.pane)
		if idx == splitdiff.NoLine {
			gutter := gutterStyle.Render(fmt.Sprintf("%*s ", cfg.gutterWidth, ""))
			lines = append(lines, gutter+fillerStyle.Render(hatch(contentWidth)))
			continue
		}

		gutter := gutterStyle.Render(fmt.Sprintf("%*d ", cfg.gutterWidth, idx+1))
		base, highlight := rowColors(row.Kind, cfg.pane, cfg.styles)
		baseStyle := styleFromColorPair(base, cfg.renderer)
		content := cfg.snap.Line(idx)

		var styled string
		if spans := paneSpans(cfg.spans[i], cfg.pane); len(spans) > 0 {
			highlightStyle := styleFromColorPair(highlight, cfg.renderer)
			styled = renderLineSpans(content, spans, baseStyle, highlightStyle, contentWidth, cfg.tabWidth)
		} else if cfg.tokens != nil && idx < len(cfg.tokens) && cfg.tokens[idx] != nil {
			styled = renderLineTokens(cfg.tokens[idx], base, cfg.renderer, contentWidth, cfg.tabWidth)
		} else {
			expanded := ExpandTabs(content, 0, cfg.tabWidth)
			clipped := runewidth.Truncate(expanded, contentWidth, "")
			styled = baseStyle.Render(runewidth.FillRight(clipped, contentWidth))
		}
		lines = append(lines, gutter+styled)
	}
	return lines
}

// paneLine returns the snapshot line index the row shows in the given
// pane, or NoLine for a filler.
func paneLine(row splitdiff.AlignmentRow, pane splitdiff.Pane) int {
	if pane == splitdiff.PaneLeft {
		return row.OldLine
	}
	return row.NewLine
}

// paneSpans selects the side of a row's intraline spans visible in the
// given pane.
func paneSpans(rs splitdiff.RowSpans, pane splitdiff.Pane) []splitdiff.Span {
	if pane == splitdiff.PaneLeft {
		return rs.Old
	}
	return rs.New
}

// rowColors returns the base and intraline highlight color pairs for a
// row kind as seen from one pane. A replaced row reads as a deletion
// on the left and an insertion on the right.
func rowColors(kind splitdiff.RowKind, pane splitdiff.Pane, styles splitdiff.Styles) (base, highlight splitdiff.ColorPair) {
	switch kind {
	case splitdiff.RowDeleted:
		return styles.Deleted, styles.DeletedHighlight
	case splitdiff.RowInserted:
		return styles.Added, styles.AddedHighlight
	case splitdiff.RowReplaced:
		if pane == splitdiff.PaneLeft {
			return styles.Deleted, styles.DeletedHighlight
		}
		return styles.Added, styles.AddedHighlight
	default:
		return styles.Context, styles.Context
	}
}

// lineSegment is a run of consecutive runes sharing the same intraline
// state.
type lineSegment struct {
	text    string
	changed bool
}

// splitAtSpans divides a line into segments at span boundaries. Span
// offsets are rune offsets into the unexpanded line.
func splitAtSpans(line string, spans []splitdiff.Span) []lineSegment {
	var segments []lineSegment
	var sb strings.Builder
	inSpan := false

	flush := func() {
		if sb.Len() > 0 {
			segments = append(segments, lineSegment{text: sb.String(), changed: inSpan})
			sb.Reset()
		}
	}

	runeIdx := 0
	for _, r := range line {
		changed := false
		for _, s := range spans {
			if s.Contains(runeIdx) {
				changed = true
				break
			}
		}
		if changed != inSpan {
			flush()
			inSpan = changed
		}
		sb.WriteRune(r)
		runeIdx++
	}
	flush()
	return segments
}

// renderLineSpans renders a line with intraline highlighting: runes
// inside a span use highlightStyle, the rest baseStyle. Tabs are
// expanded against the running display column so highlight boundaries
// stay put, and the result is clipped and padded to width cells.
func renderLineSpans(line string, spans []splitdiff.Span, baseStyle, highlightStyle lipgloss.Style, width, tabWidth int) string {
	var sb strings.Builder
	col := 0
	for _, seg := range splitAtSpans(line, spans) {
		expanded := ExpandTabs(seg.text, col, tabWidth)
		col += runewidth.StringWidth(expanded)
		if col > width {
			over := col - width
			expanded = runewidth.Truncate(expanded, runewidth.StringWidth(expanded)-over, "")
			col = width
		}
		if seg.changed {
			sb.WriteString(highlightStyle.Render(expanded))
		} else {
			sb.WriteString(baseStyle.Render(expanded))
		}
		if col >= width {
			break
		}
	}
	if col < width {
		sb.WriteString(baseStyle.Render(strings.Repeat(" ", width-col)))
	}
	return sb.String()
}

// renderLineTokens renders a line with syntax highlighting. Each token
// keeps its syntax foreground while the row's diff background shows
// through underneath.
func renderLineTokens(tokens []splitdiff.Token, colors splitdiff.ColorPair, renderer *lipgloss.Renderer, width, tabWidth int) string {
	newStyle := func() lipgloss.Style {
		if renderer != nil {
			return renderer.NewStyle()
		}
		return lipgloss.NewStyle()
	}

	baseStyle := newStyle()
	if colors.Foreground != "" {
		baseStyle = baseStyle.Foreground(lipgloss.Color(colors.Foreground))
	}
	if colors.Background != "" {
		baseStyle = baseStyle.Background(lipgloss.Color(colors.Background))
	}

	var sb strings.Builder
	col := 0
	for _, tok := range tokens {
		expanded := ExpandTabs(tok.Text, col, tabWidth)
		col += runewidth.StringWidth(expanded)
		if col > width {
			over := col - width
			expanded = runewidth.Truncate(expanded, runewidth.StringWidth(expanded)-over, "")
			col = width
		}

		style := newStyle()
		if colors.Background != "" {
			style = style.Background(lipgloss.Color(colors.Background))
		}
		if tok.Style.Foreground != "" {
			style = style.Foreground(lipgloss.Color(tok.Style.Foreground))
		} else if colors.Foreground != "" {
			style = style.Foreground(lipgloss.Color(colors.Foreground))
		}
		if tok.Style.Bold {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(expanded))

		if col >= width {
			break
		}
	}
	if col < width {
		sb.WriteString(baseStyle.Render(strings.Repeat(" ", width-col)))
	}
	return sb.String()
}

// hatch fills width cells with a diagonal pattern marking rows that
// have no line on this side.
func hatch(width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i%2 == 0 {
			sb.WriteRune('╱')
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

// paneTitles renders the single title row above both panes. The
// focused pane's title uses the emphasized style.
func paneTitles(oldName, newName string, focus splitdiff.Pane, styles splitdiff.Styles, renderer *lipgloss.Renderer, leftWidth, rightWidth int) string {
	focused := styleFromColorPair(styles.FocusedPaneTitle, renderer)
	blurred := styleFromColorPair(styles.PaneTitle, renderer)

	leftStyle, rightStyle := blurred, focused
	if focus == splitdiff.PaneLeft {
		leftStyle, rightStyle = focused, blurred
	}

	left := runewidth.FillRight(runewidth.Truncate(" "+paneName(oldName), leftWidth, "…"), leftWidth)
	right := runewidth.FillRight(runewidth.Truncate(" "+paneName(newName), rightWidth, "…"), rightWidth)
	return leftStyle.Render(left) + blurred.Render("│") + rightStyle.Render(right)
}

// paneName returns a display name for one side of a pair.
func paneName(name string) string {
	if name == "" {
		return "untitled"
	}
	return name
}

// dividerColumn renders the vertical separator between the panes, one
// cell per content row.
func dividerColumn(height int, styles splitdiff.Styles, renderer *lipgloss.Renderer) string {
	style := styleFromColorPair(splitdiff.ColorPair{Foreground: styles.Filler.Foreground}, renderer)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = style.Render("│")
	}
	return strings.Join(rows, "\n")
}

// paneWidths splits a terminal width into left pane, right pane and a
// one-cell divider.
func paneWidths(total int) (left, right int) {
	if total <= 1 {
		return total, 0
	}
	left = (total - 1) / 2
	right = total - 1 - left
	return left, right
}

// gutterWidthFor determines the gutter width for a pair from the
// larger snapshot's line count.
func gutterWidthFor(pair splitdiff.FilePair) int {
	width := digitWidth(max(pair.Old.Len(), pair.New.Len()))
	if width < minGutterWidth {
		return minGutterWidth
	}
	return width
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp splitdiff.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
