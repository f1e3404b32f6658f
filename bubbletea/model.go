package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/view"
	"github.com/mattn/go-runewidth"
)

// RecomputeMsg signals that the session committed a fresh alignment
// and the panes must re-render from it. Hosts that drive the session
// themselves send it after Recompute returns.
type RecomputeMsg struct{}

// ReloadMsg replaces the viewer's file pairs, typically after a
// watcher event. The current pair index is clamped and recomputed.
type ReloadMsg struct {
	Pairs []splitdiff.FilePair
}

// summaryMsg carries the result of an asynchronous summarize call,
// tagged with the input it describes so results for a pair the user
// has already left are dropped.
type summaryMsg struct {
	caseID  string
	summary *splitdiff.Summary
	err     error
}

// statusMsg replaces the transient status text.
type statusMsg string

// Model is the Bubble Tea model for the dual-pane split viewer. Both
// panes render the session's alignment rows, so they share one row
// coordinate space and scroll in lockstep; the focused pane drives the
// session's scroll state.
type Model struct {
	view      *view.View
	pairs     []splitdiff.FilePair
	pairIndex int

	left        viewport.Model
	right       viewport.Model
	gutterWidth int

	styles     splitdiff.Styles
	palette    splitdiff.Palette
	renderer   *lipgloss.Renderer
	detector   splitdiff.LanguageDetector
	tokenizer  splitdiff.Tokenizer
	clipboard  splitdiff.Clipboard
	summarizer splitdiff.Summarizer
	tabWidth   int

	keymap KeyMap
	help   help.Model

	width, height int
	ready         bool
	pendingKey    string
	status        string
	summary       *splitdiff.Summary
}

// Option configures a Model.
type Option func(*modelConfig)

type modelConfig struct {
	renderer   *lipgloss.Renderer
	theme      splitdiff.Theme
	detector   splitdiff.LanguageDetector
	tokenizer  splitdiff.Tokenizer
	clipboard  splitdiff.Clipboard
	summarizer splitdiff.Summarizer
	keymap     *KeyMap
	tabWidth   int
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme. Without one the view renders uncolored.
func WithTheme(t splitdiff.Theme) Option {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithLanguageDetector sets the language detector for syntax
// highlighting.
func WithLanguageDetector(d splitdiff.LanguageDetector) Option {
	return func(cfg *modelConfig) {
		cfg.detector = d
	}
}

// WithTokenizer sets the tokenizer for syntax highlighting.
func WithTokenizer(t splitdiff.Tokenizer) Option {
	return func(cfg *modelConfig) {
		cfg.tokenizer = t
	}
}

// WithClipboard enables copying the focused hunk.
func WithClipboard(c splitdiff.Clipboard) Option {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithSummarizer enables on-demand hunk summaries.
func WithSummarizer(s splitdiff.Summarizer) Option {
	return func(cfg *modelConfig) {
		cfg.summarizer = s
	}
}

// WithKeyMap overrides the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(cfg *modelConfig) {
		cfg.keymap = &k
	}
}

// WithTabWidth sets the tab stop width used when rendering content.
func WithTabWidth(n int) Option {
	return func(cfg *modelConfig) {
		cfg.tabWidth = n
	}
}

// NewModel creates a Model over a session and installs the first pair.
// The initial computation runs synchronously so the first frame shows
// content.
func NewModel(v *view.View, pairs []splitdiff.FilePair, opts ...Option) Model {
	cfg := &modelConfig{tabWidth: DefaultTabWidth}
	for _, opt := range opts {
		opt(cfg)
	}

	m := Model{
		view:       v,
		pairs:      pairs,
		renderer:   cfg.renderer,
		detector:   cfg.detector,
		tokenizer:  cfg.tokenizer,
		clipboard:  cfg.clipboard,
		summarizer: cfg.summarizer,
		tabWidth:   cfg.tabWidth,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
	}
	if cfg.theme != nil {
		m.styles = cfg.theme.Styles()
		m.palette = cfg.theme.Palette()
	}
	if cfg.keymap != nil {
		m.keymap = *cfg.keymap
	}
	if m.tabWidth < 1 {
		m.tabWidth = DefaultTabWidth
	}

	if len(pairs) > 0 {
		v.SetPair(pairs[0])
		v.Recompute()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle multi-key sequences (gg for go to top)
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = ""
			m.gotoTop()
			return m, nil
		}
		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}
		m.pendingKey = ""
		m.status = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Down):
			m.focused().ScrollDown(1)
			m.syncScroll()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.focused().ScrollUp(1)
			m.syncScroll()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.focused().HalfPageDown()
			m.syncScroll()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.focused().HalfPageUp()
			m.syncScroll()
			return m, nil
		case key.Matches(msg, m.keymap.GotoBottom):
			m.focused().GotoBottom()
			m.syncScroll()
			return m, nil
		case key.Matches(msg, m.keymap.NextHunk):
			if m.view.NextHunk() {
				m.syncOffsets()
			}
			return m, nil
		case key.Matches(msg, m.keymap.PrevHunk):
			if m.view.PrevHunk() {
				m.syncOffsets()
			}
			return m, nil
		case key.Matches(msg, m.keymap.FocusLeft):
			m.view.FocusLeft()
			return m, nil
		case key.Matches(msg, m.keymap.FocusRight):
			m.view.FocusRight()
			return m, nil
		case key.Matches(msg, m.keymap.ToggleFocus):
			m.view.ToggleFocus()
			return m, nil
		case key.Matches(msg, m.keymap.NextPair):
			return m, m.switchPair(1)
		case key.Matches(msg, m.keymap.PrevPair):
			return m, m.switchPair(-1)
		case key.Matches(msg, m.keymap.CopyHunk):
			m.copyFocusedHunk()
			return m, nil
		case key.Matches(msg, m.keymap.Summarize):
			return m, m.summarizeCmd()
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case RecomputeMsg:
		if m.ready {
			m.syncContent()
		}
		return m, nil

	case ReloadMsg:
		if len(msg.Pairs) > 0 {
			m.pairs = msg.Pairs
			if m.pairIndex >= len(m.pairs) {
				m.pairIndex = len(m.pairs) - 1
			}
			m.summary = nil
			m.view.SetPair(m.pairs[m.pairIndex])
		}
		return m, nil

	case summaryMsg:
		if msg.caseID != m.currentCaseID() {
			return m, nil
		}
		if msg.err != nil {
			m.status = fmt.Sprintf("summary failed: %v", msg.err)
		} else {
			m.summary = msg.summary
			m.status = ""
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil
	}

	if !m.ready {
		return m, nil
	}

	// Unmatched keys and mouse events drive the focused pane.
	var cmd tea.Cmd
	f := m.focused()
	*f, cmd = f.Update(msg)
	m.syncScroll()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	pair := m.view.Pair()
	leftW, rightW := paneWidths(m.width)
	titles := paneTitles(pair.OldName, pair.NewName, m.view.Focus(), m.styles, m.renderer, leftW, rightW)
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.left.View(),
		dividerColumn(m.left.Height, m.styles, m.renderer),
		m.right.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, titles, panes, m.statusBarView(), m.helpView())
}

// focused returns the viewport of the pane holding keyboard focus.
func (m *Model) focused() *viewport.Model {
	if m.view.Focus() == splitdiff.PaneLeft {
		return &m.left
	}
	return &m.right
}

// syncScroll records the focused viewport's offset as a scroll event
// and re-aligns both viewports to the session's position.
func (m *Model) syncScroll() {
	focus := m.view.Focus()
	m.view.Scroll(focus, splitdiff.ScrollPosition{Row: m.focused().YOffset})
	m.syncOffsets()
}

// syncOffsets aligns both viewports to the focused pane's committed
// position. The panes share the row space, so one offset serves both.
func (m *Model) syncOffsets() {
	row := m.view.ScrollAt(m.view.Focus()).Row
	m.left.SetYOffset(row)
	m.right.SetYOffset(row)
}

// gotoTop scrolls both panes to the first row.
func (m *Model) gotoTop() {
	m.left.GotoTop()
	m.right.GotoTop()
	m.view.Scroll(m.view.Focus(), splitdiff.ScrollPosition{})
}

// handleResize lays the panes out for a new terminal size, creating
// them on the first message.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	widthChanged := m.width != msg.Width
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	if !m.ready {
		leftW, rightW := paneWidths(msg.Width)
		h := m.contentHeight()
		m.left = viewport.New(leftW, h)
		m.right = viewport.New(rightW, h)
		m.syncContent()
		m.ready = true
		return
	}

	m.layout()
	if widthChanged {
		m.syncContent()
	}
}

// layout resizes both viewports to the current terminal size.
func (m *Model) layout() {
	leftW, rightW := paneWidths(m.width)
	h := m.contentHeight()
	m.left.Width = leftW
	m.left.Height = h
	m.right.Width = rightW
	m.right.Height = h
}

// contentHeight returns the pane height left after the title row, the
// status bar and the help line.
func (m *Model) contentHeight() int {
	h := m.height - 2 - lipgloss.Height(m.helpView())
	if h < 1 {
		h = 1
	}
	return h
}

// syncContent re-renders both panes from the committed alignment and
// restores the session's scroll position.
func (m *Model) syncContent() {
	mp := m.view.Map()
	pair := m.view.Pair()
	m.gutterWidth = gutterWidthFor(pair)
	spans := m.view.Spans()
	leftTokens, rightTokens := m.tokenize(pair)
	leftW, rightW := paneWidths(m.width)

	m.left.SetContent(strings.Join(renderPane(paneConfig{
		rows:        mp.Rows,
		snap:        pair.Old,
		pane:        splitdiff.PaneLeft,
		spans:       spans,
		tokens:      leftTokens,
		styles:      m.styles,
		renderer:    m.renderer,
		width:       leftW,
		gutterWidth: m.gutterWidth,
		tabWidth:    m.tabWidth,
	}), "\n"))
	m.right.SetContent(strings.Join(renderPane(paneConfig{
		rows:        mp.Rows,
		snap:        pair.New,
		pane:        splitdiff.PaneRight,
		spans:       spans,
		tokens:      rightTokens,
		styles:      m.styles,
		renderer:    m.renderer,
		width:       rightW,
		gutterWidth: m.gutterWidth,
		tabWidth:    m.tabWidth,
	}), "\n"))

	m.syncOffsets()
}

// tokenize produces per-line syntax tokens for both snapshots, or nil
// sides when detection or tokenization is unavailable.
func (m *Model) tokenize(pair splitdiff.FilePair) (left, right [][]splitdiff.Token) {
	if m.tokenizer == nil || m.detector == nil {
		return nil, nil
	}
	if lang := m.detector.DetectFromPath(pair.OldName); lang != "" {
		left = m.tokenizer.TokenizeLines(lang, pair.Old.Text())
	}
	if lang := m.detector.DetectFromPath(pair.NewName); lang != "" {
		right = m.tokenizer.TokenizeLines(lang, pair.New.Text())
	}
	return left, right
}

// switchPair moves to an adjacent file pair and recomputes off the
// interactive path.
func (m *Model) switchPair(delta int) tea.Cmd {
	next := m.pairIndex + delta
	if next < 0 || next >= len(m.pairs) {
		return nil
	}
	m.pairIndex = next
	m.summary = nil
	m.view.SetPair(m.pairs[next])

	v := m.view
	return func() tea.Msg {
		v.Recompute()
		return RecomputeMsg{}
	}
}

// copyFocusedHunk copies the hunk under the focused pane's cursor,
// preferring its new side.
func (m *Model) copyFocusedHunk() {
	if m.clipboard == nil {
		m.status = "no clipboard configured"
		return
	}
	h, ok := m.view.Map().HunkAt(m.view.ScrollAt(m.view.Focus()).Row)
	if !ok {
		m.status = "no hunk at cursor"
		return
	}
	if err := m.clipboard.Copy(hunkText(h, m.view.Pair())); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied hunk %d", h.Ordinal+1)
}

// hunkText returns the text a hunk copies: its new-side lines, or the
// old side for a pure deletion.
func hunkText(h splitdiff.Hunk, pair splitdiff.FilePair) string {
	side, r := pair.New, h.New
	if r.Empty() {
		side, r = pair.Old, h.Old
	}
	var sb strings.Builder
	for i := r.Start; i < r.End; i++ {
		sb.WriteString(side.Line(i))
		sb.WriteString("\n")
	}
	return sb.String()
}

// summarizeCmd kicks off an asynchronous summary of the current pair.
func (m *Model) summarizeCmd() tea.Cmd {
	if m.summarizer == nil {
		m.status = "no summarizer configured"
		return nil
	}
	input := splitdiff.SummaryInput{Pair: m.view.Pair(), Map: m.view.Map()}
	s := m.summarizer
	m.status = "summarizing..."
	return func() tea.Msg {
		summary, err := s.Summarize(context.Background(), input)
		return summaryMsg{caseID: input.CaseID(), summary: summary, err: err}
	}
}

// currentCaseID identifies the pair on screen, for matching
// asynchronous results against it.
func (m Model) currentCaseID() string {
	return splitdiff.SummaryInput{Pair: m.view.Pair()}.CaseID()
}

// statusBarView renders the one-line status bar.
func (m Model) statusBarView() string {
	barStyle := styleFromColorPair(m.styles.StatusBar, m.renderer)
	dimStyle := styleFromColorPair(m.styles.StatusBarDim, m.renderer)
	sep := dimStyle.Render(" │ ")

	parts := []string{barStyle.Render(m.view.Title())}
	if len(m.pairs) > 1 {
		parts = append(parts, barStyle.Render(fmt.Sprintf("pair %d/%d", m.pairIndex+1, len(m.pairs))))
	}
	cur, total := m.currentHunk()
	parts = append(parts, barStyle.Render(fmt.Sprintf("hunk %d/%d", cur, total)))
	parts = append(parts, barStyle.Render(m.view.Focus().String()))
	if cp := m.counterpartInfo(); cp != "" {
		parts = append(parts, dimStyle.Render(cp))
	}
	parts = append(parts, barStyle.Render(m.scrollPosition()))
	if m.view.Coarse() {
		parts = append(parts, dimStyle.Render("coarse"))
	}
	if note := m.noteText(); note != "" {
		parts = append(parts, dimStyle.Render(note))
	}

	content := strings.Join(parts, sep) + barStyle.Render("  ")

	// Right-align by padding the left side with background
	contentWidth := lipgloss.Width(content)
	if m.width > contentWidth {
		padding := barStyle.Render(strings.Repeat(" ", m.width-contentWidth))
		content = padding + content
	}
	return content
}

// currentHunk returns the 1-based ordinal of the last hunk starting at
// or above the focused row, and the total hunk count.
func (m Model) currentHunk() (current, total int) {
	mp := m.view.Map()
	total = mp.NumHunks()
	if total == 0 {
		return 0, 0
	}
	row := m.view.ScrollAt(m.view.Focus()).Row
	current = 1
	for _, h := range mp.Hunks {
		if h.Rows.Start > row {
			break
		}
		current = h.Ordinal + 1
	}
	return current, total
}

// counterpartInfo describes the line the unfocused pane shows at the
// focused position, snapped to content when the row is a filler there.
func (m Model) counterpartInfo() string {
	mp := m.view.Map()
	if mp.Len() == 0 {
		return ""
	}
	focus := m.view.Focus()
	mapped := m.view.MapPosition(focus, m.view.ScrollAt(focus))
	row := mp.Rows[mapped.Row]
	if focus == splitdiff.PaneLeft {
		if !row.HasNew() {
			return ""
		}
		return fmt.Sprintf("new %d", row.NewLine+1)
	}
	if !row.HasOld() {
		return ""
	}
	return fmt.Sprintf("old %d", row.OldLine+1)
}

// scrollPosition returns a string indicating the scroll position.
func (m Model) scrollPosition() string {
	f := m.left
	if m.view.Focus() == splitdiff.PaneRight {
		f = m.right
	}
	if f.AtTop() {
		return "Top"
	}
	if f.AtBottom() {
		return "Bot"
	}
	percent := int(f.ScrollPercent() * 100)
	return fmt.Sprintf("%2d%%", percent)
}

// noteText returns the transient status message, or the summary note
// for the hunk under the cursor, or the summary overview.
func (m Model) noteText() string {
	note := m.status
	if note == "" && m.summary != nil {
		note = m.summary.Overview
		if h, ok := m.view.Map().HunkAt(m.view.ScrollAt(m.view.Focus()).Row); ok {
			for _, hs := range m.summary.Hunks {
				if hs.Hunk == h.Ordinal {
					note = hs.Text
					break
				}
			}
		}
	}
	if note == "" {
		return ""
	}
	limit := max(m.width/2, 20)
	return runewidth.Truncate(note, limit, "…")
}

// helpView renders the key binding help line.
func (m Model) helpView() string {
	return m.help.View(m.keymap)
}
