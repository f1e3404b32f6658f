package bubbletea

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/splitdiff"
	"github.com/mattn/go-runewidth"
)

// reviewMode identifies the reviewer's interaction mode.
type reviewMode int

const (
	modeJudge reviewMode = iota
	modeCritique
)

// ReviewModel is the Bubble Tea model for judging corpus cases. Each
// case renders as a dual-pane diff; the reviewer marks it pass or
// fail, optionally with a critique, and judgments persist after every
// change.
type ReviewModel struct {
	cases     []splitdiff.Case
	judgments map[string]*splitdiff.Judgment
	current   int

	differ splitdiff.Differ
	clip   splitdiff.Clipboard
	store  splitdiff.JudgmentStore
	path   string

	left     viewport.Model
	right    viewport.Model
	critique textarea.Model
	mode     reviewMode

	keymap   ReviewKeyMap
	styles   splitdiff.Styles
	renderer *lipgloss.Renderer
	tabWidth int

	width, height int
	ready         bool
	status        string
}

// ReviewOption configures a ReviewModel.
type ReviewOption func(*ReviewModel)

// WithReviewStore sets the store judgments persist to.
func WithReviewStore(store splitdiff.JudgmentStore, path string) ReviewOption {
	return func(m *ReviewModel) {
		m.store = store
		m.path = path
	}
}

// WithReviewJudgments seeds previously recorded judgments.
func WithReviewJudgments(judgments []splitdiff.Judgment) ReviewOption {
	return func(m *ReviewModel) {
		for i := range judgments {
			j := judgments[i]
			m.judgments[j.Case] = &j
		}
	}
}

// WithReviewClipboard enables copying the current case.
func WithReviewClipboard(c splitdiff.Clipboard) ReviewOption {
	return func(m *ReviewModel) {
		m.clip = c
	}
}

// WithReviewTheme sets the theme. Without one cases render uncolored.
func WithReviewTheme(t splitdiff.Theme) ReviewOption {
	return func(m *ReviewModel) {
		m.styles = t.Styles()
	}
}

// WithReviewRenderer sets a custom lipgloss renderer for the model.
func WithReviewRenderer(r *lipgloss.Renderer) ReviewOption {
	return func(m *ReviewModel) {
		m.renderer = r
	}
}

// NewReviewModel creates a ReviewModel over the given cases.
func NewReviewModel(differ splitdiff.Differ, cases []splitdiff.Case, opts ...ReviewOption) ReviewModel {
	m := ReviewModel{
		cases:     cases,
		judgments: make(map[string]*splitdiff.Judgment),
		differ:    differ,
		keymap:    DefaultReviewKeyMap(),
		tabWidth:  DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeCritique {
			return m.handleCritiqueKeys(msg)
		}
		return m.handleJudgeKeys(msg)

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.left, cmd = m.left.Update(msg)
	m.right.SetYOffset(m.left.YOffset)
	return m, cmd
}

func (m ReviewModel) handleJudgeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NextCase):
		m.gotoCase(m.current + 1)
		return m, nil

	case key.Matches(msg, m.keymap.PrevCase):
		m.gotoCase(m.current - 1)
		return m, nil

	case key.Matches(msg, m.keymap.NextUnjudged):
		if idx := m.findUnjudged(1); idx != -1 {
			m.gotoCase(idx)
		}
		return m, nil

	case key.Matches(msg, m.keymap.PrevUnjudged):
		if idx := m.findUnjudged(-1); idx != -1 {
			m.gotoCase(idx)
		}
		return m, nil

	case key.Matches(msg, m.keymap.ScrollDown):
		m.scrollBoth(1)
		return m, nil

	case key.Matches(msg, m.keymap.ScrollUp):
		m.scrollBoth(-1)
		return m, nil

	case key.Matches(msg, m.keymap.HalfPageDown):
		m.left.HalfPageDown()
		m.right.SetYOffset(m.left.YOffset)
		return m, nil

	case key.Matches(msg, m.keymap.HalfPageUp):
		m.left.HalfPageUp()
		m.right.SetYOffset(m.left.YOffset)
		return m, nil

	case key.Matches(msg, m.keymap.Pass):
		m.recordJudgment(true)
		return m, nil

	case key.Matches(msg, m.keymap.Fail):
		m.recordJudgment(false)
		return m, nil

	case key.Matches(msg, m.keymap.Critique):
		return m.enterCritiqueMode()

	case key.Matches(msg, m.keymap.CopyCase):
		m.copyCase()
		return m, nil
	}

	return m, nil
}

func (m ReviewModel) handleCritiqueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ExitCritique) {
		return m.exitCritiqueMode()
	}

	var cmd tea.Cmd
	m.critique, cmd = m.critique.Update(msg)
	return m, cmd
}

func (m ReviewModel) enterCritiqueMode() (tea.Model, tea.Cmd) {
	if len(m.cases) == 0 {
		return m, nil
	}

	ta := textarea.New()
	ta.Placeholder = "Why does this alignment fail?"
	ta.ShowLineNumbers = false
	ta.SetWidth(m.width - 4)
	ta.SetHeight(m.height - 6)

	if j := m.judgments[m.cases[m.current].Name]; j != nil && j.Critique != "" {
		ta.SetValue(j.Critique)
	}

	ta.Focus()
	m.critique = ta
	m.mode = modeCritique
	return m, textarea.Blink
}

func (m ReviewModel) exitCritiqueMode() (tea.Model, tea.Cmd) {
	if len(m.cases) > 0 {
		name := m.cases[m.current].Name
		j := m.judgments[name]
		if j == nil {
			j = &splitdiff.Judgment{Case: name, Index: m.current}
			m.judgments[name] = j
		}
		j.Critique = m.critique.Value()
		j.JudgedAt = time.Now()
		m.persistJudgments()
	}

	m.mode = modeJudge
	return m, nil
}

func (m *ReviewModel) handleResize(msg tea.WindowSizeMsg) {
	widthChanged := m.width != msg.Width
	m.width = msg.Width
	m.height = msg.Height

	if !m.ready {
		leftW, rightW := paneWidths(msg.Width)
		h := m.paneHeight()
		m.left = viewport.New(leftW, h)
		m.right = viewport.New(rightW, h)
		m.updateCaseContent()
		m.ready = true
		return
	}

	leftW, rightW := paneWidths(msg.Width)
	h := m.paneHeight()
	m.left.Width = leftW
	m.left.Height = h
	m.right.Width = rightW
	m.right.Height = h
	if widthChanged {
		m.updateCaseContent()
	}
}

// paneHeight returns the pane height left after the title row, the
// judgment bar and the status bar.
func (m *ReviewModel) paneHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *ReviewModel) scrollBoth(lines int) {
	if lines > 0 {
		m.left.ScrollDown(lines)
	} else {
		m.left.ScrollUp(-lines)
	}
	m.right.SetYOffset(m.left.YOffset)
}

func (m *ReviewModel) gotoCase(idx int) {
	if idx < 0 || idx >= len(m.cases) || idx == m.current {
		return
	}
	m.current = idx
	m.updateCaseContent()
}

// updateCaseContent diffs the current case and renders both panes.
func (m *ReviewModel) updateCaseContent() {
	if len(m.cases) == 0 {
		m.left.SetContent("No cases loaded")
		m.right.SetContent("")
		return
	}

	pair := m.cases[m.current].Pair()
	script := m.differ.Diff(pair.Old, pair.New)
	mp := splitdiff.Align(script)
	gutter := gutterWidthFor(pair)
	leftW, rightW := paneWidths(m.width)

	m.left.SetContent(strings.Join(renderPane(paneConfig{
		rows:        mp.Rows,
		snap:        pair.Old,
		pane:        splitdiff.PaneLeft,
		styles:      m.styles,
		renderer:    m.renderer,
		width:       leftW,
		gutterWidth: gutter,
		tabWidth:    m.tabWidth,
	}), "\n"))
	m.right.SetContent(strings.Join(renderPane(paneConfig{
		rows:        mp.Rows,
		snap:        pair.New,
		pane:        splitdiff.PaneRight,
		styles:      m.styles,
		renderer:    m.renderer,
		width:       rightW,
		gutterWidth: gutter,
		tabWidth:    m.tabWidth,
	}), "\n"))
	m.left.GotoTop()
	m.right.GotoTop()
}

func (m *ReviewModel) recordJudgment(pass bool) {
	if len(m.cases) == 0 {
		return
	}

	name := m.cases[m.current].Name

	// Preserve existing critique when toggling pass/fail
	var critique string
	if existing := m.judgments[name]; existing != nil {
		critique = existing.Critique
	}

	m.judgments[name] = &splitdiff.Judgment{
		Case:     name,
		Index:    m.current,
		Judged:   true,
		Pass:     pass,
		Critique: critique,
		JudgedAt: time.Now(),
	}
	m.persistJudgments()
}

func (m *ReviewModel) persistJudgments() {
	if m.store == nil || m.path == "" {
		return
	}
	judgments := make([]splitdiff.Judgment, 0, len(m.judgments))
	for _, j := range m.judgments {
		judgments = append(judgments, *j)
	}
	// Sort by index for deterministic output
	sort.Slice(judgments, func(i, k int) bool {
		return judgments[i].Index < judgments[k].Index
	})
	if err := m.store.Save(m.path, judgments); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	}
}

func (m *ReviewModel) copyCase() {
	if m.clip == nil || len(m.cases) == 0 {
		m.status = "no clipboard configured"
		return
	}
	data, err := json.MarshalIndent(m.cases[m.current], "", "  ")
	if err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	if err := m.clip.Copy(string(data)); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = "copied case"
}

// isUnjudged returns true if the case at the given index has no
// explicit pass/fail yet.
func (m ReviewModel) isUnjudged(idx int) bool {
	if idx < 0 || idx >= len(m.cases) {
		return false
	}
	j := m.judgments[m.cases[idx].Name]
	return j == nil || !j.Judged
}

// findUnjudged returns the index of the nearest unjudged case in the
// given direction, wrapping around, or -1 if every case is judged.
func (m ReviewModel) findUnjudged(dir int) int {
	n := len(m.cases)
	if n == 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		idx := ((m.current+dir*i)%n + n) % n
		if m.isUnjudged(idx) {
			return idx
		}
	}
	return -1
}

// View implements tea.Model.
func (m ReviewModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.mode == modeCritique {
		return m.renderCritiqueView()
	}

	var title string
	if len(m.cases) > 0 {
		title = m.cases[m.current].Name
	}
	titleStyle := styleFromColorPair(m.styles.PaneTitle, m.renderer)
	titleRow := titleStyle.Render(runewidth.FillRight(runewidth.Truncate(" "+title, m.width, "…"), m.width))

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.left.View(),
		dividerColumn(m.left.Height, m.styles, m.renderer),
		m.right.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, titleRow, panes, m.renderJudgmentBar(), m.renderStatusBar())
}

func (m ReviewModel) renderCritiqueView() string {
	var s strings.Builder
	s.WriteString(m.newStyle().Bold(true).Render("CRITIQUE"))
	s.WriteString("\n\n")
	s.WriteString(m.critique.View())
	s.WriteString("\n\n")
	s.WriteString(m.newStyle().Faint(true).Render("[esc] save and exit"))
	return s.String()
}

func (m ReviewModel) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

func (m ReviewModel) renderJudgmentBar() string {
	if len(m.cases) == 0 {
		return ""
	}

	j := m.judgments[m.cases[m.current].Name]

	passMarker := "○"
	failMarker := "○"
	critique := "[not set]"
	if j != nil {
		if j.Judged {
			if j.Pass {
				passMarker = "●"
			} else {
				failMarker = "●"
			}
		}
		if j.Critique != "" {
			critique = runewidth.Truncate(j.Critique, 40, "...")
		}
	}

	bar := fmt.Sprintf("%s pass  %s fail    critique: %s", passMarker, failMarker, critique)
	if m.status != "" {
		bar += "    " + m.status
	}
	return bar
}

func (m ReviewModel) renderStatusBar() string {
	if len(m.cases) == 0 {
		return "No cases"
	}

	judged := 0
	var indicators []string
	for _, c := range m.cases {
		j, ok := m.judgments[c.Name]
		switch {
		case !ok || !j.Judged:
			indicators = append(indicators, "○")
		case j.Pass:
			judged++
			indicators = append(indicators, "✓")
		default:
			judged++
			indicators = append(indicators, "✗")
		}
	}

	caseInfo := fmt.Sprintf("case %d/%d", m.current+1, len(m.cases))
	progress := fmt.Sprintf("%d/%d reviewed", judged, len(m.cases))
	help := "[y]pass [n]fail [i]critique [c]opy [←/→]nav [u/U]unjudged [q]uit"

	return fmt.Sprintf("%s │ %s │ %s │ %s", caseInfo, progress, strings.Join(indicators, " "), help)
}
