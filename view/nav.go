package view

import "github.com/fwojciec/splitdiff"

// FocusLeft gives keyboard focus to the left pane. Idempotent.
func (v *View) FocusLeft() {
	v.setFocus(splitdiff.PaneLeft)
}

// FocusRight gives keyboard focus to the right pane. Idempotent.
func (v *View) FocusRight() {
	v.setFocus(splitdiff.PaneRight)
}

// ToggleFocus flips focus to the other pane.
func (v *View) ToggleFocus() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focus = v.focus.Other()
}

// Focus returns the pane that receives keyboard input.
func (v *View) Focus() splitdiff.Pane {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.focus
}

func (v *View) setFocus(p splitdiff.Pane) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focus = p
}

// NextHunk scrolls both panes to the first hunk starting strictly
// after the focused pane's current row. Past the last hunk nothing
// moves and NextHunk reports false.
func (v *View) NextHunk() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	h, ok := v.committed.m.NextHunk(v.scroll[v.focus].Row)
	if !ok {
		return false
	}
	v.applyScrollLocked(v.focus, splitdiff.ScrollPosition{Row: h.Rows.Start})
	return true
}

// PrevHunk scrolls both panes to the last hunk starting strictly
// before the focused pane's current row. Before the first hunk nothing
// moves and PrevHunk reports false.
func (v *View) PrevHunk() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	h, ok := v.committed.m.PrevHunk(v.scroll[v.focus].Row)
	if !ok {
		return false
	}
	v.applyScrollLocked(v.focus, splitdiff.ScrollPosition{Row: h.Rows.Start})
	return true
}
