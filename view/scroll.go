package view

import "github.com/fwojciec/splitdiff"

// MapPosition translates a position from one pane to the other over
// the committed map. The row is shared between panes; when the target
// side shows a filler at that row, the row snaps to the nearest row
// with content on that side. The fractional offset is preserved.
func (v *View) MapPosition(from splitdiff.Pane, pos splitdiff.ScrollPosition) splitdiff.ScrollPosition {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mapPositionLocked(from, pos)
}

func (v *View) mapPositionLocked(from splitdiff.Pane, pos splitdiff.ScrollPosition) splitdiff.ScrollPosition {
	m := v.committed.m
	pos = clampPosition(pos, m.Len())
	if m.Len() == 0 {
		return pos
	}

	target := from.Other()
	if !m.Rows[pos.Row].HasPane(target) {
		if row, ok := m.NearestContent(pos.Row, target); ok {
			pos.Row = row
		}
	}
	return pos
}

// Scroll records a scroll originating in one pane and drives the
// opposite pane to the mapped position. The programmatic counter
// update is tagged: if the host's change notification loops it
// straight back, it is consumed as a no-op for exactly that one
// update, so propagation is one-directional per event.
func (v *View) Scroll(origin splitdiff.Pane, pos splitdiff.ScrollPosition) {
	v.mu.Lock()
	defer v.mu.Unlock()
	pos = clampPosition(pos, v.committed.m.Len())

	if e := v.echo[origin]; e != nil {
		v.echo[origin] = nil
		if *e == pos {
			return
		}
	}

	v.applyScrollLocked(origin, pos)
}

// applyScrollLocked stores the origin position, maps it, stores the
// counterpart, and arms the counterpart's echo tag.
func (v *View) applyScrollLocked(origin splitdiff.Pane, pos splitdiff.ScrollPosition) {
	v.scroll[origin] = pos
	mapped := v.mapPositionLocked(origin, pos)
	v.scroll[origin.Other()] = mapped
	v.echo[origin.Other()] = &mapped
}

// ScrollAt returns the current position of a pane.
func (v *View) ScrollAt(p splitdiff.Pane) splitdiff.ScrollPosition {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scroll[p]
}

// clampPosition bounds a position to a map of n rows: the row into
// [0, n) and the offset into [0, 1].
func clampPosition(pos splitdiff.ScrollPosition, n int) splitdiff.ScrollPosition {
	if pos.Row < 0 || n == 0 {
		pos.Row = 0
	} else if pos.Row >= n {
		pos.Row = n - 1
	}
	if pos.Offset < 0 {
		pos.Offset = 0
	} else if pos.Offset > 1 {
		pos.Offset = 1
	}
	return pos
}
