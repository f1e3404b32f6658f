// Package diff computes line and character level diffs using the
// go-diff library.
package diff

import (
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.Differ = (*Engine)(nil)

// DefaultEditBudget is the number of changed lines past which a diff
// is degraded to a coarse whole-range replace.
const DefaultEditBudget = 8192

// DefaultTimeout bounds how long the core diff algorithm may search
// for a minimal script before settling for a suboptimal one.
const DefaultTimeout = time.Second

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEditBudget sets the changed-line budget. Zero or negative
// disables the budget.
func WithEditBudget(n int) EngineOption {
	return func(e *Engine) {
		e.budget = n
	}
}

// WithTimeout sets the diff computation timeout. Zero disables it,
// making results fully deterministic at the price of unbounded cost on
// pathological inputs.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.timeout = d
	}
}

// Engine computes line-level edit scripts between snapshots. It is
// stateless and safe for concurrent use.
type Engine struct {
	budget  int
	timeout time.Duration
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		budget:  DefaultEditBudget,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Diff computes the edit script transforming old into new. It never
// fails: empty or nil inputs yield a single op covering everything,
// and inputs whose change exceeds the edit budget yield a script
// degraded to one coarse replace with the Coarse flag set.
//
// Common prefix and suffix lines are trimmed before the core
// algorithm runs, so typical edits cost far less than a full
// comparison.
func (e *Engine) Diff(old, new *splitdiff.Snapshot) splitdiff.EditScript {
	oldLines := snapshotLines(old)
	newLines := snapshotLines(new)

	prefix, suffix := trimCommon(oldLines, newLines)
	oldMid := oldLines[prefix : len(oldLines)-suffix]
	newMid := newLines[prefix : len(newLines)-suffix]

	ops := e.diffLines(oldMid, newMid, prefix)
	coarse := false

	if e.budget > 0 {
		if deleted, added := countChanged(ops); deleted+added > e.budget {
			ops = []splitdiff.EditOp{coarseOp(oldMid, newMid, prefix)}
			coarse = true
		}
	}

	script := splitdiff.EditScript{Coarse: coarse}
	if prefix > 0 {
		script.Ops = append(script.Ops, splitdiff.EditOp{
			Kind: splitdiff.EditEqual,
			Old:  splitdiff.Range{Start: 0, End: prefix},
			New:  splitdiff.Range{Start: 0, End: prefix},
		})
	}
	script.Ops = append(script.Ops, ops...)
	if suffix > 0 {
		script.Ops = append(script.Ops, splitdiff.EditOp{
			Kind: splitdiff.EditEqual,
			Old:  splitdiff.Range{Start: len(oldLines) - suffix, End: len(oldLines)},
			New:  splitdiff.Range{Start: len(newLines) - suffix, End: len(newLines)},
		})
	}
	return script
}

// diffLines runs the core line diff over the trimmed middles. Ranges
// in the returned ops are absolute, offset by the trimmed prefix.
func (e *Engine) diffLines(oldMid, newMid []string, offset int) []splitdiff.EditOp {
	switch {
	case len(oldMid) == 0 && len(newMid) == 0:
		return nil
	case len(oldMid) == 0:
		return []splitdiff.EditOp{{
			Kind: splitdiff.EditInsert,
			Old:  splitdiff.Range{Start: offset, End: offset},
			New:  splitdiff.Range{Start: offset, End: offset + len(newMid)},
		}}
	case len(newMid) == 0:
		return []splitdiff.EditOp{{
			Kind: splitdiff.EditDelete,
			Old:  splitdiff.Range{Start: offset, End: offset + len(oldMid)},
			New:  splitdiff.Range{Start: offset, End: offset},
		}}
	}

	// Encode each distinct line as one rune so the core algorithm
	// works line-at-a-time, then decode run lengths by rune count.
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = e.timeout
	rOld, rNew, _ := dmp.DiffLinesToRunes(joinLines(oldMid), joinLines(newMid))
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	var ops []splitdiff.EditOp
	oldPos, newPos := offset, offset
	pendingDel, pendingIns := 0, 0

	// Adjacent delete and insert runs collapse into a single replace
	// op: that pairing is what feeds intraline highlighting.
	flush := func() {
		if pendingDel == 0 && pendingIns == 0 {
			return
		}
		op := splitdiff.EditOp{
			Old: splitdiff.Range{Start: oldPos, End: oldPos + pendingDel},
			New: splitdiff.Range{Start: newPos, End: newPos + pendingIns},
		}
		switch {
		case pendingDel > 0 && pendingIns > 0:
			op.Kind = splitdiff.EditReplace
		case pendingDel > 0:
			op.Kind = splitdiff.EditDelete
		default:
			op.Kind = splitdiff.EditInsert
		}
		ops = append(ops, op)
		oldPos += pendingDel
		newPos += pendingIns
		pendingDel, pendingIns = 0, 0
	}

	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			ops = append(ops, splitdiff.EditOp{
				Kind: splitdiff.EditEqual,
				Old:  splitdiff.Range{Start: oldPos, End: oldPos + n},
				New:  splitdiff.Range{Start: newPos, End: newPos + n},
			})
			oldPos += n
			newPos += n
		case diffmatchpatch.DiffDelete:
			pendingDel += n
		case diffmatchpatch.DiffInsert:
			pendingIns += n
		}
	}
	flush()

	return ops
}

// coarseOp builds the single op covering both trimmed middles.
func coarseOp(oldMid, newMid []string, offset int) splitdiff.EditOp {
	op := splitdiff.EditOp{
		Old: splitdiff.Range{Start: offset, End: offset + len(oldMid)},
		New: splitdiff.Range{Start: offset, End: offset + len(newMid)},
	}
	switch {
	case len(oldMid) > 0 && len(newMid) > 0:
		op.Kind = splitdiff.EditReplace
	case len(oldMid) > 0:
		op.Kind = splitdiff.EditDelete
	default:
		op.Kind = splitdiff.EditInsert
	}
	return op
}

// countChanged totals the deleted and added lines across ops.
func countChanged(ops []splitdiff.EditOp) (deleted, added int) {
	for _, op := range ops {
		switch op.Kind {
		case splitdiff.EditDelete:
			deleted += op.Old.Len()
		case splitdiff.EditInsert:
			added += op.New.Len()
		case splitdiff.EditReplace:
			deleted += op.Old.Len()
			added += op.New.Len()
		}
	}
	return deleted, added
}

// trimCommon returns how many identical lines both slices share at
// the start and at the end, without overlap.
func trimCommon(oldLines, newLines []string) (prefix, suffix int) {
	limit := min(len(oldLines), len(newLines))
	for prefix < limit && oldLines[prefix] == newLines[prefix] {
		prefix++
	}
	for suffix < limit-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}
	return prefix, suffix
}

// joinLines rebuilds newline-terminated text so every line encodes
// uniformly.
func joinLines(lines []string) string {
	var n int
	for _, l := range lines {
		n += len(l) + 1
	}
	b := make([]byte, 0, n)
	for _, l := range lines {
		b = append(b, l...)
		b = append(b, '\n')
	}
	return string(b)
}

// snapshotLines returns the snapshot's lines, nil-safe.
func snapshotLines(s *splitdiff.Snapshot) []string {
	if s == nil {
		return nil
	}
	return s.Lines
}
