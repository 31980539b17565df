// Package vtadapter wraps a full embeddable terminal emulator
// (github.com/danielgatis/go-headless-term) and translates its cell,
// cursor, and scrollback state into the fixed wire types in internal/cell.
// It performs no VT parsing itself: every escape sequence — cursor motion,
// scroll regions, insert/delete, erase modes, SGR, alt-screen switching — is
// handled inside the embedded Terminal, per spec.md §1's "delegates VT
// parsing to an embeddable terminal library" Non-goal. This package is the
// thin pull-model bridge between that library's read accessors and the
// push-model internal/grid buffer the termcore Facade snapshots.
package vtadapter

import (
	headlessterm "github.com/danielgatis/go-headless-term"

	"github.com/brinkhollow/termcore/internal/errors"
	"github.com/brinkhollow/termcore/internal/grid"
)

// Adapter owns the embedded Terminal and mirrors its state into sb after
// every Write, so the Facade's grid lock never has to reach into the
// library's own locking to take a snapshot.
type Adapter struct {
	term *headlessterm.Terminal
	sb   *grid.Grid

	wasAlt bool // last-observed alt-screen state, to force a full repaint on toggle
}

var _ headlessterm.ScrollbackProvider = (*Adapter)(nil)

// New returns an Adapter driving a headlessterm.Terminal sized to match sb,
// with evicted primary-screen lines queued into sb's bounded FIFO
// scrollback deque. The alternate screen carries no scrollback of its own
// (the library's own buffer design, matching spec.md §9's alt-screen
// eviction-suppression invariant), so no extra gating is needed here.
func New(sb *grid.Grid) *Adapter {
	rows, cols := sb.Dimensions()
	a := &Adapter{sb: sb}
	a.term = headlessterm.New(
		headlessterm.WithSize(rows, cols),
		headlessterm.WithScrollback(a),
	)
	a.term.SetMaxScrollback(sb.MaxScrollback())
	return a
}

// Write decodes a chunk of raw terminal output and mirrors the resulting
// state into sb. All VT semantics live inside the embedded Terminal.
func (a *Adapter) Write(data []byte) {
	a.term.Write(data)
	a.sync()
}

// PushScrollback satisfies headlessterm.ScrollbackProvider: the embedded
// Terminal calls this for every primary-screen line evicted off the top of
// the scroll region. It is never called for alternate-screen evictions,
// since the library keeps the alternate buffer scrollback-free.
func (a *Adapter) PushScrollback(line []headlessterm.Cell) {
	a.sb.PushScrollback(toLine(line))
}

// sync copies the embedded Terminal's current cell, cursor, and dirty state
// into sb. A full repaint (every cell, not just the reported-dirty set) is
// forced right after an alt-screen toggle, since the active buffer swap
// itself isn't reported through DirtyCells.
func (a *Adapter) sync() {
	rows, cols := a.sb.Dimensions()
	alt := a.term.IsAlternateScreen()
	full := alt != a.wasAlt
	a.wasAlt = alt

	if full {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				a.sb.PutCell(r, c, toCell(a.term.Cell(r, c)))
			}
		}
	} else {
		for _, pos := range a.term.DirtyCells() {
			if pos.Row < 0 || pos.Row >= rows || pos.Col < 0 || pos.Col >= cols {
				continue
			}
			a.sb.PutCell(pos.Row, pos.Col, toCell(a.term.Cell(pos.Row, pos.Col)))
		}
	}
	a.term.ClearDirty()

	row, col := a.term.CursorPos()
	a.sb.SetCursor(col, row, a.term.CursorVisible())
}

// Resize grows or shrinks both the mirror grid and the embedded Terminal,
// then forces a full repaint so the mirror never serves stale cells from
// the old dimensions.
func (a *Adapter) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return errors.InvalidDimensions(rows, cols)
	}
	if err := a.sb.Reshape(rows, cols); err != nil {
		return err
	}
	a.term.Resize(rows, cols)
	a.wasAlt = !a.term.IsAlternateScreen() // force the repaint branch in sync
	a.sync()
	return nil
}
