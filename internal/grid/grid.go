// Package grid holds the live cell grid, cursor, and bounded scrollback
// deque described in SPEC_FULL.md §3. It is a pure data container: it
// performs no locking of its own. The caller (the termcore Facade) is
// responsible for serializing access under the single grid lock described
// in SPEC_FULL.md §7.
package grid

import (
	"github.com/brinkhollow/termcore/internal/cell"
	"github.com/brinkhollow/termcore/internal/errors"
)

// Grid is the live cell buffer, cursor position, and scrollback deque for
// one terminal session.
type Grid struct {
	rows, cols int
	cells      []cell.Cell // row-major, len == rows*cols
	dirty      []bool      // per-row dirty flag, len == rows

	cursorX, cursorY int
	cursorVisible    bool

	scrollback    []cell.Line // FIFO, oldest first
	maxScrollback int
	pending       []cell.Line // lines pushed since the last Drain
}

// New constructs a Grid of the given dimensions with a bounded scrollback
// capacity. Returns errors.InvalidDimensions if rows or cols is not
// positive, per SPEC_FULL.md §3's grid invariants.
func New(rows, cols, maxScrollback int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.InvalidDimensions(rows, cols)
	}
	if maxScrollback < 0 {
		maxScrollback = 0
	}
	g := &Grid{
		rows:          rows,
		cols:          cols,
		cells:         make([]cell.Cell, rows*cols),
		dirty:         make([]bool, rows),
		cursorVisible: true,
		maxScrollback: maxScrollback,
	}
	return g, nil
}

// Dimensions returns the current row and column count.
func (g *Grid) Dimensions() (rows, cols int) {
	return g.rows, g.cols
}

// Cursor returns the current cursor position and visibility.
func (g *Grid) Cursor() (x, y int, visible bool) {
	return g.cursorX, g.cursorY, g.cursorVisible
}

// SetCursor moves the cursor. x and y are clamped into the legal range
// [0,cols-1]x[0,rows-1] so a resize or an out-of-range move from the VT
// adapter can never leave the cursor pointing outside the grid, per the
// cursor-legality invariant in SPEC_FULL.md §3.
func (g *Grid) SetCursor(x, y int, visible bool) {
	g.cursorX = clamp(x, 0, g.cols-1)
	g.cursorY = clamp(y, 0, g.rows-1)
	g.cursorVisible = visible
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PutCell writes a single cell at (row, col) and marks the row dirty.
// Out-of-range coordinates are ignored rather than panicking, since a
// malformed escape sequence must never crash the emulator.
func (g *Grid) PutCell(row, col int, c cell.Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row*g.cols+col] = c
	g.dirty[row] = true
}

// CellAt returns the cell at (row, col), or the zero Cell if out of range.
func (g *Grid) CellAt(row, col int) cell.Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return cell.Cell{}
	}
	return g.cells[row*g.cols+col]
}

// MarkDirty flags an entire row as changed without rewriting its cells.
func (g *Grid) MarkDirty(row int) {
	if row >= 0 && row < g.rows {
		g.dirty[row] = true
	}
}

// PushScrollback appends an evicted line to the scrollback, evicting the
// oldest retained line once maxScrollback is exceeded (SPEC_FULL.md §3's
// bounded-FIFO invariant). The line is also queued for the next Drain; that
// queue is capped at maxScrollback the same way, dropping its oldest line.
func (g *Grid) PushScrollback(line cell.Line) {
	if g.maxScrollback == 0 {
		return
	}
	g.scrollback = append(g.scrollback, line)
	if len(g.scrollback) > g.maxScrollback {
		g.scrollback = g.scrollback[len(g.scrollback)-g.maxScrollback:]
	}
	g.pending = append(g.pending, line)
	if len(g.pending) > g.maxScrollback {
		g.pending = g.pending[len(g.pending)-g.maxScrollback:]
	}
}

// MaxScrollback returns the configured scrollback capacity, used to keep
// an embedded VT emulator's own scrollback cap in sync with this deque's.
func (g *Grid) MaxScrollback() int {
	return g.maxScrollback
}

// DrainScrollback returns every line pushed since the last call to
// DrainScrollback and clears the pending queue. This is drain-once
// consumption, not a replayable ring: a line is returned by exactly one
// DrainScrollback call.
func (g *Grid) DrainScrollback() []cell.Line {
	if len(g.pending) == 0 {
		return nil
	}
	drained := g.pending
	g.pending = nil
	return drained
}

// Reshape resizes the grid in place, preserving the overlapping region of
// the old contents at the top-left and clamping the cursor back into the
// legal range (SPEC_FULL.md §3's resize-preserves-cursor-legality
// invariant). It does not touch scrollback: a resize's content eviction is
// the embedded VT emulator's own concern (it pushes through
// PushScrollback just like a normal scroll), so Reshape only needs to keep
// this mirror's dimensions and cursor legal.
func (g *Grid) Reshape(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return errors.InvalidDimensions(rows, cols)
	}
	old := g.cells
	oldRows, oldCols := g.rows, g.cols

	newCells := make([]cell.Cell, rows*cols)
	minRows := min(rows, oldRows)
	minCols := min(cols, oldCols)
	for r := 0; r < minRows; r++ {
		for c := 0; c < minCols; c++ {
			newCells[r*cols+c] = old[r*oldCols+c]
		}
	}

	g.cells = newCells
	g.dirty = make([]bool, rows)
	for i := range g.dirty {
		g.dirty[i] = true
	}
	g.rows, g.cols = rows, cols
	g.cursorX = clamp(g.cursorX, 0, cols-1)
	g.cursorY = clamp(g.cursorY, 0, rows-1)
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Snapshot copies the live grid and cursor into an immutable wire record.
// Only rows flagged dirty since the last snapshot are guaranteed fresh by
// the caller's bookkeeping; Snapshot itself always reads the full grid, so
// the result is correct regardless of dirty state — dirty tracking is an
// optimization hook for a future incremental snapshot, not part of the
// external contract.
func (g *Grid) Snapshot() cell.GridSnapshot {
	snap := cell.EncodeGrid(g.rows, g.cols, g.cursorX, g.cursorY, g.cells)
	for i := range g.dirty {
		g.dirty[i] = false
	}
	return snap
}

// DirtyRows reports which rows changed since the last ClearDirty or
// Snapshot call (Snapshot also resets every row's dirty flag).
func (g *Grid) DirtyRows() []int {
	var rows []int
	for i, d := range g.dirty {
		if d {
			rows = append(rows, i)
		}
	}
	return rows
}

// ClearDirty resets every row's dirty flag.
func (g *Grid) ClearDirty() {
	for i := range g.dirty {
		g.dirty[i] = false
	}
}
