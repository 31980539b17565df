// Package termcore is the public Facade (Component E) over the headless
// terminal emulator core: it owns the grid lock that serializes every
// access to the parser, grid, cursor, and scrollback, and sequences
// construction, input, snapshotting, resizing, and the optional PTY
// session described in SPEC_FULL.md §4.E and §7.
package termcore

import (
	"sync"

	"github.com/brinkhollow/termcore/internal/cell"
	"github.com/brinkhollow/termcore/internal/errors"
	"github.com/brinkhollow/termcore/internal/grid"
	"github.com/brinkhollow/termcore/internal/pty"
	"github.com/brinkhollow/termcore/internal/vtadapter"
)

// Options configures a new Terminal.
type Options struct {
	Rows, Cols    int
	MaxScrollback int // 0 disables scrollback retention
}

// Terminal is the headless terminal core. One Terminal owns one grid, one
// VT adapter, and at most one PTY session. It is safe for concurrent use:
// every method acquires the single grid lock before touching shared state.
type Terminal struct {
	mu sync.Mutex // the "grid lock" of SPEC_FULL.md §7

	grid    *grid.Grid
	adapter *vtadapter.Adapter

	session *pty.Session
}

// New constructs a Terminal with the given dimensions and scrollback
// capacity. Returns errors.InvalidDimensions if rows or cols is not
// positive.
func New(opts Options) (*Terminal, error) {
	g, err := grid.New(opts.Rows, opts.Cols, opts.MaxScrollback)
	if err != nil {
		return nil, err
	}
	return &Terminal{
		grid:    g,
		adapter: vtadapter.New(g),
	}, nil
}

// WriteInput feeds bytes into the terminal. If a PTY session is running,
// the bytes are sent to the child process's stdin; otherwise they are fed
// directly into the VT parser, which is what lets the core be driven and
// tested with no PTY attached at all (SPEC_FULL.md §1).
func (t *Terminal) WriteInput(data []byte) (int, error) {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()

	if session != nil && session.Running() {
		return session.Write(data)
	}
	t.Feed(data)
	return len(data), nil
}

// Feed decodes raw output bytes (from a PTY or a test harness) into the
// grid under the grid lock. It implements pty.Feeder so a Session's reader
// task can call it directly without taking the lock itself.
func (t *Terminal) Feed(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.adapter.Write(data)
}

// SnapshotGrid returns an immutable copy of the live grid and cursor,
// taken under the grid lock.
func (t *Terminal) SnapshotGrid() cell.GridSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid.Snapshot()
}

// DrainScrollback returns and clears every scrollback line pushed since
// the previous DrainScrollback call, taken under the grid lock. Returns an
// Empty snapshot (never nil) when nothing is pending.
func (t *Terminal) DrainScrollback() cell.ScrollbackSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cell.EncodeScrollback(t.grid.DrainScrollback())
}

// Cursor returns the current cursor position and visibility.
func (t *Terminal) Cursor() (x, y int, visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid.Cursor()
}

// Dimensions returns the current row and column count.
func (t *Terminal) Dimensions() (rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid.Dimensions()
}

// Resize reshapes the grid and, if a PTY session is running, propagates
// the new size to the kernel-side window. The grid is resized first so the
// parser's notion of the terminal's size is never stale relative to what
// the kernel reports, per SPEC_FULL.md §4.D.
func (t *Terminal) Resize(rows, cols int) error {
	t.mu.Lock()
	if err := t.adapter.Resize(rows, cols); err != nil {
		t.mu.Unlock()
		return err
	}
	session := t.session
	t.mu.Unlock()

	if session != nil && session.Running() {
		return session.Resize(rows, cols)
	}
	return nil
}

// StartPTY forks cfg.Shell under a pseudoterminal sized to the terminal's
// current dimensions and begins feeding its output through the VT adapter.
// Returns errors.AlreadyRunning if a session is already active.
func (t *Terminal) StartPTY(cfg pty.Config) error {
	t.mu.Lock()
	if t.session != nil && t.session.Running() {
		t.mu.Unlock()
		return errors.AlreadyRunning()
	}
	rows, cols := t.grid.Dimensions()
	cfg.Rows, cfg.Cols = rows, cols
	session := pty.NewSession()
	t.session = session
	t.mu.Unlock()

	return session.Start(cfg, t)
}

// StopPTY terminates the running PTY session, if any. It is idempotent.
func (t *Terminal) StopPTY() error {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()

	if session == nil {
		return nil
	}
	return session.Stop()
}

// PTYRunning reports whether a PTY session is currently attached and alive.
func (t *Terminal) PTYRunning() bool {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()
	return session != nil && session.Running()
}
