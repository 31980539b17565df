// Package pty manages the forked pseudoterminal child process described in
// SPEC_FULL.md §4.D: starting the shell, pumping its output to the VT
// adapter, resizing the kernel-side window, and stopping it in an orderly
// way. It is grounded on the teacher's own PTY session management, reworked
// around a single unmultiplexed session per Terminal rather than a
// SessionManager-tracked pool.
package pty

import (
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/google/uuid"

	"github.com/brinkhollow/termcore/internal/errors"
)

// Feeder receives raw bytes read from the PTY master and is responsible for
// its own locking; the reader task below never holds the grid lock while
// blocked in Read, per SPEC_FULL.md §7's concurrency model.
type Feeder interface {
	Feed(data []byte)
}

// Config configures a Session before Start.
type Config struct {
	Shell string
	Args  []string
	Env   []string // additional environment, appended to os.Environ()
	Rows  int
	Cols  int
}

// termEnv is the value Start always exports as TERM to the child, per
// SPEC_FULL.md §4.D step 2. It is set unconditionally, after the inherited
// environment and any caller-supplied Env, the same way the original
// PocketTerminal::startPty() calls setenv("TERM", "xterm-256color", 1) as
// the last environment write before exec — so every embedder gets a
// terminfo-capable TERM regardless of what it inherited or passed in.
const termEnv = "xterm-256color"

// Session manages one forked shell attached to a pseudoterminal. It is safe
// for concurrent use: Write, Resize, and Stop may be called from any
// goroutine while the reader task is running.
type Session struct {
	id uuid.UUID

	mu      sync.Mutex
	cmd     *exec.Cmd
	ptmx    *os.File
	running bool

	done chan struct{}
	err  error

	// onExit is invoked exactly once, off the caller's goroutine, when the
	// child process exits for any reason (including Stop).
	onExit func(error)
}

// NewSession constructs an idle Session. Start must be called before any
// I/O is possible.
func NewSession() *Session {
	return &Session{id: uuid.New()}
}

// ID returns the UUID tagging this session's lifetime, for log correlation
// across PTY restarts.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// OnExit registers a callback invoked once the child process exits. Must be
// called before Start to guarantee delivery.
func (s *Session) OnExit(fn func(error)) {
	s.mu.Lock()
	s.onExit = fn
	s.mu.Unlock()
}

// Start forks cfg.Shell with cfg.Args under a new pseudoterminal sized to
// cfg.Rows x cfg.Cols, and begins pumping its output to feeder. Returns
// errors.AlreadyRunning if called while already running, or
// errors.PtyStartFailed if the fork itself fails.
func (s *Session) Start(cfg Config, feeder Feeder) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.AlreadyRunning()
	}

	cmd := exec.Command(cfg.Shell, cfg.Args...)
	env := append(os.Environ(), cfg.Env...)
	cmd.Env = append(env, "TERM="+termEnv)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(cfg.Rows),
		Cols: uint16(cfg.Cols),
	})
	if err != nil {
		s.mu.Unlock()
		return errors.PtyStartFailed(err)
	}

	s.cmd = cmd
	s.ptmx = ptmx
	s.running = true
	s.done = make(chan struct{})
	s.err = nil
	s.mu.Unlock()

	// The child is reaped only after the reader task has finished, so Done
	// closes once every byte the child wrote has been handed to feeder.
	go func() {
		s.captureOutput(feeder)
		s.waitForExit()
	}()

	return nil
}

// captureOutput is the reader task: it blocks in Read with no lock held,
// then hands the bytes to feeder, which does its own locking before
// touching the grid. This is the "PTY reader task" mutator referenced in
// SPEC_FULL.md §7.
func (s *Session) captureOutput(feeder Feeder) {
	buf := make([]byte, 4096)
	ptmx := s.ptmx
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			feeder.Feed(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				s.mu.Lock()
				s.err = errors.PtyIOError(err)
				s.mu.Unlock()
			}
			return
		}
	}
}

func (s *Session) waitForExit() {
	err := s.cmd.Wait()

	s.mu.Lock()
	s.running = false
	if s.err == nil && err != nil {
		s.err = errors.ChildExited()
	}
	exitErr := s.err
	onExit := s.onExit
	close(s.done)
	s.mu.Unlock()

	if onExit != nil {
		onExit(exitErr)
	}
}

// Write sends input bytes to the child process's stdin via the PTY master.
// Returns errors.NotRunning if the session isn't started, or
// errors.WriteFailed on a write error — including a short write, which is
// surfaced rather than retried (see DESIGN.md's resolution of spec.md's
// Open Question on this point).
func (s *Session) Write(p []byte) (int, error) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return 0, errors.NotRunning()
	}
	ptmx := s.ptmx
	s.mu.Unlock()

	n, err := ptmx.Write(p)
	if err != nil {
		return n, errors.WriteFailed(err)
	}
	return n, nil
}

// Resize updates the kernel-side pseudoterminal window size. The caller is
// responsible for resizing the grid first, per SPEC_FULL.md §4.D's
// parser-before-kernel resize ordering.
func (s *Session) Resize(rows, cols int) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return errors.NotRunning()
	}
	ptmx := s.ptmx
	s.mu.Unlock()

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return errors.Wrap(errors.CodeSessionIOError, "failed to resize pty", err)
	}
	return nil
}

// Stop terminates the child process and closes the PTY master. It is
// idempotent: calling Stop on an already-stopped session is a no-op. Per
// spec.md's design notes, termination is immediate (SIGKILL) rather than a
// SIGTERM-then-escalate sequence (see DESIGN.md's resolution of the
// corresponding Open Question).
func (s *Session) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	cmd := s.cmd
	ptmx := s.ptmx
	done := s.done
	s.mu.Unlock()

	if cmd.Process != nil {
		_ = cmd.Process.Signal(syscall.SIGKILL)
	}
	_ = ptmx.Close()

	<-done
	return nil
}

// Running reports whether the session is running: true from Start until the
// reader task has finished and the child process has been reaped.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Err returns the error, if any, that ended the last run.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done returns a channel closed once the reader task has finished and the
// child process has been reaped.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
