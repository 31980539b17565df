// Command termcore is a small smoke-test harness for the termcore core: it
// can attach a real PTY to the user's shell, or drive the parser directly
// from a byte file with no PTY at all, per SPEC_FULL.md §4.H.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/brinkhollow/termcore"
	"github.com/brinkhollow/termcore/internal/config"
	"github.com/brinkhollow/termcore/internal/pty"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "path to config.toml")
	feedPath := fs.String("feed", "", "drive the parser from this byte file instead of a PTY")

	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	term, err := termcore.New(termcore.Options{
		Rows:          cfg.Rows,
		Cols:          cfg.Cols,
		MaxScrollback: cfg.MaxScrollback,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *feedPath != "" {
		return runFeed(term, *feedPath, stderr)
	}
	return runPTY(term, cfg, stdout, stderr)
}

func runFeed(term *termcore.Terminal, path string, stderr io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	term.Feed(data)

	snap := term.SnapshotGrid()
	x, y, _ := term.Cursor()
	fmt.Fprintf(stderr, "fed %d bytes; grid %dx%d; cursor (%d,%d)\n", len(data), snap.Rows, snap.Cols, x, y)
	return 0
}

func runPTY(term *termcore.Terminal, cfg *config.Config, stdout, stderr io.Writer) int {
	shell := cfg.Shell
	if shell == "" {
		if s := os.Getenv("SHELL"); s != "" {
			shell = s
		} else {
			shell = config.DefaultShell
		}
	}

	// TERM is set unconditionally by pty.Session.Start itself, so every
	// embedder of the core gets a terminfo-capable child regardless of
	// whether it remembers to ask for one here.
	err := term.StartPTY(pty.Config{Shell: shell})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer term.StopPTY()

	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if _, werr := term.WriteInput(buf[:n]); werr != nil {
				fmt.Fprintln(stderr, werr)
				return 1
			}
		}
		if err != nil {
			break
		}
		if !term.PTYRunning() {
			break
		}
	}

	fmt.Fprintln(stdout, "session ended")
	return 0
}
