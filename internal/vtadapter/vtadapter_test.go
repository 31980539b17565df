package vtadapter

import (
	"testing"

	"github.com/brinkhollow/termcore/internal/cell"
	"github.com/brinkhollow/termcore/internal/grid"
)

func newTestAdapter(t *testing.T, rows, cols, scrollback int) (*Adapter, *grid.Grid) {
	t.Helper()
	g, err := grid.New(rows, cols, scrollback)
	if err != nil {
		t.Fatal(err)
	}
	return New(g), g
}

func TestHelloWritesCellsAndAdvancesCursor(t *testing.T) {
	a, g := newTestAdapter(t, 5, 10, 0)
	a.Write([]byte("Hello"))

	want := "Hello"
	for i, r := range want {
		if got := g.CellAt(0, i).Ch; got != r {
			t.Errorf("cell(0,%d) = %q, want %q", i, got, r)
		}
	}
	x, y, _ := g.Cursor()
	if x != 5 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (5,0)", x, y)
	}
}

func TestNewlineMovesToNextRowAndResetsColumn(t *testing.T) {
	a, g := newTestAdapter(t, 5, 10, 0)
	a.Write([]byte("Hi\r\nBye"))

	for i, r := range "Bye" {
		if got := g.CellAt(1, i).Ch; got != r {
			t.Errorf("cell(1,%d) = %q, want %q", i, got, r)
		}
	}
	x, y, _ := g.Cursor()
	if x != 3 || y != 1 {
		t.Errorf("cursor = (%d,%d), want (3,1)", x, y)
	}
}

func TestBoldSGRSetsFlag(t *testing.T) {
	a, g := newTestAdapter(t, 5, 10, 0)
	a.Write([]byte("\x1b[1mB"))
	c := g.CellAt(0, 0)
	if c.Ch != 'B' {
		t.Fatalf("cell = %+v, want Ch 'B'", c)
	}
	if c.Flags&cell.FlagBold == 0 {
		t.Errorf("bold flag not set: flags = %#x", c.Flags)
	}
}

func TestColorSGRResolvesToRGB(t *testing.T) {
	a, g := newTestAdapter(t, 5, 10, 0)
	// SGR 31 = named red foreground.
	a.Write([]byte("\x1b[31mR"))
	c := g.CellAt(0, 0)
	if c.Fg&0xFF000000 != cell.AlphaOpaque {
		t.Errorf("foreground alpha not opaque: %#x", c.Fg)
	}
	if c.Fg == cell.ARGB(255, 255, 255) {
		t.Errorf("foreground color was not changed by SGR 31")
	}
}

func TestScrollbackPushedOnLineFeedAtBottomRow(t *testing.T) {
	a, g := newTestAdapter(t, 2, 5, 10)
	a.Write([]byte("one\r\ntwo\r\nthree"))

	lines := g.DrainScrollback()
	if len(lines) == 0 {
		t.Fatalf("expected at least one scrolled-off line in scrollback")
	}
	if lines[0][0].Ch != 'o' {
		t.Errorf("first scrollback line starts with %q, want 'o' (from \"one\")", lines[0][0].Ch)
	}
}

func TestResizePreservesCursorLegality(t *testing.T) {
	a, g := newTestAdapter(t, 10, 10, 0)
	a.Write([]byte("\x1b[10;10H")) // CUP to row 10, col 10 (1-based) = (9,9) 0-based
	if err := a.Resize(3, 3); err != nil {
		t.Fatal(err)
	}
	x, y, _ := g.Cursor()
	if x >= 3 || y >= 3 {
		t.Errorf("cursor (%d,%d) not legal after resize to 3x3", x, y)
	}
}

func TestResizeRejectsInvalidDimensions(t *testing.T) {
	a, _ := newTestAdapter(t, 5, 5, 0)
	if err := a.Resize(0, 5); err == nil {
		t.Errorf("Resize(0,5) should fail")
	}
}

func TestAltScreenSwitchHidesPrimaryContentAndSuppressesScrollback(t *testing.T) {
	a, g := newTestAdapter(t, 2, 5, 10)
	a.Write([]byte("one\r\ntwo\r\n")) // scrolls "one" into scrollback, leaves "two" on row 0
	g.DrainScrollback()
	if g.CellAt(0, 0).Ch != 't' {
		t.Fatalf("primary row 0 = %q, want 't' (from \"two\")", g.CellAt(0, 0).Ch)
	}

	a.Write([]byte("\x1b[?1049h")) // enter alternate screen
	if got := g.CellAt(0, 0).Ch; got != 0 {
		t.Errorf("alternate screen should start blank, cell(0,0) = %q", got)
	}

	a.Write([]byte("alt\r\nscreen\r\noverflow\r\n")) // would evict on primary
	if lines := g.DrainScrollback(); len(lines) != 0 {
		t.Errorf("alternate-screen evictions must not enter scrollback, got %d lines", len(lines))
	}

	a.Write([]byte("\x1b[?1049l")) // leave alternate screen
	if g.CellAt(0, 0).Ch != 't' {
		t.Errorf("leaving alternate screen should restore primary content, cell(0,0) = %q", g.CellAt(0, 0).Ch)
	}
}
