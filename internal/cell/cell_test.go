package cell

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Cell{
		{},
		{Ch: 'A', Fg: ARGB(255, 255, 255), Bg: ARGB(0, 0, 0), Flags: FlagBold},
		{Ch: '世', Fg: ARGB(1, 2, 3), Bg: ARGB(4, 5, 6), Flags: FlagUnderline | FlagItalic},
	}
	for _, c := range cases {
		c = c.WithWidth(2)
		buf := make([]byte, Size)
		c.Encode(buf)
		got := Decode(buf)
		if got != c {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, c)
		}
		if got.Width() != 2 {
			t.Errorf("width not preserved: got %d, want 2", got.Width())
		}
	}
}

func TestARGBAlwaysOpaque(t *testing.T) {
	got := ARGB(10, 20, 30)
	if got&0xFF000000 != AlphaOpaque {
		t.Errorf("ARGB(%d,%d,%d) = %#x, alpha byte not 0xFF", 10, 20, 30, got)
	}
	if got != 0xFF0A141E {
		t.Errorf("ARGB composition = %#x, want %#x", got, 0xFF0A141E)
	}
}

func TestWithWidthMasksAndShifts(t *testing.T) {
	var c Cell
	c = c.WithWidth(1)
	if c.Width() != 1 {
		t.Fatalf("Width() = %d, want 1", c.Width())
	}
	c = c.WithWidth(0)
	if c.Width() != 0 {
		t.Fatalf("Width() = %d, want 0", c.Width())
	}
	// flags below the width field are untouched by WithWidth.
	c.Flags |= FlagBold
	c = c.WithWidth(2)
	if c.Flags&FlagBold == 0 {
		t.Fatalf("WithWidth clobbered style flags")
	}
}

func TestEncodeGridLayout(t *testing.T) {
	cells := []Cell{
		{Ch: 'a'}, {Ch: 'b'},
		{Ch: 'c'}, {Ch: 'd'},
	}
	snap := EncodeGrid(2, 2, 1, 0, cells)
	if snap.Rows != 2 || snap.Cols != 2 {
		t.Fatalf("unexpected dims %dx%d", snap.Rows, snap.Cols)
	}
	if got := snap.CellAt(1, 0).Ch; got != 'c' {
		t.Errorf("CellAt(1,0).Ch = %q, want 'c'", got)
	}
	if got := snap.CellAt(0, 1).Ch; got != 'b' {
		t.Errorf("CellAt(0,1).Ch = %q, want 'b'", got)
	}
}

func TestEncodeScrollbackEmpty(t *testing.T) {
	snap := EncodeScrollback(nil)
	if !snap.Empty() {
		t.Errorf("EncodeScrollback(nil) should be Empty()")
	}
}

func TestEncodeScrollbackPreservesRowLengths(t *testing.T) {
	lines := []Line{
		{{Ch: 'a'}, {Ch: 'b'}},
		{{Ch: 'c'}},
	}
	snap := EncodeScrollback(lines)
	if snap.Empty() {
		t.Fatalf("snapshot should not be empty")
	}
	if len(snap.RowLengths) != 2 || snap.RowLengths[0] != 2 || snap.RowLengths[1] != 1 {
		t.Errorf("RowLengths = %v, want [2 1]", snap.RowLengths)
	}
	if len(snap.Cells) != 3*Size {
		t.Errorf("Cells len = %d, want %d", len(snap.Cells), 3*Size)
	}
}
