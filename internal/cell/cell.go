// Package cell defines the fixed binary layout for a single grid cell and
// the snapshot records built from them. The layout is part of the wire
// contract with the foreign-language bridge (see SPEC_FULL.md §8) and must
// not change without a version bump on the consuming side.
package cell

import "encoding/binary"

// Size is the fixed, padding-free byte size of an encoded Cell.
const Size = 16

// Flag bits within the flags word. Bits 8-15 carry the cell width.
const (
	FlagBold      uint32 = 1 << 0
	FlagUnderline uint32 = 1 << 1
	FlagItalic    uint32 = 1 << 2
	FlagBlink     uint32 = 1 << 3
	FlagReverse   uint32 = 1 << 4
	FlagStrike    uint32 = 1 << 5
)

const widthShift = 8

// AlphaOpaque is the fixed alpha byte for both fg and bg: cells never carry
// transparency, only the 0xAARRGGBB encoding's top byte is always 0xFF.
const AlphaOpaque = 0xFF000000

// Cell is the fixed 16-byte record described in SPEC_FULL.md §3. Ch is the
// primary Unicode scalar (0 means empty); Fg/Bg are ARGB with alpha always
// 0xFF; Flags packs the style bits plus the cell width in bits 8-15.
type Cell struct {
	Ch    rune
	Fg    uint32
	Bg    uint32
	Flags uint32
}

// Width returns the cell's stored width (1 for normal, 2 for the leading
// half of a wide glyph, 0 for a wide glyph's trailing spacer).
func (c Cell) Width() int {
	return int((c.Flags >> widthShift) & 0xFF)
}

// WithWidth returns a copy of c with the width field set. w is masked to 8
// bits before being shifted into place, per SPEC_FULL.md §4.B.
func (c Cell) WithWidth(w int) Cell {
	c.Flags = (c.Flags &^ (0xFF << widthShift)) | ((uint32(w) & 0xFF) << widthShift)
	return c
}

// ARGB composes an opaque ARGB color word from 8-bit channels, per the
// numeric semantics in SPEC_FULL.md §4.B: (0xFF<<24) | (R<<16) | (G<<8) | B.
func ARGB(r, g, b uint8) uint32 {
	return AlphaOpaque | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Encode writes the cell's 16-byte little-endian wire representation into
// dst, which must be at least Size bytes long.
func (c Cell) Encode(dst []byte) {
	binary.LittleEndian.PutUint32(dst[0:4], uint32(c.Ch))
	binary.LittleEndian.PutUint32(dst[4:8], c.Fg)
	binary.LittleEndian.PutUint32(dst[8:12], c.Bg)
	binary.LittleEndian.PutUint32(dst[12:16], c.Flags)
}

// Decode reads a Cell back out of its 16-byte little-endian wire form.
func Decode(src []byte) Cell {
	return Cell{
		Ch:    rune(binary.LittleEndian.Uint32(src[0:4])),
		Fg:    binary.LittleEndian.Uint32(src[4:8]),
		Bg:    binary.LittleEndian.Uint32(src[8:12]),
		Flags: binary.LittleEndian.Uint32(src[12:16]),
	}
}

// GridSnapshot is an immutable, caller-owned copy of the live grid plus
// cursor, produced under the grid lock (SPEC_FULL.md §4.A).
type GridSnapshot struct {
	Rows, Cols       int
	CursorX, CursorY int
	Cells            []byte // Rows*Cols packed Cell records, row-major.
}

// CellAt decodes and returns the cell at (r, c) from the packed buffer.
func (g GridSnapshot) CellAt(r, c int) Cell {
	off := (r*g.Cols + c) * Size
	return Decode(g.Cells[off : off+Size])
}

// Line is one evicted row of cells, stored at its exact length (which may
// be less than the grid's column count at eviction time).
type Line []Cell

// ScrollbackSnapshot is an immutable, FIFO-ordered (oldest first) drain of
// pending scrollback lines.
type ScrollbackSnapshot struct {
	RowLengths []int
	Cells      []byte // concatenation of each line's packed cells.
}

// Empty reports whether the snapshot carries no lines — the bridge
// represents this as an explicit null (SPEC_FULL.md §8).
func (s ScrollbackSnapshot) Empty() bool {
	return len(s.RowLengths) == 0
}

// EncodeGrid packs rows*cols cells in row-major order into a GridSnapshot.
func EncodeGrid(rows, cols, cursorX, cursorY int, cells []Cell) GridSnapshot {
	buf := make([]byte, len(cells)*Size)
	for i, c := range cells {
		c.Encode(buf[i*Size : i*Size+Size])
	}
	return GridSnapshot{Rows: rows, Cols: cols, CursorX: cursorX, CursorY: cursorY, Cells: buf}
}

// EncodeScrollback packs a FIFO-ordered batch of drained lines.
func EncodeScrollback(lines []Line) ScrollbackSnapshot {
	if len(lines) == 0 {
		return ScrollbackSnapshot{}
	}
	rowLengths := make([]int, len(lines))
	total := 0
	for i, l := range lines {
		rowLengths[i] = len(l)
		total += len(l)
	}
	buf := make([]byte, total*Size)
	off := 0
	for _, l := range lines {
		for _, c := range l {
			c.Encode(buf[off : off+Size])
			off += Size
		}
	}
	return ScrollbackSnapshot{RowLengths: rowLengths, Cells: buf}
}
