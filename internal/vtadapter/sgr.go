package vtadapter

import (
	"image/color"

	headlessterm "github.com/danielgatis/go-headless-term"

	"github.com/brinkhollow/termcore/internal/cell"
)

// toCell translates one headlessterm.Cell into the fixed wire Cell,
// resolving named/indexed colors to concrete RGB and collapsing the
// library's richer flag set onto the six style bits the wire format
// carries (SPEC_FULL.md §3/§8). A nil cell or a wide-char's trailing
// spacer both collapse to the zero Cell.
func toCell(c *headlessterm.Cell) cell.Cell {
	if c == nil || c.IsWideSpacer() {
		return cell.Cell{}
	}
	out := cell.Cell{
		Ch:    c.Char,
		Fg:    resolveColor(c.Fg, cell.ARGB(255, 255, 255)),
		Bg:    resolveColor(c.Bg, cell.AlphaOpaque),
		Flags: translateFlags(c),
	}
	width := 1
	if c.Flags&headlessterm.CellFlagWideChar != 0 {
		width = 2
	}
	return out.WithWidth(width)
}

// toLine translates one evicted scrollback row. Wide-char spacers are
// dropped rather than encoded, matching how toCell folds them into the
// zero Cell.
func toLine(cells []headlessterm.Cell) cell.Line {
	line := make(cell.Line, 0, len(cells))
	for i := range cells {
		if cells[i].IsWideSpacer() {
			continue
		}
		line = append(line, toCell(&cells[i]))
	}
	return line
}

// translateFlags collapses the library's underline variants and blink
// speeds onto the single underline/blink bits the wire format carries; Dim,
// Hidden, and the wide-char bookkeeping bits have no equivalent in
// SPEC_FULL.md §3's six style flags and are dropped.
func translateFlags(c *headlessterm.Cell) uint32 {
	var f uint32
	if c.Flags&headlessterm.CellFlagBold != 0 {
		f |= cell.FlagBold
	}
	if c.Flags&headlessterm.CellFlagItalic != 0 {
		f |= cell.FlagItalic
	}
	const underlineBits = headlessterm.CellFlagUnderline |
		headlessterm.CellFlagDoubleUnderline |
		headlessterm.CellFlagCurlyUnderline |
		headlessterm.CellFlagDottedUnderline |
		headlessterm.CellFlagDashedUnderline
	if c.Flags&underlineBits != 0 {
		f |= cell.FlagUnderline
	}
	const blinkBits = headlessterm.CellFlagBlinkSlow | headlessterm.CellFlagBlinkFast
	if c.Flags&blinkBits != 0 {
		f |= cell.FlagBlink
	}
	if c.Flags&headlessterm.CellFlagReverse != 0 {
		f |= cell.FlagReverse
	}
	if c.Flags&headlessterm.CellFlagStrike != 0 {
		f |= cell.FlagStrike
	}
	return f
}

// resolveColor resolves a headlessterm cell color to an opaque ARGB word.
// The library keeps named/indexed colors symbolic (*NamedColor/*IndexedColor)
// rather than resolving them itself, so palette lookup still happens here;
// a concrete color.RGBA (or anything else implementing color.Color) is read
// back out via its own RGBA() conversion.
func resolveColor(c color.Color, fallback uint32) uint32 {
	if c == nil {
		return fallback
	}
	switch v := c.(type) {
	case *headlessterm.NamedColor:
		if v.Name < 0 || v.Name >= len(namedPalette) {
			return fallback
		}
		return namedPalette[v.Name]
	case *headlessterm.IndexedColor:
		return xterm256(v.Index)
	default:
		r, g, b, _ := c.RGBA()
		return cell.ARGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

// namedPalette is the standard 16-color xterm foreground/background table.
var namedPalette = [16]uint32{
	cell.ARGB(0, 0, 0), cell.ARGB(205, 0, 0), cell.ARGB(0, 205, 0), cell.ARGB(205, 205, 0),
	cell.ARGB(0, 0, 238), cell.ARGB(205, 0, 205), cell.ARGB(0, 205, 205), cell.ARGB(229, 229, 229),
	cell.ARGB(127, 127, 127), cell.ARGB(255, 0, 0), cell.ARGB(0, 255, 0), cell.ARGB(255, 255, 0),
	cell.ARGB(92, 92, 255), cell.ARGB(255, 0, 255), cell.ARGB(0, 255, 255), cell.ARGB(255, 255, 255),
}

// xterm256 resolves an xterm 256-color palette index: 0-15 are the named
// colors, 16-231 are the 6x6x6 color cube, 232-255 are the greyscale ramp.
func xterm256(idx int) uint32 {
	switch {
	case idx < 16:
		return namedPalette[idx]
	case idx < 232:
		idx -= 16
		r := cubeLevel(idx / 36)
		g := cubeLevel((idx / 6) % 6)
		b := cubeLevel(idx % 6)
		return cell.ARGB(r, g, b)
	default:
		level := uint8(8 + (idx-232)*10)
		return cell.ARGB(level, level, level)
	}
}

func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(55 + n*40)
}
