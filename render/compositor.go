package render

import (
	"bytes"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/color-cycle/core"
)

// Compositor diffs each rasterized frame against what is on screen and encodes
// only the changed cells
type Compositor struct {
	back  CellBuffer
	front CellBuffer // Cells as last emitted; Rune 0 means unknown
	out   bytes.Buffer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    core.RGB
	lastBg    core.RGB
	lastValid bool

	changed int
}

// NewCompositor creates a compositor with an empty screen model
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Render rasterizes f and returns the bytes that bring the screen up to date
// The returned slice is valid until the next call. A frame identical to the
// previous one without an overlay yields no output
func (c *Compositor) Render(f *Frame) []byte {
	c.out.Reset()
	c.changed = 0

	if f.Cols <= 0 || f.Rows <= 0 {
		return nil
	}
	if c.front.Width != f.Cols || c.front.Height != f.Rows {
		c.front.Resize(f.Cols, f.Rows, Cell{})
		c.lastValid = false
		c.cursorValid = false
	}

	Rasterize(&c.back, f)
	ox0, ox1 := DrawOverlay(&c.back, f.OSD)

	c.emit()

	// Overlay cells no longer reflect the animation; redraw them next frame
	if ox1 > ox0 {
		row := c.front.Cells[(f.Rows-1)*f.Cols:]
		for x := ox0; x < ox1; x++ {
			row[x] = Cell{}
		}
	}

	if c.out.Len() > 0 {
		c.out.Write(csiSGR0)
		c.lastValid = false
	}
	return c.out.Bytes()
}

// Changed returns the number of cells emitted by the last Render
func (c *Compositor) Changed() int {
	return c.changed
}

// Invalidate forgets the screen state so the next frame is drawn in full
// Call after anything else has written to or cleared the terminal
func (c *Compositor) Invalidate() {
	c.front.Fill(Cell{})
	c.lastValid = false
	c.cursorValid = false
}

// emit writes every back cell that differs from front, updating front
func (c *Compositor) emit() {
	w := &c.out
	width, height := c.back.Width, c.back.Height

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if c.back.Cells[idx] == c.front.Cells[idx] {
				x++
				continue
			}

			// Position cursor once for this dirty run
			if !c.cursorValid || x != c.cursorX || y != c.cursorY {
				if c.cursorValid && y == c.cursorY && x > c.cursorX {
					writeCursorForward(w, x-c.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				c.cursorX = x
				c.cursorY = y
				c.cursorValid = true
			}

			// Write all contiguous dirty cells, emitting color only when changed
			for x < width {
				cidx := rowStart + x
				cell := c.back.Cells[cidx]
				if cell == c.front.Cells[cidx] {
					break
				}

				c.front.Cells[cidx] = cell
				x++
				if cell.Rune == WideTail {
					// Already covered by the preceding wide glyph
					continue
				}

				fgChanged := !c.lastValid || cell.Fg != c.lastFg
				bgChanged := !c.lastValid || cell.Bg != c.lastBg
				writeSGR(w, cell.Fg, cell.Bg, fgChanged, bgChanged)
				c.lastFg = cell.Fg
				c.lastBg = cell.Bg
				c.lastValid = true

				switch {
				case cell.Rune < 0x80:
					w.WriteByte(byte(cell.Rune))
					c.cursorX++
				case cell.Rune == HalfBlock:
					w.WriteRune(cell.Rune)
					c.cursorX++
				default:
					w.WriteRune(cell.Rune)
					c.cursorX += max(1, runewidth.RuneWidth(cell.Rune))
				}
				c.changed++
			}
		}
	}
}
