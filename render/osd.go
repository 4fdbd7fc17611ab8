package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/color-cycle/core"
)

// Overlay is an on-screen message drawn centered on the bottom row
type Overlay struct {
	Text string
	Fg   core.RGB
	Bg   core.RGB
}

// WideTail marks the second cell of a double-width rune; it is never drawn itself
const WideTail rune = -1

// DrawOverlay draws o over buf and returns the covered columns [x0, x1) of the bottom row
// Text wider than the buffer is truncated
func DrawOverlay(buf *CellBuffer, o Overlay) (x0, x1 int) {
	if o.Text == "" || buf.Width == 0 || buf.Height == 0 {
		return 0, 0
	}

	text := runewidth.Truncate(o.Text, buf.Width, "")
	x0 = (buf.Width - runewidth.StringWidth(text)) / 2
	row := buf.Cells[(buf.Height-1)*buf.Width:]

	x := x0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		row[x] = Cell{Rune: r, Fg: o.Fg, Bg: o.Bg}
		if rw == 2 {
			row[x+1] = Cell{Rune: WideTail, Fg: o.Fg, Bg: o.Bg}
		}
		x += rw
	}
	return x0, x
}
