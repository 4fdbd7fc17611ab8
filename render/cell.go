package render

import "github.com/lixenwraith/color-cycle/core"

// HalfBlock is the glyph used for every image cell
const HalfBlock = '▀'

// Cell is one terminal cell
// Rune 0 marks a cell whose on-screen state is unknown and must be re-emitted
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
}

// blankCell fills area outside the image
var blankCell = Cell{Rune: ' ', Fg: core.RGBBlack, Bg: core.RGBBlack}

// CellBuffer is a row-major grid of cells
type CellBuffer struct {
	Cells  []Cell
	Width  int
	Height int
}

// Resize adjusts buffer dimensions, reallocating only if capacity is insufficient
// Contents are reset to c
func (b *CellBuffer) Resize(width, height int, c Cell) {
	size := width * height
	if cap(b.Cells) < size {
		b.Cells = make([]Cell, size)
	} else {
		b.Cells = b.Cells[:size]
	}
	b.Width = width
	b.Height = height
	b.Fill(c)
}

// Fill sets every cell to c using exponential copy
func (b *CellBuffer) Fill(c Cell) {
	if len(b.Cells) == 0 {
		return
	}
	b.Cells[0] = c
	for filled := 1; filled < len(b.Cells); filled *= 2 {
		copy(b.Cells[filled:], b.Cells[:filled])
	}
}

// At returns the cell at (x, y)
func (b *CellBuffer) At(x, y int) Cell {
	return b.Cells[y*b.Width+x]
}
