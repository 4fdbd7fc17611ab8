package render

import "github.com/lixenwraith/color-cycle/core"

// Frame is everything needed to draw one frame
type Frame struct {
	Image         *core.Image
	Palette       *core.Palette
	Viewport      Viewport
	Cols, Rows    int
	ColumnReverse bool
	OSD           Overlay
}

// Rasterize fills buf with the frame's cells, resizing it to Cols×Rows
// Area outside the image is blank. The OSD is not drawn; see DrawOverlay
func Rasterize(buf *CellBuffer, f *Frame) Layout {
	if buf.Width != f.Cols || buf.Height != f.Rows {
		buf.Resize(f.Cols, f.Rows, blankCell)
	}

	img := f.Image
	v := f.Viewport
	if lim := v.Clamp(img.Width, img.Height, f.Cols, f.Rows); lim != v {
		invariantf("rasterize", "viewport %+v outside clamp %+v for %dx%d image on %dx%d terminal",
			v, lim, img.Width, img.Height, f.Cols, f.Rows)
	}

	l := ComputeLayout(img.Width, img.Height, v, f.Cols, f.Rows)
	if len(img.Pixels) != img.Width*img.Height {
		invariantf("rasterize", "%d pixels for %dx%d image", len(img.Pixels), img.Width, img.Height)
	}

	pal := f.Palette
	w := img.Width
	lastRow := v.Y + l.PixelRows - 1

	for cy := 0; cy < f.Rows; cy++ {
		row := buf.Cells[cy*f.Cols : (cy+1)*f.Cols]
		iy := cy - l.OffY
		if iy < 0 || iy >= l.Rows {
			for i := range row {
				row[i] = blankCell
			}
			continue
		}

		top := v.Y + 2*iy
		bottom := top + 1
		if bottom > lastRow {
			bottom = top
		}
		topPix := img.Pixels[top*w : top*w+w]
		bottomPix := img.Pixels[bottom*w : bottom*w+w]

		for cx := range row {
			ix := cx - l.OffX
			if ix < 0 || ix >= l.Cols {
				row[cx] = blankCell
				continue
			}
			px := v.X + ix
			if f.ColumnReverse {
				px = ReverseColumn(px, w)
			}
			row[cx] = Cell{Rune: HalfBlock, Fg: pal[topPix[px]], Bg: pal[bottomPix[px]]}
		}
	}
	return l
}

// ReverseColumn mirrors x within its 8-pixel block; a partial last block maps
// mirrored positions past the edge back to x
func ReverseColumn(x, width int) int {
	m := x ^ 7
	if m >= width {
		return x
	}
	return m
}
