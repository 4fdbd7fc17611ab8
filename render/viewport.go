package render

// Viewport is the top-left image pixel shown at the top-left of the image area
type Viewport struct {
	X, Y int
}

// Clamp keeps the visible rectangle within the image
// x ∈ [0, max(0, imgW-cols)], y ∈ [0, max(0, imgH-2*rows)]
func (v Viewport) Clamp(imgW, imgH, cols, rows int) Viewport {
	v.X = clamp(v.X, 0, max(0, imgW-cols))
	v.Y = clamp(v.Y, 0, max(0, imgH-rows*2))
	return v
}

// Centered returns the viewport showing the middle of the image
func Centered(imgW, imgH, cols, rows int) Viewport {
	return Viewport{X: (imgW - cols) / 2, Y: (imgH - rows*2) / 2}.Clamp(imgW, imgH, cols, rows)
}

// Layout places the visible part of the image on screen
type Layout struct {
	OffX, OffY int // First terminal cell covered by the image
	Cols, Rows int // Terminal cells covered by the image
	PixelRows  int // Visible image rows; odd when the last cell row repeats its top pixel
}

// ComputeLayout centers the visible image region in a cols×rows terminal
func ComputeLayout(imgW, imgH int, v Viewport, cols, rows int) Layout {
	var l Layout
	l.Cols = min(imgW-v.X, cols)
	l.PixelRows = min(imgH-v.Y, rows*2)
	l.Rows = (l.PixelRows + 1) / 2
	l.OffX = (cols - l.Cols) / 2
	l.OffY = (rows - l.Rows) / 2
	return l
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
