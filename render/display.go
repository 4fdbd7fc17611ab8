package render

import "io"

// TerminalDisplay writes compositor output to a raw ANSI terminal
type TerminalDisplay struct {
	w    io.Writer
	comp *Compositor
}

// NewTerminalDisplay draws frames to w, which must accept VT escape sequences
func NewTerminalDisplay(w io.Writer) *TerminalDisplay {
	return &TerminalDisplay{w: w, comp: NewCompositor()}
}

// Draw writes the cells that changed since the previous frame
// After a failed write the screen state is unknown and the next frame is drawn in full
func (d *TerminalDisplay) Draw(f *Frame) error {
	out := d.comp.Render(f)
	if len(out) == 0 {
		return nil
	}
	if _, err := d.w.Write(out); err != nil {
		d.comp.Invalidate()
		return err
	}
	return nil
}

// Invalidate forces a full redraw on the next frame
func (d *TerminalDisplay) Invalidate() {
	d.comp.Invalidate()
}

// Changed returns the number of cells written by the last Draw
func (d *TerminalDisplay) Changed() int {
	return d.comp.Changed()
}
