// Package tcellview is the tcell display and input backend.
//
// It renders the same rasterized cells as the native terminal backend through
// tcell.Screen, and converts tcell events into terminal.Event so key bindings
// are shared.
package tcellview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/color-cycle/core"
	"github.com/lixenwraith/color-cycle/render"
	"github.com/lixenwraith/color-cycle/terminal"
)

// Display draws frames to a tcell screen
type Display struct {
	screen tcell.Screen
	back   render.CellBuffer
	front  render.CellBuffer

	changed int
}

// New creates and initializes a screen on the controlling terminal
func New() (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an initialized screen
func NewWithScreen(screen tcell.Screen) *Display {
	screen.HideCursor()
	screen.Clear()
	return &Display{screen: screen}
}

// Size returns the screen size in cells
func (d *Display) Size() (int, int) {
	return d.screen.Size()
}

// Fini restores the terminal
func (d *Display) Fini() {
	d.screen.Fini()
}

// Draw paints the cells that changed since the previous frame and shows them
func (d *Display) Draw(f *render.Frame) error {
	render.Rasterize(&d.back, f)
	x0, x1 := render.DrawOverlay(&d.back, f.OSD)

	if d.front.Width != f.Cols || d.front.Height != f.Rows {
		d.front.Resize(f.Cols, f.Rows, render.Cell{})
		d.screen.Clear()
	}

	d.changed = 0
	for i, cell := range d.back.Cells {
		if cell == d.front.Cells[i] {
			continue
		}
		d.front.Cells[i] = cell
		if cell.Rune == render.WideTail {
			continue
		}
		style := tcell.StyleDefault.Foreground(rgb(cell.Fg)).Background(rgb(cell.Bg))
		d.screen.SetContent(i%f.Cols, i/f.Cols, cell.Rune, nil, style)
		d.changed++
	}

	if x1 > x0 {
		row := d.front.Cells[(f.Rows-1)*f.Cols:]
		for x := x0; x < x1; x++ {
			row[x] = render.Cell{}
		}
	}

	d.screen.Show()
	return nil
}

// Changed returns the number of cells set by the last Draw
func (d *Display) Changed() int {
	return d.changed
}

// PollEvent blocks for the next event; a finalized screen reports EventClosed
func (d *Display) PollEvent() terminal.Event {
	for {
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			return terminal.Event{Type: terminal.EventClosed}
		case *tcell.EventKey:
			return convertKey(ev.Key(), ev.Rune(), ev.Modifiers())
		case *tcell.EventResize:
			w, h := ev.Size()
			return terminal.Event{Type: terminal.EventResize, Width: w, Height: h}
		case *tcell.EventError:
			return terminal.Event{Type: terminal.EventError, Err: ev}
		}
	}
}

func rgb(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
