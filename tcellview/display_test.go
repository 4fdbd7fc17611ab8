package tcellview

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/color-cycle/core"
	"github.com/lixenwraith/color-cycle/render"
	"github.com/lixenwraith/color-cycle/terminal"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want terminal.Event
	}{
		{"rune", tcell.KeyRune, 'b', tcell.ModNone, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'b'}},
		{"shifted rune", tcell.KeyRune, 'A', tcell.ModShift, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'A'}},
		{"alt rune", tcell.KeyRune, 'x', tcell.ModAlt, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'x', Modifiers: terminal.ModAlt}},
		{"ctrl c", tcell.KeyCtrlC, 0, tcell.ModCtrl, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyCtrlC}},
		{"ctrl rune", tcell.KeyRune, 'c', tcell.ModCtrl, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyCtrlC}},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyEscape}},
		{"ctrl home", tcell.KeyHome, 0, tcell.ModCtrl, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyHome, Modifiers: terminal.ModCtrl}},
		{"alt pgdn", tcell.KeyPgDn, 0, tcell.ModAlt, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyPageDown, Modifiers: terminal.ModAlt}},
		{"meta pgup", tcell.KeyPgUp, 0, tcell.ModMeta, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyPageUp, Modifiers: terminal.ModAlt}},
		{"f5", tcell.KeyF5, 0, tcell.ModNone, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyF5}},
		{"backspace2", tcell.KeyBackspace2, 0, tcell.ModNone, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyBackspace}},
	}

	for _, tt := range tests {
		if got := convertKey(tt.key, tt.r, tt.mod); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func newSimDisplay(t *testing.T, w, h int) (*Display, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	return NewWithScreen(s), s
}

func testFrame(w, h, cols, rows int) *render.Frame {
	img := &core.Image{Width: w, Height: h, Pixels: make([]uint8, w*h)}
	for i := range img.Pixels {
		img.Pixels[i] = uint8(i)
	}
	var pal core.Palette
	for i := range pal {
		pal[i] = core.Gray(uint8(i))
	}
	return &render.Frame{Image: img, Palette: &pal, Cols: cols, Rows: rows}
}

func TestDisplay_DrawsHalfBlocksAndOverlay(t *testing.T) {
	d, s := newSimDisplay(t, 6, 3)
	defer d.Fini()

	if w, h := d.Size(); w != 6 || h != 3 {
		t.Fatalf("Expected 6x3, got %dx%d", w, h)
	}

	f := testFrame(6, 6, 6, 3)
	f.OSD = render.Overlay{Text: "hi", Fg: core.RGBWhite, Bg: core.RGBBlack}
	if err := d.Draw(f); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if d.Changed() != 18 {
		t.Errorf("Expected 18 cells on the first frame, got %d", d.Changed())
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 6; x++ {
			if r, _, _, _ := s.GetContent(x, y); r != render.HalfBlock {
				t.Errorf("Cell (%d,%d): expected half block, got %q", x, y, r)
			}
		}
	}
	if r, _, _, _ := s.GetContent(2, 2); r != 'h' {
		t.Errorf("Expected overlay 'h' at (2,2), got %q", r)
	}
	if r, _, _, _ := s.GetContent(3, 2); r != 'i' {
		t.Errorf("Expected overlay 'i' at (3,2), got %q", r)
	}

	// Without the overlay the bottom row returns to the animation
	f.OSD = render.Overlay{}
	if err := d.Draw(f); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if r, _, _, _ := s.GetContent(2, 2); r != render.HalfBlock {
		t.Errorf("Expected overlay cell restored, got %q", r)
	}
	if d.Changed() != 2 {
		t.Errorf("Expected only the 2 overlay cells redrawn, got %d", d.Changed())
	}
}

// nextOf polls until an event of type want arrives, skipping startup resizes
func nextOf(t *testing.T, d *Display, want terminal.EventType) terminal.Event {
	t.Helper()
	for i := 0; i < 8; i++ {
		if ev := d.PollEvent(); ev.Type == want {
			return ev
		}
	}
	t.Fatalf("No event of type %v", want)
	return terminal.Event{}
}

func TestDisplay_PollEvent(t *testing.T) {
	d, s := newSimDisplay(t, 10, 5)

	s.InjectKey(tcell.KeyRune, 'o', tcell.ModNone)
	ev := nextOf(t, d, terminal.EventKey)
	if ev.Key != terminal.KeyRune || ev.Rune != 'o' {
		t.Errorf("Expected rune o, got %+v", ev)
	}

	d.Fini()
	nextOf(t, d, terminal.EventClosed)
}
