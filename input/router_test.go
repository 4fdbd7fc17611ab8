package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/color-cycle/terminal"
)

func key(k terminal.Key, mod terminal.Modifier) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k, Modifiers: mod}
}

func runeEv(r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

func TestRouter_DefaultBindings(t *testing.T) {
	r := NewRouter(nil)

	tests := []struct {
		name string
		ev   terminal.Event
		want Action
	}{
		{"q", runeEv('q'), Action{Type: ActionQuit}},
		{"escape", key(terminal.KeyEscape, 0), Action{Type: ActionQuit}},
		{"ctrl-c", key(terminal.KeyCtrlC, 0), Action{Type: ActionQuit}},
		{"blend", runeEv('b'), Action{Type: ActionToggleBlend}},
		{"rewind 1m", runeEv('A'), Action{Type: ActionRewind1m}},
		{"forward 5m", runeEv('d'), Action{Type: ActionForward5m}},
		{"digit", runeEv('3'), SelectImage(3)},
		{"zero", runeEv('0'), SelectImage(0)},
		{"ctrl home", key(terminal.KeyHome, terminal.ModCtrl), Action{Type: ActionViewportTop}},
		{"end", key(terminal.KeyEnd, 0), Action{Type: ActionViewportRightEdge}},
		{"alt pgdn", key(terminal.KeyPageDown, terminal.ModAlt), Action{Type: ActionPageRight}},
		{"resize", terminal.Event{Type: terminal.EventResize, Width: 120, Height: 40}, TerminalResized(120, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Translate(tt.ev)
			if !ok || got != tt.want {
				t.Errorf("Expected %v, got %v (ok=%v)", tt.want, got, ok)
			}
		})
	}
}

func TestRouter_Unbound(t *testing.T) {
	r := NewRouter(nil)
	for _, ev := range []terminal.Event{
		runeEv('z'),
		{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'q', Modifiers: terminal.ModAlt},
		key(terminal.KeyF5, 0),
		key(terminal.KeyHome, terminal.ModShift),
	} {
		if a, ok := r.Translate(ev); ok {
			t.Errorf("Expected %+v unbound, got %v", ev, a)
		}
	}
}

func TestParseBindings_Overrides(t *testing.T) {
	over, err := ParseBindings(map[string]string{
		"x":         "quit",
		"q":         "none",
		"space":     "toggle_blend",
		"Ctrl+Down": "page_down",
		"F2":        "next_image",
	})
	if err != nil {
		t.Fatalf("ParseBindings: %v", err)
	}
	r := NewRouter(over)

	if a, _ := r.Translate(runeEv('x')); a.Type != ActionQuit {
		t.Errorf("Expected x to quit, got %v", a)
	}
	if _, ok := r.Translate(runeEv('q')); ok {
		t.Error("Expected q unbound")
	}
	if a, _ := r.Translate(runeEv(' ')); a.Type != ActionToggleBlend {
		t.Errorf("Expected space to toggle blend, got %v", a)
	}
	if a, _ := r.Translate(key(terminal.KeyDown, terminal.ModCtrl)); a.Type != ActionPageDown {
		t.Errorf("Expected Ctrl+Down page down, got %v", a)
	}
	if a, _ := r.Translate(key(terminal.KeyF2, 0)); a.Type != ActionNextImage {
		t.Errorf("Expected F2 next image, got %v", a)
	}
	// Untouched defaults survive
	if a, _ := r.Translate(runeEv('b')); a.Type != ActionToggleBlend {
		t.Errorf("Expected b to toggle blend, got %v", a)
	}
}

func TestParseBindings_Errors(t *testing.T) {
	tests := []map[string]string{
		{"x": "explode"},
		{"Hyper+Home": "quit"},
		{"Ctrl+Nope": "quit"},
	}
	for _, b := range tests {
		if _, err := ParseBindings(b); err == nil {
			t.Errorf("Expected error for %v", b)
		}
	}
}

type chanSource chan terminal.Event

func (c chanSource) PollEvent() terminal.Event {
	return <-c
}

func TestRouter_Pump(t *testing.T) {
	src := make(chanSource, 4)
	out := make(chan Action, 4)
	r := NewRouter(nil)

	src <- runeEv('z')
	src <- runeEv('b')
	src <- terminal.Event{Type: terminal.EventError, Err: errors.New("gone")}

	done := make(chan struct{})
	go func() {
		r.Pump(context.Background(), src, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Pump did not stop on input error")
	}

	if a := <-out; a.Type != ActionToggleBlend {
		t.Errorf("Expected blend first, got %v", a)
	}
	if a := <-out; a.Type != ActionQuit {
		t.Errorf("Expected quit after input error, got %v", a)
	}
}

func TestActionNames(t *testing.T) {
	for at := ActionNone + 1; at < actionCount; at++ {
		if _, ok := actionNames[at]; !ok {
			t.Errorf("ActionType %d has no name", at)
		}
	}
	if SelectImage(4).String() != "select_image(4)" {
		t.Errorf("Unexpected %q", SelectImage(4).String())
	}
}

type panickingSource struct{}

func (panickingSource) PollEvent() terminal.Event { panic("device vanished") }

// TestRouter_PumpLeavesPanicsToCaller verifies Pump does not handle crashes itself;
// the goroutine wrapper owns terminal restoration and the crash report
func TestRouter_PumpLeavesPanicsToCaller(t *testing.T) {
	var got any
	func() {
		defer func() { got = recover() }()
		NewRouter(nil).Pump(context.Background(), panickingSource{}, make(chan Action, 1))
	}()
	if got != "device vanished" {
		t.Errorf("Expected the panic to reach the caller, got %v", got)
	}
}
