package terminal

import (
	"testing"
	"time"
)

func drain(r *inputReader) []Event {
	var out []Event
	for {
		select {
		case ev := <-r.eventCh:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestParseInput_Keys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		key  Key
		r    rune
		mod  Modifier
	}{
		{"rune", "q", KeyRune, 'q', ModNone},
		{"digit", "7", KeyRune, '7', ModNone},
		{"utf8", "é", KeyRune, 'é', ModNone},
		{"ctrl-c", "\x03", KeyCtrlC, 0, ModNone},
		{"enter", "\r", KeyEnter, 0, ModNone},
		{"backspace", "\x7f", KeyBackspace, 0, ModNone},
		{"up", "\x1b[A", KeyUp, 0, ModNone},
		{"ss3 left", "\x1bOD", KeyLeft, 0, ModNone},
		{"home tilde", "\x1b[1~", KeyHome, 0, ModNone},
		{"end letter", "\x1b[F", KeyEnd, 0, ModNone},
		{"page up", "\x1b[5~", KeyPageUp, 0, ModNone},
		{"alt page down", "\x1b[6;3~", KeyPageDown, 0, ModAlt},
		{"ctrl home", "\x1b[1;5H", KeyHome, 0, ModCtrl},
		{"ctrl end", "\x1b[1;5F", KeyEnd, 0, ModCtrl},
		{"shift alt ctrl right", "\x1b[1;8C", KeyRight, 0, ModShift | ModAlt | ModCtrl},
		{"f5", "\x1b[15~", KeyF5, 0, ModNone},
		{"console f1", "\x1b[[A", KeyF1, 0, ModNone},
		{"alt rune", "\x1ba", KeyRune, 'a', ModAlt},
		{"alt escape", "\x1b\x1b", KeyEscape, 0, ModAlt},
		{"backtab", "\x1b[Z", KeyBacktab, 0, ModShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newInputReader(nil)
			consumed := r.parseInput([]byte(tt.in))
			if consumed != len(tt.in) {
				t.Fatalf("Expected %d bytes consumed, got %d", len(tt.in), consumed)
			}
			evs := drain(r)
			if len(evs) != 1 {
				t.Fatalf("Expected 1 event, got %d: %+v", len(evs), evs)
			}
			ev := evs[0]
			if ev.Type != EventKey || ev.Key != tt.key || ev.Rune != tt.r || ev.Modifiers != tt.mod {
				t.Errorf("Expected key=%v rune=%q mod=%v, got key=%v rune=%q mod=%v",
					tt.key, tt.r, tt.mod, ev.Key, ev.Rune, ev.Modifiers)
			}
		})
	}
}

func TestParseInput_PartialSequence(t *testing.T) {
	r := newInputReader(nil)

	data := []byte("x\x1b[1;")
	consumed := r.parseInput(data)
	if consumed != 1 {
		t.Fatalf("Expected only the rune consumed, got %d", consumed)
	}
	if evs := drain(r); len(evs) != 1 || evs[0].Rune != 'x' {
		t.Fatalf("Expected rune x, got %+v", evs)
	}

	rest := append(data[consumed:], []byte("5A")...)
	if consumed := r.parseInput(rest); consumed != len(rest) {
		t.Fatalf("Expected completed sequence consumed, got %d of %d", consumed, len(rest))
	}
	evs := drain(r)
	if len(evs) != 1 || evs[0].Key != KeyUp || evs[0].Modifiers != ModCtrl {
		t.Fatalf("Expected Ctrl+Up, got %+v", evs)
	}
}

func TestParseInput_LoneEscapeWaits(t *testing.T) {
	r := newInputReader(nil)
	if consumed := r.parseInput([]byte{0x1b}); consumed != 0 {
		t.Fatalf("Expected lone ESC held back, consumed %d", consumed)
	}
	if evs := drain(r); len(evs) != 0 {
		t.Fatalf("Expected no events, got %+v", evs)
	}
}

func TestParseInput_UnknownSequenceSwallowed(t *testing.T) {
	r := newInputReader(nil)
	in := []byte("\x1b[99zq")
	if consumed := r.parseInput(in); consumed != len(in) {
		t.Fatalf("Expected all consumed, got %d", consumed)
	}
	evs := drain(r)
	if len(evs) != 1 || evs[0].Rune != 'q' {
		t.Fatalf("Expected only q, got %+v", evs)
	}
}

// scriptBackend replays canned reads, then reports poll timeouts
type scriptBackend struct {
	reads [][]byte
}

func (b *scriptBackend) Init() error { return nil }

func (b *scriptBackend) Fini() {}

func (b *scriptBackend) Size() (int, int) { return 80, 24 }

func (b *scriptBackend) Write(p []byte) error { return nil }

func (b *scriptBackend) SetResizeHandler(func(w, h int)) {}

func (b *scriptBackend) Read(stop <-chan struct{}) ([]byte, error) {
	select {
	case <-stop:
		return nil, nil
	default:
	}
	if len(b.reads) > 0 {
		d := b.reads[0]
		b.reads = b.reads[1:]
		return d, nil
	}
	time.Sleep(5 * time.Millisecond)
	return nil, nil
}

func TestReadLoop_EscapeTimeout(t *testing.T) {
	r := newInputReader(&scriptBackend{reads: [][]byte{{0x1b}}})
	r.start()
	defer r.stop()

	select {
	case ev := <-r.events():
		if ev.Key != KeyEscape || ev.Modifiers != ModNone {
			t.Fatalf("Expected plain Escape, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for Escape")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyPageUp, "PgUp"},
		{KeyF10, "F10"},
		{KeyCtrlC, "Ctrl+C"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
	if got := (ModCtrl | ModAlt).String(); got != "Ctrl+Alt+" {
		t.Errorf("Expected Ctrl+Alt+, got %q", got)
	}
}
