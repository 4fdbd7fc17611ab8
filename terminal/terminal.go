package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
)

// ErrNotTerminal is returned by Init when stdin is not a TTY
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Terminal provides low-level terminal access
// Output is an opaque byte stream; callers own all drawing sequences
type Terminal interface {
	io.Writer

	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions in cells
	Size() (width, height int)

	// Clear erases the screen to the default background
	Clear() error

	// PollEvent blocks until next input or resize event
	PollEvent() Event

	// PostEvent injects a synthetic event
	PostEvent(Event)
}

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend Backend

	input       *inputReader
	resizeCh    chan ResizeEvent
	syntheticCh chan Event

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on the process's stdin/stdout
func New() Terminal {
	return newTerminal(newBackend())
}

func newTerminal(b Backend) *termImpl {
	return &termImpl{
		backend:     b,
		syntheticCh: make(chan Event, 16),
		resizeCh:    make(chan ResizeEvent, 1),
	}
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.input = newInputReader(t.backend)

	t.backend.SetResizeHandler(func(w, h int) {
		// Keep only the latest size pending
		select {
		case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
			default:
			}
		}
	})

	t.backend.Write(csiAltScreenEnter)
	t.backend.Write(csiCursorHide)
	// Prevents scroll when the bottom-right cell is written
	t.backend.Write(csiAutoWrapOff)
	t.backend.Write(csiClear)

	t.input.start()

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.input != nil {
		t.input.stop()
	}

	t.backend.Write(csiSGR0)
	t.backend.Write(csiCursorShow)
	t.backend.Write(csiAltScreenExit)
	// Re-enable after leaving the alternate screen so the main buffer wraps
	t.backend.Write(csiAutoWrapOn)

	t.backend.Fini()
	t.finalized = true
}

func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

// Write sends a rendered frame to the terminal
func (t *termImpl) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return 0, io.ErrClosedPipe
	}
	if err := t.backend.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Clear erases the screen; the next frame must be drawn in full
func (t *termImpl) Clear() error {
	_, err := t.Write(clearSequence)
	return err
}

// PollEvent blocks until next input event
func (t *termImpl) PollEvent() Event {
	select {
	case ev := <-t.syntheticCh:
		return ev
	default:
	}

	select {
	case ev := <-t.syntheticCh:
		return ev
	case ev := <-t.input.events():
		return ev
	case re := <-t.resizeCh:
		return Event{Type: EventResize, Width: re.Width, Height: re.Height}
	}
}

// PostEvent injects a synthetic event
func (t *termImpl) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
		// Channel full, drop
	}
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
