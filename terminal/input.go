package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventError  // Read error
	EventClosed // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int   // For EventResize
	Height    int   // For EventResize
	Err       error // For EventError
}

// inputReader turns the raw byte stream from the backend into key events
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly so partial sequences survive read boundaries
	buf []byte
}

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

// start begins reading input in a goroutine
func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

// stop signals the reader to stop
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Don't block forever if read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
	}
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	var escSince time.Time
	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			r.sendEvent(Event{Type: EventError, Err: err})
			return
		}

		if len(data) == 0 {
			select {
			case <-r.stopCh:
				r.sendEvent(Event{Type: EventClosed})
				return
			default:
			}
			// Poll timeout: a lone pending ESC older than escapeTimeout is the Escape key
			if len(r.buf) == 1 && r.buf[0] == 0x1b && time.Since(escSince) >= escapeTimeout {
				r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
				r.buf = r.buf[:0]
			}
			continue
		}

		r.buf = append(r.buf, data...)
		consumed := r.parseInput(r.buf)
		if consumed >= len(r.buf) {
			r.buf = r.buf[:0]
		} else if consumed > 0 {
			copy(r.buf, r.buf[consumed:])
			r.buf = r.buf[:len(r.buf)-consumed]
		}
		if len(r.buf) == 1 && r.buf[0] == 0x1b {
			escSince = time.Now()
		}
	}
}

// parseInput parses raw bytes into events and returns bytes consumed (stops on incomplete sequence)
func (r *inputReader) parseInput(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b >= 0x20 && b < 0x7f:
			r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++

		case b == 0x1b:
			if i+1 >= n {
				return i
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			// Unknown sequences are swallowed
			if ev.Key != KeyNone {
				r.sendEvent(ev)
			}
			i += consumed

		case b < 0x20:
			r.sendEvent(parseControl(b))
			i++

		case b == 0x7f:
			r.sendEvent(Event{Type: EventKey, Key: KeyBackspace})
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			rn, size := utf8.DecodeRune(data[i:])
			if rn != utf8.RuneError {
				r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rn})
			}
			i += size
		}
	}
	return i
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	switch c := data[1]; {
	case c == 0x1b:
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	case c == '[':
		return parseCSI(data)
	case c == 'O':
		if len(data) < 3 {
			return 0, Event{}
		}
		key, mod, _ := lookupSS3(data[2])
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	case c < 0x20:
		ev := parseControl(c)
		ev.Modifiers |= ModAlt
		return 2, ev
	case c < 0x7f:
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(c), Modifiers: ModAlt}
	}
	// ESC followed by a non-ASCII byte: deliver the Escape alone
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// parseCSI parses ESC [ params final without allocation
func parseCSI(data []byte) (int, Event) {
	const maxScan = 16

	// Linux console F1-F5: ESC [ [ X
	if len(data) >= 3 && data[2] == '[' {
		if len(data) < 4 {
			return 0, Event{}
		}
		key, mod, _ := lookupCSI(data[2:4])
		return 4, Event{Type: EventKey, Key: key, Modifiers: mod}
	}

	for end := 2; end < len(data) && end < maxScan; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			key, mod, _ := lookupCSI(data[2 : end+1])
			return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, drop the introducer
			return 2, Event{}
		}
	}

	if len(data) >= maxScan {
		// Overlong parameter run, drop the introducer
		return 2, Event{}
	}
	return 0, Event{}
}

// parseControl maps C0 control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x00:
		return Event{Type: EventKey, Key: KeyCtrlSpace}
	case 0x08:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	case 0x1c:
		return Event{Type: EventKey, Key: KeyCtrlBackslash}
	case 0x1d:
		return Event{Type: EventKey, Key: KeyCtrlBracketRight}
	case 0x1e:
		return Event{Type: EventKey, Key: KeyCtrlCaret}
	case 0x1f:
		return Event{Type: EventKey, Key: KeyCtrlUnderscore}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: KeyCtrlA + Key(b-0x01)}
	}
	return Event{Type: EventKey, Key: KeyNone}
}

// sendEvent sends an event to the channel, non-blocking
func (r *inputReader) sendEvent(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop
	}
}
