package terminal

import (
	"strconv"
	"strings"
)

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter, contiguous so that KeyCtrlA+n is Ctrl+('A'+n)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// Modifier flags, bit layout matches xterm's modifier parameter minus one
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

var keyNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBacktab:   "Shift+Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyInsert:    "Insert",
}

// String returns a short display name, used by hotkey help and debug logging
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k >= KeyF1 && k <= KeyF12:
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	case k >= KeyCtrlA && k <= KeyCtrlZ:
		return "Ctrl+" + string(rune('A'+k-KeyCtrlA))
	case k == KeyRune:
		return "Rune"
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// String renders the modifier prefix, e.g. "Ctrl+Alt+"
func (m Modifier) String() string {
	var s string
	if m&ModCtrl != 0 {
		s += "Ctrl+"
	}
	if m&ModAlt != 0 {
		s += "Alt+"
	}
	if m&ModShift != 0 {
		s += "Shift+"
	}
	return s
}

// escapeSequence maps the bytes following the CSI or SS3 introducer to a key
type escapeSequence struct {
	key Key
	mod Modifier
}

// Final-letter CSI keys: ESC [ X, modified as ESC [ 1 ; m X
var csiLetterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// Tilde CSI keys: ESC [ N ~, modified as ESC [ N ; m ~
var csiTildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'M': KeyEnter, // Keypad Enter
}

var csiMap = buildCSIMap()

// buildCSIMap expands the base tables with every xterm modifier parameter (2..8)
func buildCSIMap() map[string]escapeSequence {
	m := make(map[string]escapeSequence, 256)

	for final, key := range csiLetterKeys {
		m[string(final)] = escapeSequence{key, ModNone}
		for p := 2; p <= 8; p++ {
			m["1;"+strconv.Itoa(p)+string(final)] = escapeSequence{key, Modifier(p - 1)}
		}
	}
	for code, key := range csiTildeKeys {
		n := strconv.Itoa(code)
		m[n+"~"] = escapeSequence{key, ModNone}
		for p := 2; p <= 8; p++ {
			m[n+";"+strconv.Itoa(p)+"~"] = escapeSequence{key, Modifier(p - 1)}
		}
	}

	m["Z"] = escapeSequence{KeyBacktab, ModShift}

	// Linux console function keys
	m["[A"] = escapeSequence{KeyF1, ModNone}
	m["[B"] = escapeSequence{KeyF2, ModNone}
	m["[C"] = escapeSequence{KeyF3, ModNone}
	m["[D"] = escapeSequence{KeyF4, ModNone}
	m["[E"] = escapeSequence{KeyF5, ModNone}

	return m
}

// lookupCSI performs zero-alloc map lookup via compiler optimization
// The string([]byte) conversion inline in map access does not allocate
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

func lookupSS3(b byte) (Key, Modifier, bool) {
	if k, ok := ss3Keys[b]; ok {
		return k, ModNone, true
	}
	return KeyNone, ModNone, false
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames)+40)
	for k, name := range keyNames {
		m[strings.ToLower(name)] = k
	}
	m["escape"] = KeyEscape
	m["pageup"] = KeyPageUp
	m["pagedown"] = KeyPageDown
	for k := KeyF1; k <= KeyF12; k++ {
		m[strings.ToLower(k.String())] = k
	}
	for k := KeyCtrlA; k <= KeyCtrlZ; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// KeyByName resolves a case-insensitive key name such as "PgUp", "F5" or "Ctrl+C"
func KeyByName(name string) (Key, bool) {
	k, ok := keysByName[strings.ToLower(name)]
	return k, ok
}
