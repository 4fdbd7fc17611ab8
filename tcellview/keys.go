package tcellview

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/color-cycle/terminal"
)

// namedKeys maps tcell keys with a direct counterpart; Ctrl+letter is handled by range
var namedKeys = map[tcell.Key]terminal.Key{
	tcell.KeyEscape:         terminal.KeyEscape,
	tcell.KeyEnter:          terminal.KeyEnter,
	tcell.KeyTab:            terminal.KeyTab,
	tcell.KeyBacktab:        terminal.KeyBacktab,
	tcell.KeyBackspace:      terminal.KeyBackspace,
	tcell.KeyBackspace2:     terminal.KeyBackspace,
	tcell.KeyDelete:         terminal.KeyDelete,
	tcell.KeyUp:             terminal.KeyUp,
	tcell.KeyDown:           terminal.KeyDown,
	tcell.KeyLeft:           terminal.KeyLeft,
	tcell.KeyRight:          terminal.KeyRight,
	tcell.KeyHome:           terminal.KeyHome,
	tcell.KeyEnd:            terminal.KeyEnd,
	tcell.KeyPgUp:           terminal.KeyPageUp,
	tcell.KeyPgDn:           terminal.KeyPageDown,
	tcell.KeyInsert:         terminal.KeyInsert,
	tcell.KeyCtrlSpace:      terminal.KeyCtrlSpace,
	tcell.KeyCtrlBackslash:  terminal.KeyCtrlBackslash,
	tcell.KeyCtrlRightSq:    terminal.KeyCtrlBracketRight,
	tcell.KeyCtrlCarat:      terminal.KeyCtrlCaret,
	tcell.KeyCtrlUnderscore: terminal.KeyCtrlUnderscore,
}

// convertKey produces the event the native input parser would for the same keystroke
// Ctrl+letter carries no modifier and printable runes carry no Shift
func convertKey(k tcell.Key, r rune, mod tcell.ModMask) terminal.Event {
	ev := terminal.Event{Type: terminal.EventKey, Modifiers: convertMod(mod)}

	switch {
	case k == tcell.KeyRune:
		if ev.Modifiers&terminal.ModCtrl != 0 && unicode.IsLetter(r) && r < unicode.MaxASCII {
			ev.Key = terminal.KeyCtrlA + terminal.Key(unicode.ToUpper(r)-'A')
			ev.Modifiers &^= terminal.ModCtrl | terminal.ModShift
			return ev
		}
		ev.Key = terminal.KeyRune
		ev.Rune = r
		ev.Modifiers &^= terminal.ModShift
		return ev

	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		ev.Key = terminal.KeyF1 + terminal.Key(k-tcell.KeyF1)
		return ev
	}

	if tk, ok := namedKeys[k]; ok {
		ev.Key = tk
		if tk >= terminal.KeyCtrlSpace {
			ev.Modifiers &^= terminal.ModCtrl
		}
		return ev
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		ev.Key = terminal.KeyCtrlA + terminal.Key(k-tcell.KeyCtrlA)
		ev.Modifiers &^= terminal.ModCtrl
		return ev
	}

	ev.Key = terminal.KeyNone
	return ev
}

func convertMod(mod tcell.ModMask) terminal.Modifier {
	var m terminal.Modifier
	if mod&tcell.ModShift != 0 {
		m |= terminal.ModShift
	}
	if mod&(tcell.ModAlt|tcell.ModMeta) != 0 {
		m |= terminal.ModAlt
	}
	if mod&tcell.ModCtrl != 0 {
		m |= terminal.ModCtrl
	}
	return m
}
