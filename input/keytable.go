package input

import "github.com/lixenwraith/color-cycle/terminal"

// Chord is a special key with its modifiers
type Chord struct {
	Key terminal.Key
	Mod terminal.Modifier
}

// KeyTable maps key events to actions
type KeyTable struct {
	// Special keys (arrows, navigation, Ctrl+*)
	Keys map[Chord]ActionType

	// Unmodified printable runes; digits not bound here select images
	Runes map[rune]ActionType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[Chord]ActionType{
			{terminal.KeyEscape, terminal.ModNone}: ActionQuit,
			{terminal.KeyCtrlC, terminal.ModNone}:  ActionQuit,

			{terminal.KeyUp, terminal.ModNone}:    ActionMoveUp,
			{terminal.KeyDown, terminal.ModNone}:  ActionMoveDown,
			{terminal.KeyLeft, terminal.ModNone}:  ActionMoveLeft,
			{terminal.KeyRight, terminal.ModNone}: ActionMoveRight,

			{terminal.KeyHome, terminal.ModNone}: ActionViewportLeftEdge,
			{terminal.KeyEnd, terminal.ModNone}:  ActionViewportRightEdge,
			{terminal.KeyHome, terminal.ModCtrl}: ActionViewportTop,
			{terminal.KeyEnd, terminal.ModCtrl}:  ActionViewportBottom,

			{terminal.KeyPageUp, terminal.ModNone}:   ActionPageUp,
			{terminal.KeyPageDown, terminal.ModNone}: ActionPageDown,
			{terminal.KeyPageUp, terminal.ModAlt}:    ActionPageLeft,
			{terminal.KeyPageDown, terminal.ModAlt}:  ActionPageRight,
		},

		Runes: map[rune]ActionType{
			'q': ActionQuit,
			'Q': ActionQuit,
			'b': ActionToggleBlend,
			'o': ActionToggleOsd,
			'w': ActionToggleFastForward,
			'i': ActionToggleColumnReverse,
			'n': ActionNextImage,
			'p': ActionPrevImage,
			'+': ActionFpsUp,
			'-': ActionFpsDown,
			'a': ActionRewind5m,
			'A': ActionRewind1m,
			'd': ActionForward5m,
			'D': ActionForward1m,
			's': ActionResumeNow,
		},
	}
}

// Merge applies overrides from other; ActionNone unbinds a key
func (kt *KeyTable) Merge(other *KeyTable) {
	if other == nil {
		return
	}
	for k, a := range other.Keys {
		if a == ActionNone {
			delete(kt.Keys, k)
			continue
		}
		kt.Keys[k] = a
	}
	for r, a := range other.Runes {
		if a == ActionNone {
			delete(kt.Runes, r)
			continue
		}
		kt.Runes[r] = a
	}
}

// Lookup translates one terminal event into an action
func (kt *KeyTable) Lookup(ev terminal.Event) (Action, bool) {
	switch ev.Type {
	case terminal.EventResize:
		return TerminalResized(ev.Width, ev.Height), true
	case terminal.EventKey:
	default:
		return Action{}, false
	}

	if ev.Key == terminal.KeyRune {
		if ev.Modifiers != terminal.ModNone {
			return Action{}, false
		}
		if t, ok := kt.Runes[ev.Rune]; ok {
			return Action{Type: t}, true
		}
		if ev.Rune >= '0' && ev.Rune <= '9' {
			return SelectImage(int(ev.Rune - '0')), true
		}
		return Action{}, false
	}

	if t, ok := kt.Keys[Chord{ev.Key, ev.Modifiers}]; ok {
		return Action{Type: t}, true
	}
	return Action{}, false
}
