package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/color-cycle/terminal"
)

// Rune aliases for keys that are awkward as bare config keys
var runeAliases = map[string]rune{
	"space": ' ',
	"plus":  '+',
	"minus": '-',
}

var modifierNames = map[string]terminal.Modifier{
	"ctrl":  terminal.ModCtrl,
	"alt":   terminal.ModAlt,
	"shift": terminal.ModShift,
}

// ParseBindings builds a sparse override table from key spec → action name pairs
// Key specs are a single character, a rune alias, or [Mod+]...KeyName ("Ctrl+Home", "PgDn")
// Returns error on unknown action names or invalid key specs
func ParseBindings(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		Keys:  make(map[Chord]ActionType),
		Runes: make(map[rune]ActionType),
	}

	for spec, name := range bindings {
		action, ok := ActionByName(name)
		if !ok {
			return nil, fmt.Errorf("key %q: unknown action %q", spec, name)
		}

		if r, ok := resolveRune(spec); ok {
			kt.Runes[r] = action
			continue
		}

		chord, err := resolveChord(spec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", spec, err)
		}
		kt.Keys[chord] = action
	}

	return kt, nil
}

// resolveRune accepts a single character or a rune alias
func resolveRune(spec string) (rune, bool) {
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return r, true
	}
	r, ok := runeAliases[strings.ToLower(spec)]
	return r, ok
}

// resolveChord parses "Mod+Mod+Key"; a bare Ctrl+letter resolves to the control key
func resolveChord(spec string) (Chord, error) {
	if k, ok := terminal.KeyByName(spec); ok {
		return Chord{Key: k}, nil
	}

	parts := strings.Split(spec, "+")
	var mod terminal.Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Chord{}, fmt.Errorf("unknown modifier %q", p)
		}
		mod |= m
	}

	last := strings.TrimSpace(parts[len(parts)-1])
	k, ok := terminal.KeyByName(last)
	if !ok {
		return Chord{}, fmt.Errorf("unknown key name %q", last)
	}
	return Chord{Key: k, Mod: mod}, nil
}
