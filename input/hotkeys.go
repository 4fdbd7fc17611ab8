package input

import "strconv"

// Hotkey is one row of the hotkey help
type Hotkey struct {
	Keys        string
	Description string
}

// Hotkeys lists the default bindings in display order
func Hotkeys(fastForward float64) []Hotkey {
	return []Hotkey{
		{"B", "Toggle blend mode"},
		{"Q or Escape", "Quit program"},
		{"O", "Toggle On Screen Display"},
		{"N", "Open next file"},
		{"P", "Open previous file"},
		{"1 to 9", "Open file by index"},
		{"0", "Open last file"},
		{"+", "Increase frames per second by 1"},
		{"-", "Decrease frames per second by 1"},
		{"W", "Toggle fast forward (" + strconv.FormatFloat(fastForward, 'f', -1, 64) + "x speed)"},
		{"A", "Go back in time by 5 minutes"},
		{"Shift+A", "Go back in time by 1 minute"},
		{"D", "Go forward in time by 5 minutes"},
		{"Shift+D", "Go forward in time by 1 minute"},
		{"S", "Go to current time and continue normal progression"},
		{"I", "Reverse pixels in columns of 8"},
		{"Cursor Up", "Move view-port up by 1 pixel"},
		{"Cursor Down", "Move view-port down by 1 pixel"},
		{"Cursor Left", "Move view-port left by 1 pixel"},
		{"Cursor Right", "Move view-port right by 1 pixel"},
		{"Home", "Move view-port to left edge"},
		{"End", "Move view-port to right edge"},
		{"Ctrl+Home", "Move view-port to top"},
		{"Ctrl+End", "Move view-port to bottom"},
		{"Page Up", "Move view-port up by half a screen"},
		{"Page Down", "Move view-port down by half a screen"},
		{"Alt+Page Up", "Move view-port left by half a screen"},
		{"Alt+Page Down", "Move view-port right by half a screen"},
	}
}
