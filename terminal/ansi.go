package terminal

// Lifecycle sequences; frame content is encoded by the renderer
var (
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// DECAWM: ?7l keeps the cursor at the right edge instead of wrapping
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// clearSequence resets attributes before erasing so the default background is used
	clearSequence = append(append([]byte{}, csiSGR0...), csiClear...)
)
