package input

// actionRegistry maps canonical action names to action types
// Used by the key binding loader to resolve configured action strings
var actionRegistry = map[string]ActionType{
	"none":                  ActionNone,
	"quit":                  ActionQuit,
	"toggle_blend":          ActionToggleBlend,
	"toggle_osd":            ActionToggleOsd,
	"toggle_fast_forward":   ActionToggleFastForward,
	"toggle_column_reverse": ActionToggleColumnReverse,
	"next_image":            ActionNextImage,
	"prev_image":            ActionPrevImage,
	"fps_up":                ActionFpsUp,
	"fps_down":              ActionFpsDown,
	"rewind_5m":             ActionRewind5m,
	"rewind_1m":             ActionRewind1m,
	"forward_5m":            ActionForward5m,
	"forward_1m":            ActionForward1m,
	"resume_now":            ActionResumeNow,
	"move_up":               ActionMoveUp,
	"move_down":             ActionMoveDown,
	"move_left":             ActionMoveLeft,
	"move_right":            ActionMoveRight,
	"viewport_left_edge":    ActionViewportLeftEdge,
	"viewport_right_edge":   ActionViewportRightEdge,
	"viewport_top":          ActionViewportTop,
	"viewport_bottom":       ActionViewportBottom,
	"page_up":               ActionPageUp,
	"page_down":             ActionPageDown,
	"page_left":             ActionPageLeft,
	"page_right":            ActionPageRight,
}

var actionNames = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionRegistry)+2)
	for name, t := range actionRegistry {
		m[t] = name
	}
	m[ActionSelectImage] = "select_image"
	m[ActionTerminalResized] = "terminal_resized"
	return m
}()

// ActionByName resolves a configured action name
func ActionByName(name string) (ActionType, bool) {
	t, ok := actionRegistry[name]
	return t, ok
}
