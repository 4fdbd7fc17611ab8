package input

import "fmt"

// ActionType discriminates session actions
type ActionType uint8

const (
	ActionNone ActionType = iota

	ActionQuit
	ActionToggleBlend
	ActionToggleOsd
	ActionToggleFastForward
	ActionToggleColumnReverse

	// Image selection
	ActionNextImage
	ActionPrevImage
	ActionSelectImage // Action.Index: 1-9 selects that image, 0 selects the last

	// Frame rate
	ActionFpsUp
	ActionFpsDown

	// Virtual clock
	ActionRewind5m
	ActionRewind1m
	ActionForward5m
	ActionForward1m
	ActionResumeNow

	// Viewport
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionViewportLeftEdge
	ActionViewportRightEdge
	ActionViewportTop
	ActionViewportBottom
	ActionPageUp
	ActionPageDown
	ActionPageLeft
	ActionPageRight

	ActionTerminalResized // Action.Cols, Action.Rows

	actionCount
)

// Action is one user or environment request delivered to the event loop
// Pure data; the payload fields are meaningful only for the types that name them
type Action struct {
	Type  ActionType
	Index int
	Cols  int
	Rows  int
}

// SelectImage returns the action for digit key n
func SelectImage(n int) Action {
	return Action{Type: ActionSelectImage, Index: n}
}

// TerminalResized returns the action for a terminal size change
func TerminalResized(cols, rows int) Action {
	return Action{Type: ActionTerminalResized, Cols: cols, Rows: rows}
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ActionType(%d)", t)
}

func (a Action) String() string {
	switch a.Type {
	case ActionSelectImage:
		return fmt.Sprintf("%s(%d)", a.Type, a.Index)
	case ActionTerminalResized:
		return fmt.Sprintf("%s(%d,%d)", a.Type, a.Cols, a.Rows)
	}
	return a.Type.String()
}
