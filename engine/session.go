package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/color-cycle/core"
	"github.com/lixenwraith/color-cycle/input"
	"github.com/lixenwraith/color-cycle/render"
)

// Virtual time moved by the rewind and forward actions
const (
	BigTimeStep   = 5 * 60 // seconds
	SmallTimeStep = 60     // seconds
)

// State is the event loop's lifecycle state
type State uint8

const (
	StateRunning State = iota
	StateQuitting
)

// Entry is a loaded image with its display name
type Entry struct {
	Name  string
	Image *core.Image
}

// Settings are the startup values of a session
type Settings struct {
	FPS              int
	Blend            bool
	OSD              bool
	ColumnReverse    bool
	OSDDuration      time.Duration
	FastForwardSpeed float64
	OSDFg            core.RGB
	OSDBg            core.RGB
}

// Session holds all mutable playback state
// Owned exclusively by the event loop; mutated only through Apply and Resize
type Session struct {
	Images []Entry
	Index  int

	Viewport   render.Viewport
	Cols, Rows int

	FPS           int
	Blend         bool
	OSD           bool
	ColumnReverse bool
	FastForward   bool

	Clock *VirtualClock
	State State

	osdMessage  string
	osdExpiry   time.Time
	osdClosing  bool // "OSD: Disabled" stays up until it expires
	osdDuration time.Duration
	ffSpeed     float64
	osdFg       core.RGB
	osdBg       core.RGB
}

// NewSession creates a session showing the first image centered in a cols×rows terminal
// images must be non-empty
func NewSession(images []Entry, s Settings, clock *VirtualClock, cols, rows int) *Session {
	sess := &Session{
		Images:        images,
		Cols:          max(1, cols),
		Rows:          max(1, rows),
		FPS:           max(1, s.FPS),
		Blend:         s.Blend,
		OSD:           s.OSD,
		ColumnReverse: s.ColumnReverse,
		Clock:         clock,
		osdDuration:   s.OSDDuration,
		ffSpeed:       s.FastForwardSpeed,
		osdFg:         s.OSDFg,
		osdBg:         s.OSDBg,
	}
	sess.recenter()
	return sess
}

// Current returns the image being shown
func (s *Session) Current() *core.Image {
	return s.Images[s.Index].Image
}

// FrameDuration is the target interval between ticks
func (s *Session) FrameDuration() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// Apply mutates state for one action; inapplicable actions are no-ops
func (s *Session) Apply(a input.Action, now time.Time) {
	switch a.Type {
	case input.ActionQuit:
		s.State = StateQuitting

	case input.ActionToggleBlend:
		s.Blend = !s.Blend
		s.show(now, "Blend Mode: %s", enabled(s.Blend))

	case input.ActionToggleOsd:
		if s.OSD {
			// Confirm before hiding; nothing else is shown until re-enabled
			s.show(now, "OSD: %s", enabled(false))
			s.OSD = false
			s.osdClosing = true
		} else {
			s.OSD = true
			s.osdClosing = false
			s.osdMessage = ""
			s.show(now, "OSD: %s", enabled(true))
		}

	case input.ActionToggleFastForward:
		s.FastForward = !s.FastForward
		if s.FastForward {
			s.Clock.SetSpeed(s.ffSpeed)
		} else {
			s.Clock.SetSpeed(1)
		}
		s.show(now, "Fast Forward: %s", onOff(s.FastForward))

	case input.ActionToggleColumnReverse:
		s.ColumnReverse = !s.ColumnReverse
		s.show(now, "Column Reverse: %s", onOff(s.ColumnReverse))

	case input.ActionNextImage:
		s.selectImage((s.Index+1)%len(s.Images), now)

	case input.ActionPrevImage:
		s.selectImage((s.Index-1+len(s.Images))%len(s.Images), now)

	case input.ActionSelectImage:
		n := len(s.Images)
		idx := a.Index - 1
		if a.Index == 0 {
			idx = n - 1
		}
		if idx >= n {
			idx = n - 1
			s.selectImage(idx, now)
			s.show(now, "Only %d files loaded!", n)
			return
		}
		s.selectImage(max(0, idx), now)

	case input.ActionFpsUp:
		s.FPS++
		s.show(now, "FPS: %d", s.FPS)

	case input.ActionFpsDown:
		s.FPS = max(1, s.FPS-1)
		s.show(now, "FPS: %d", s.FPS)

	case input.ActionRewind5m:
		s.shiftClock(-BigTimeStep, now)
	case input.ActionRewind1m:
		s.shiftClock(-SmallTimeStep, now)
	case input.ActionForward5m:
		s.shiftClock(BigTimeStep, now)
	case input.ActionForward1m:
		s.shiftClock(SmallTimeStep, now)

	case input.ActionResumeNow:
		s.Clock.ResumeNow()
		s.FastForward = false
		s.show(now, "%s", FormatTimeOfDay(s.Clock.Now()))

	case input.ActionMoveUp:
		s.moveViewport(0, -1)
	case input.ActionMoveDown:
		s.moveViewport(0, 1)
	case input.ActionMoveLeft:
		s.moveViewport(-1, 0)
	case input.ActionMoveRight:
		s.moveViewport(1, 0)

	case input.ActionViewportLeftEdge:
		s.Viewport.X = 0
	case input.ActionViewportRightEdge:
		s.Viewport.X = s.Current().Width
	case input.ActionViewportTop:
		s.Viewport.Y = 0
	case input.ActionViewportBottom:
		s.Viewport.Y = s.Current().Height

	// Half a screen: a terminal row is two pixel rows
	case input.ActionPageUp:
		s.moveViewport(0, -s.Rows)
	case input.ActionPageDown:
		s.moveViewport(0, s.Rows)
	case input.ActionPageLeft:
		s.moveViewport(-max(1, s.Cols/2), 0)
	case input.ActionPageRight:
		s.moveViewport(max(1, s.Cols/2), 0)

	case input.ActionTerminalResized:
		s.Cols = max(1, a.Cols)
		s.Rows = max(1, a.Rows)
	}

	s.clampViewport()
}

// Message returns the overlay text to show at now, or "" for none
func (s *Session) Message(now time.Time) string {
	if !s.OSD {
		if s.osdClosing && now.Before(s.osdExpiry) {
			return s.osdMessage
		}
		return ""
	}
	if s.osdMessage != "" && now.Before(s.osdExpiry) {
		return s.osdMessage
	}
	if s.FastForward {
		return " " + FormatTimeOfDay(s.Clock.Now()) + " "
	}
	return ""
}

// Frame assembles the render input for the current state
func (s *Session) Frame(pal *core.Palette, now time.Time) render.Frame {
	return render.Frame{
		Image:         s.Current(),
		Palette:       pal,
		Viewport:      s.Viewport,
		Cols:          s.Cols,
		Rows:          s.Rows,
		ColumnReverse: s.ColumnReverse,
		OSD:           render.Overlay{Text: s.Message(now), Fg: s.osdFg, Bg: s.osdBg},
	}
}

// Announce shows the current image's name
func (s *Session) Announce(now time.Time) {
	s.show(now, "%s", s.Images[s.Index].Name)
}

func (s *Session) selectImage(idx int, now time.Time) {
	s.Index = idx
	s.recenter()
	s.Announce(now)
}

func (s *Session) shiftClock(seconds float64, now time.Time) {
	s.Clock.Shift(seconds)
	s.show(now, "%s", FormatTimeOfDay(s.Clock.Now()))
}

func (s *Session) moveViewport(dx, dy int) {
	s.Viewport.X += dx
	s.Viewport.Y += dy
}

func (s *Session) clampViewport() {
	img := s.Current()
	s.Viewport = s.Viewport.Clamp(img.Width, img.Height, s.Cols, s.Rows)
}

func (s *Session) recenter() {
	img := s.Current()
	s.Viewport = render.Centered(img.Width, img.Height, s.Cols, s.Rows)
}

// show sets a transient message; messages exist only while the OSD is on
func (s *Session) show(now time.Time, format string, args ...any) {
	if !s.OSD {
		return
	}
	s.osdMessage = " " + fmt.Sprintf(format, args...) + " "
	s.osdExpiry = now.Add(s.osdDuration)
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
