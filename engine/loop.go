package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/color-cycle/core"
	"github.com/lixenwraith/color-cycle/cycle"
	"github.com/lixenwraith/color-cycle/input"
	"github.com/lixenwraith/color-cycle/render"
)

// Display consumes rendered frames
type Display interface {
	Draw(f *render.Frame) error
}

// CellCounter is implemented by displays that report how many cells a Draw wrote
type CellCounter interface {
	Changed() int
}

// Loop is the single-threaded event loop: it is the only code touching the session
type Loop struct {
	session *Session
	display Display
	actions <-chan input.Action
	time    TimeProvider
	stats   *Stats

	palette core.Palette
}

// NewLoop wires a session to its display and action source
func NewLoop(s *Session, d Display, actions <-chan input.Action, tp TimeProvider) *Loop {
	return &Loop{
		session: s,
		display: d,
		actions: actions,
		time:    tp,
		stats:   NewStats(),
	}
}

// Stats returns the frame statistics collected so far
func (l *Loop) Stats() *Stats {
	return l.stats
}

// Run ticks until Quit or ctx cancellation; both are observed only between ticks
func (l *Loop) Run(ctx context.Context) error {
	s := l.session
	s.Announce(l.time.Now())

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	last := l.time.Now()
	for {
		now := l.time.Now()
		vt := s.Clock.Advance(now.Sub(last))
		last = now

		if err := l.tick(vt, now); err != nil {
			return err
		}

		deadline := now.Add(s.FrameDuration())
		if done := l.wait(ctx, timer, deadline); done {
			log.Printf("loop: stopped after %d frames at %s", l.stats.frames, FormatTimeOfDay(s.Clock.Now()))
			return nil
		}
	}
}

// tick computes and draws one frame
func (l *Loop) tick(vt float64, now time.Time) error {
	s := l.session
	cycle.Compute(&l.palette, s.Current(), vt, s.Blend)

	f := s.Frame(&l.palette, now)
	if err := l.display.Draw(&f); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	l.stats.Record(now, l.time.Now().Sub(now))
	if cc, ok := l.display.(CellCounter); ok {
		l.stats.AddCells(cc.Changed())
	}
	return nil
}

// wait applies actions until the deadline, reporting true when the loop must stop
// Pending actions are still drained when a frame overran its deadline
func (l *Loop) wait(ctx context.Context, timer *time.Timer, deadline time.Time) bool {
	for {
		remaining := deadline.Sub(l.time.Now())
		if remaining <= 0 {
			select {
			case <-ctx.Done():
				return l.cancelled(ctx)
			case a, ok := <-l.actions:
				if l.receive(a, ok) {
					return true
				}
				continue
			default:
				return false
			}
		}
		timer.Reset(remaining)

		select {
		case <-ctx.Done():
			return l.cancelled(ctx)
		case a, ok := <-l.actions:
			if l.receive(a, ok) {
				return true
			}
		case <-timer.C:
			return false
		}
	}
}

func (l *Loop) cancelled(ctx context.Context) bool {
	log.Printf("loop: %v", context.Cause(ctx))
	return true
}

// receive applies one action, reporting true once the session is quitting
func (l *Loop) receive(a input.Action, ok bool) bool {
	if !ok {
		l.actions = nil
		return false
	}
	l.apply(a)
	return l.session.State == StateQuitting
}

func (l *Loop) apply(a input.Action) {
	s := l.session
	if a.Type == input.ActionTerminalResized {
		log.Printf("loop: terminal resized to %dx%d", a.Cols, a.Rows)
	}
	prev := s.Index
	s.Apply(a, l.time.Now())
	if s.Index != prev {
		log.Printf("loop: showing %q", s.Images[s.Index].Name)
	}
}
