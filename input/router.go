package input

import (
	"context"
	"log"

	"github.com/lixenwraith/color-cycle/terminal"
)

// EventSource produces decoded terminal events; PollEvent blocks
type EventSource interface {
	PollEvent() terminal.Event
}

// Router translates terminal events into actions
type Router struct {
	table *KeyTable
}

// NewRouter creates a router over the default bindings with overrides applied
func NewRouter(overrides *KeyTable) *Router {
	kt := DefaultKeyTable()
	kt.Merge(overrides)
	return &Router{table: kt}
}

// Translate maps one event to an action; unbound keys report false
func (r *Router) Translate(ev terminal.Event) (Action, bool) {
	return r.table.Lookup(ev)
}

// Pump polls src until it closes or ctx ends, forwarding translated actions to out
// A failed input source delivers Quit so the loop exits cleanly
// Run it under core.Go so a panic restores the terminal
func (r *Router) Pump(ctx context.Context, src EventSource, out chan<- Action) {
	for {
		ev := src.PollEvent()

		switch ev.Type {
		case terminal.EventClosed:
			return
		case terminal.EventError:
			log.Printf("input: %v", ev.Err)
			r.send(ctx, out, Action{Type: ActionQuit})
			return
		}

		if a, ok := r.Translate(ev); ok {
			if !r.send(ctx, out, a) {
				return
			}
		}
	}
}

func (r *Router) send(ctx context.Context, out chan<- Action, a Action) bool {
	select {
	case out <- a:
		return true
	case <-ctx.Done():
		return false
	}
}
