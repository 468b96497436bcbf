package input

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/term-snake/engine"
)

// EventSource is the part of tcell.Screen the reader polls
type EventSource interface {
	PollEvent() tcell.Event
}

// Reader turns terminal events into scheduler commands
type Reader struct {
	keys     *KeyMap
	onResize func(w, h int)
}

// NewReader creates a reader; nil keys uses DefaultKeyMap
func NewReader(keys *KeyMap, onResize func(w, h int)) *Reader {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &Reader{keys: keys, onResize: onResize}
}

// Translate maps one terminal event to a command
func (r *Reader) Translate(ev tcell.Event) (engine.Command, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.keys.Lookup(ev).Command()
	case *tcell.EventResize:
		if r.onResize != nil {
			w, h := ev.Size()
			r.onResize(w, h)
		}
	}
	return engine.Command{}, false
}

// Run polls src until it is finalized or ctx ends, delivering commands to out
// Closes out on return
func (r *Reader) Run(ctx context.Context, src EventSource, out chan<- engine.Command) {
	defer close(out)
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		cmd, ok := r.Translate(ev)
		if !ok {
			continue
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return
		}
	}
}
