package input

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/grid"
)

func TestDefaultKeyMapTurns(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want grid.Direction
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), grid.Up},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), grid.Left},
		{"w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), grid.Up},
		{"S", tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), grid.Down},
		{"l", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), grid.Right},
		{"h", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), grid.Left},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := km.Lookup(tt.ev).Command()
			if !ok || cmd.Kind != engine.CmdTurn || cmd.Dir != tt.want {
				t.Errorf("command = %+v, %v; want turn %v", cmd, ok, tt.want)
			}
		})
	}
}

func TestDefaultKeyMapSystem(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		ev   *tcell.EventKey
		want engine.CommandKind
	}{
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), engine.CmdQuit},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), engine.CmdQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), engine.CmdQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), engine.CmdPause},
		{tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), engine.CmdMute},
	}
	for _, tt := range tests {
		cmd, ok := km.Lookup(tt.ev).Command()
		if !ok || cmd.Kind != tt.want {
			t.Errorf("%v: command = %+v, want %v", tt.ev.Name(), cmd, tt.want)
		}
	}

	if _, ok := km.Lookup(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)).Command(); ok {
		t.Error("unbound key produced a command")
	}
}

func TestParseBindingsAndMerge(t *testing.T) {
	override, err := ParseBindings(map[string]string{
		"i":     "turn_up",
		"w":     "none",
		"space": "toggle_mute",
		"Enter": "pause",
		"Up":    "none",
	})
	if err != nil {
		t.Fatalf("ParseBindings() = %v", err)
	}

	km := Merge(DefaultKeyMap(), override)
	if km.Runes['i'] != ActionUp {
		t.Error("new binding missing")
	}
	if _, ok := km.Runes['w']; ok {
		t.Error("unbound rune still present")
	}
	if km.Runes[' '] != ActionMute {
		t.Error("alias binding missing")
	}
	if km.Keys[tcell.KeyEnter] != ActionPause {
		t.Error("named key binding missing")
	}
	if _, ok := km.Keys[tcell.KeyUp]; ok {
		t.Error("unbound key still present")
	}

	// Base is untouched
	if DefaultKeyMap().Runes['w'] != ActionUp {
		t.Error("Merge modified the base map")
	}
}

func TestParseBindingsErrors(t *testing.T) {
	tests := []map[string]string{
		{"w": "jump"},
		{"ww": "turn_up"},
	}
	for _, b := range tests {
		if _, err := ParseBindings(b); err == nil {
			t.Errorf("ParseBindings(%v) succeeded", b)
		}
	}
}

func TestReaderRun(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	screen.SetSize(80, 24)

	resized := make(chan struct{}, 4)
	r := NewReader(nil, func(w, h int) { resized <- struct{}{} })
	out := make(chan engine.Command, 8)
	go r.Run(context.Background(), screen, out)

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	want := []engine.Command{engine.Turn(grid.Down), {Kind: engine.CmdQuit}}
	for i, w := range want {
		select {
		case got := <-out:
			if got != w {
				t.Errorf("command %d = %+v, want %+v", i, got, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for command %d", i)
		}
	}

	screen.Fini()
	select {
	case _, ok := <-out:
		if ok {
			t.Error("unexpected command after Fini")
		}
	case <-time.After(2 * time.Second):
		t.Error("reader did not stop after Fini")
	}
}
