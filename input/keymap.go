package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/grid"
)

// Action is what a bound key asks for
type Action uint8

const (
	ActionNone Action = iota // Unbind sentinel
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionQuit
	ActionPause
	ActionMute
)

// actionRegistry maps canonical action names used in key config
var actionRegistry = map[string]Action{
	"none":        ActionNone,
	"turn_up":     ActionUp,
	"turn_down":   ActionDown,
	"turn_left":   ActionLeft,
	"turn_right":  ActionRight,
	"quit":        ActionQuit,
	"pause":       ActionPause,
	"toggle_mute": ActionMute,
}

// ActionByName resolves a config action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

// Command converts an action to a scheduler command
func (a Action) Command() (engine.Command, bool) {
	switch a {
	case ActionUp:
		return engine.Turn(grid.Up), true
	case ActionDown:
		return engine.Turn(grid.Down), true
	case ActionLeft:
		return engine.Turn(grid.Left), true
	case ActionRight:
		return engine.Turn(grid.Right), true
	case ActionQuit:
		return engine.Command{Kind: engine.CmdQuit}, true
	case ActionPause:
		return engine.Command{Kind: engine.CmdPause}, true
	case ActionMute:
		return engine.Command{Kind: engine.CmdMute}, true
	}
	return engine.Command{}, false
}

// KeyMap maps keys to actions
type KeyMap struct {
	// Printable keys, case-sensitive
	Runes map[rune]Action

	// Named keys (arrows, Esc, Ctrl+*)
	Keys map[tcell.Key]Action
}

// DefaultKeyMap binds arrows, WASD and hjkl to turns
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Runes: map[rune]Action{
			'w': ActionUp, 'a': ActionLeft, 's': ActionDown, 'd': ActionRight,
			'W': ActionUp, 'A': ActionLeft, 'S': ActionDown, 'D': ActionRight,
			'k': ActionUp, 'h': ActionLeft, 'j': ActionDown, 'l': ActionRight,
			'q': ActionQuit, 'Q': ActionQuit,
			'p': ActionPause, ' ': ActionPause,
			'm': ActionMute,
		},
		Keys: map[tcell.Key]Action{
			tcell.KeyUp:     ActionUp,
			tcell.KeyDown:   ActionDown,
			tcell.KeyLeft:   ActionLeft,
			tcell.KeyRight:  ActionRight,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlQ:  ActionQuit,
		},
	}
}

// Clone returns a deep copy
func (km *KeyMap) Clone() *KeyMap {
	c := &KeyMap{
		Runes: make(map[rune]Action, len(km.Runes)),
		Keys:  make(map[tcell.Key]Action, len(km.Keys)),
	}
	for k, v := range km.Runes {
		c.Runes[k] = v
	}
	for k, v := range km.Keys {
		c.Keys[k] = v
	}
	return c
}

// Merge returns base overridden by override; ActionNone entries unbind the key
func Merge(base, override *KeyMap) *KeyMap {
	result := base.Clone()
	if override == nil {
		return result
	}
	for k, v := range override.Runes {
		if v == ActionNone {
			delete(result.Runes, k)
		} else {
			result.Runes[k] = v
		}
	}
	for k, v := range override.Keys {
		if v == ActionNone {
			delete(result.Keys, k)
		} else {
			result.Keys[k] = v
		}
	}
	return result
}

// Lookup returns the action bound to a key event
func (km *KeyMap) Lookup(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return km.Runes[ev.Rune()]
	}
	return km.Keys[ev.Key()]
}
