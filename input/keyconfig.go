package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keyNames indexes tcell key names case-insensitively ("up", "esc", "ctrl-c")
var keyNames = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		if k == tcell.KeyRune {
			continue
		}
		m[strings.ToLower(name)] = k
	}
	return m
}()

// ParseBindings converts key name → action name pairs into a sparse override KeyMap
// Returns error on unknown action names or invalid key names
func ParseBindings(bindings map[string]string) (*KeyMap, error) {
	km := &KeyMap{
		Runes: make(map[rune]Action),
		Keys:  make(map[tcell.Key]Action),
	}

	for keyStr, actionName := range bindings {
		action, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}

		if k, ok := keyNames[strings.ToLower(keyStr)]; ok && len([]rune(keyStr)) > 1 {
			km.Keys[k] = action
			continue
		}

		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, err
		}
		km.Runes[r] = action
	}

	return km, nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid key: %q (expected single character, alias or key name)", s)
}

// resolveAction converts an action name string to an Action
func resolveAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	a, ok := ActionByName(name)
	if !ok {
		return ActionNone, fmt.Errorf("unknown action: %q", name)
	}
	return a, nil
}
