package engine

import (
	"strings"

	"github.com/lixenwraith/term-snake/core"
)

// EventFlag marks what happened during a tick
type EventFlag uint32

const (
	EvTurned EventFlag = 1 << iota
	EvMoved
	EvGrew
	EvShrank
	EvGulpStarted
	EvScored
	EvLevelUp
	EvAteFresh
	EvAteArmed
	EvGroupComplete
	EvExpired
	EvSeedLanded
	EvIdleBloat
	EvGameOver
)

var flagNames = []string{
	"turned", "moved", "grew", "shrank", "gulp", "scored", "levelup",
	"fresh", "armed", "group", "expired", "landed", "idle", "gameover",
}

func (f EventFlag) String() string {
	if f == 0 {
		return "-"
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Events is everything a tick hands to the collaborators
type Events struct {
	Tick     uint64
	Sound    core.SoundID // SoundNone when silent
	Flags    EventFlag
	Snapshot Snapshot
}

// Has reports whether all bits of f are set
func (e Events) Has(f EventFlag) bool {
	return e.Flags&f == f
}
