package engine

import (
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/grid"
)

// AudioSink accepts one sound per tick; Play must not block
type AudioSink interface {
	Play(core.SoundID)
}

// AudioSinks plays each sound on every member, skipping nil entries
type AudioSinks []AudioSink

func (a AudioSinks) Play(id core.SoundID) {
	for _, s := range a {
		if s != nil {
			s.Play(id)
		}
	}
}

// SnapshotSink receives every published snapshot
type SnapshotSink interface {
	Publish(Snapshot)
}

// CommandKind is what a key press asks the scheduler to do
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdTurn
	CmdQuit
	CmdPause
	CmdMute
)

func (k CommandKind) String() string {
	switch k {
	case CmdTurn:
		return "turn"
	case CmdQuit:
		return "quit"
	case CmdPause:
		return "pause"
	case CmdMute:
		return "mute"
	}
	return "none"
}

// Command is delivered by the input collaborator between ticks
type Command struct {
	Kind CommandKind
	Dir  grid.Direction
}

// Turn builds a direction command
func Turn(d grid.Direction) Command {
	return Command{Kind: CmdTurn, Dir: d}
}
