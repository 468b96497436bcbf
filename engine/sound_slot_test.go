package engine

import (
	"testing"

	"github.com/lixenwraith/term-snake/core"
)

func TestSoundSlotLastWriteWins(t *testing.T) {
	var s soundSlot
	s.queue(core.SoundPlop)
	s.queue(core.SoundNone)
	if s.peek() != core.SoundPlop {
		t.Errorf("peek() = %v after SoundNone, want plop", s.peek())
	}
	s.queue(core.SoundCrash)
	if got := s.take(); got != core.SoundCrash {
		t.Errorf("take() = %v, want crash", got)
	}
	if got := s.take(); got != core.SoundNone {
		t.Errorf("take() after take = %v, want none", got)
	}
}
