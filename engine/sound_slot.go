package engine

import "github.com/lixenwraith/term-snake/core"

// soundSlot holds at most one sound request for the current tick
// A later request replaces an earlier one
type soundSlot struct {
	id core.SoundID
}

func (s *soundSlot) queue(id core.SoundID) {
	if id == core.SoundNone {
		return
	}
	s.id = id
}

func (s *soundSlot) peek() core.SoundID {
	return s.id
}

// take returns the queued sound and clears the slot
func (s *soundSlot) take() core.SoundID {
	id := s.id
	s.id = core.SoundNone
	return id
}
