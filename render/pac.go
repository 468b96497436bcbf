package render

import (
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/grid"
)

// PacOverlay reports whether p is covered by the gulp disc around the head
// The disc shrinks and the mouth closes as the chew progresses
func PacOverlay(s engine.Snapshot, p grid.Position) bool {
	if !s.Eating || len(s.Snake) == 0 {
		return false
	}

	phase := s.ChompPhase
	dy, dx := grid.Delta(p, s.Snake[0], s.Rows, s.Cols)
	if abs(dx) > 2 || abs(dy) > 2 {
		return false
	}

	radius := 2.0
	switch {
	case phase <= 1:
		radius = 2.4
	case phase <= 3:
		radius = 2.2
	}
	if float64(dx*dx+dy*dy) > radius*radius {
		return false
	}

	vy, vx := s.Direction.Delta()

	mouthBand, forwardThresh := 0, 99
	switch {
	case phase <= 1:
		mouthBand, forwardThresh = 2, 0
	case phase <= 3:
		mouthBand, forwardThresh = 1, 1
	}

	forward := vx*dx + vy*dy
	perp := -vy*dx + vx*dy
	inMouth := forward >= forwardThresh && abs(perp) <= mouthBand
	return !inMouth
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
