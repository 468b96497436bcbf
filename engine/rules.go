package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/term-snake/parameter"
)

// ErrInvalidRules is wrapped by every Rules.Validate failure
var ErrInvalidRules = errors.New("invalid rules")

// Rules holds the fixed parameters of a game session
type Rules struct {
	Rows int
	Cols int

	MinLength  int
	ChompTotal int

	FoodScore        int
	LevelScore       int
	LevelFlashFrames int

	BaseTick        time.Duration
	MinTick         time.Duration
	LevelDecrement  time.Duration
	GrowthDecrement time.Duration

	FreshWindow   time.Duration
	ArmedWindow   time.Duration
	PenaltyGrowth int
	DepositBatch  int
	RewardShrink  int

	IdleBase  int
	IdleStep  int
	IdleFloor int

	ExplosionFrames  int
	AnnotationFrames int
	AnnotationText   string
}

// DefaultRules returns the stock game parameters
func DefaultRules() Rules {
	return Rules{
		Rows:             parameter.BoardRows,
		Cols:             parameter.BoardCols,
		MinLength:        parameter.SnakeMinLength,
		ChompTotal:       parameter.ChompTotal,
		FoodScore:        parameter.FoodScore,
		LevelScore:       parameter.LevelScore,
		LevelFlashFrames: parameter.LevelFlashFrames,
		BaseTick:         parameter.BaseTick,
		MinTick:          parameter.MinTick,
		LevelDecrement:   parameter.LevelDecrement,
		GrowthDecrement:  parameter.GrowthDecrement,
		FreshWindow:      parameter.FreshWindow,
		ArmedWindow:      parameter.ArmedWindow,
		PenaltyGrowth:    parameter.PenaltyGrowth,
		DepositBatch:     parameter.DepositBatch,
		RewardShrink:     parameter.RewardShrink,
		IdleBase:         parameter.IdleBaseTicks,
		IdleStep:         parameter.IdleStepTicks,
		IdleFloor:        parameter.IdleFloorTicks,
		ExplosionFrames:  parameter.ExplosionFrames,
		AnnotationFrames: parameter.AnnotationFrames,
		AnnotationText:   parameter.AnnotationText,
	}
}

// Validate reports the first parameter that would break a game invariant
func (r Rules) Validate() error {
	switch {
	case r.MinLength < 1:
		return fmt.Errorf("%w: minimum length %d must be positive", ErrInvalidRules, r.MinLength)
	case r.Rows < 1 || r.Cols < r.MinLength:
		return fmt.Errorf("%w: board %dx%d cannot hold a snake of %d", ErrInvalidRules, r.Rows, r.Cols, r.MinLength)
	case r.Rows*r.Cols <= r.MinLength+1:
		return fmt.Errorf("%w: board %dx%d leaves no room for food", ErrInvalidRules, r.Rows, r.Cols)
	case r.ChompTotal < 1:
		return fmt.Errorf("%w: chomp total %d must be positive", ErrInvalidRules, r.ChompTotal)
	case r.LevelScore < 1 || r.FoodScore < 0:
		return fmt.Errorf("%w: level score %d / food score %d", ErrInvalidRules, r.LevelScore, r.FoodScore)
	case r.MinTick <= 0 || r.BaseTick < r.MinTick:
		return fmt.Errorf("%w: tick base %v must be >= floor %v > 0", ErrInvalidRules, r.BaseTick, r.MinTick)
	case r.LevelDecrement < 0 || r.GrowthDecrement < 0:
		return fmt.Errorf("%w: negative speed decrement", ErrInvalidRules)
	case r.FreshWindow <= 0 || r.ArmedWindow <= 0:
		return fmt.Errorf("%w: deposit windows %v/%v must be positive", ErrInvalidRules, r.FreshWindow, r.ArmedWindow)
	case r.PenaltyGrowth < 0 || r.DepositBatch < 0 || r.RewardShrink < 0:
		return fmt.Errorf("%w: negative deposit parameter", ErrInvalidRules)
	case r.IdleFloor < 1 || r.IdleBase < r.IdleFloor || r.IdleStep < 0:
		return fmt.Errorf("%w: idle base %d, step %d, floor %d", ErrInvalidRules, r.IdleBase, r.IdleStep, r.IdleFloor)
	}
	return nil
}

// IdleThreshold is the number of movement ticks without a turn that forces growth at level
func (r Rules) IdleThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	t := r.IdleBase - (level-1)*r.IdleStep
	if t < r.IdleFloor {
		return r.IdleFloor
	}
	return t
}
