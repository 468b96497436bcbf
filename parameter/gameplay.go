package parameter

import "time"

// Board
const (
	// BoardRows is the playfield height in cells
	BoardRows = 20

	// BoardCols is the playfield width in cells
	BoardCols = 80
)

// Snake
const (
	// SnakeMinLength is the length the snake starts with and can never shrink below
	SnakeMinLength = 3

	// ChompTotal is the number of ticks the gulp animation holds the snake still
	ChompTotal = 8
)

// Scoring & Levels
const (
	// FoodScore is awarded when the gulp animation completes
	FoodScore = 10

	// LevelScore is the score multiple that advances the level
	LevelScore = 100

	// LevelFlashFrames is how many ticks the level-up banner pulses (~1.2s at base speed)
	LevelFlashFrames = 12
)

// Tick interval (speed controller)
const (
	BaseTick        = 100 * time.Millisecond
	MinTick         = 30 * time.Millisecond
	LevelDecrement  = 15 * time.Millisecond
	GrowthDecrement = 2 * time.Millisecond
)

// Deposit lifecycle
const (
	// FreshWindow is how long a deposit stays collectible for group progress
	FreshWindow = 15 * time.Second

	// ArmedWindow is how long an armed deposit lingers before it explodes
	ArmedWindow = 15 * time.Second

	// PenaltyGrowth is the pending growth added when a deposit explodes
	PenaltyGrowth = 2

	// DepositBatch is the number of deposits dropped per food, and the group size
	DepositBatch = 3

	// RewardShrink is the maximum number of segments removed on group completion
	RewardShrink = 2
)

// Idle bloat
const (
	IdleBaseTicks  = 80
	IdleStepTicks  = 10
	IdleFloorTicks = 30
)

// Cosmetic markers
const (
	ExplosionFrames  = 6
	AnnotationFrames = 10
	AnnotationText   = "plop!"
)
