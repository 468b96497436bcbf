package parameter

import "time"

// Scheduler
const (
	// InputQueueDepth is the number of buffered commands awaiting a tick
	InputQueueDepth = 4

	// PausedPollInterval is the scheduler sleep while the clock is paused
	PausedPollInterval = 50 * time.Millisecond

	// MaxCatchUpWarn is the batch size above which the scheduler logs a stall
	MaxCatchUpWarn = 5
)

// Food placement
const (
	// FoodPlacementAttempts is the number of random probes before a linear scan
	FoodPlacementAttempts = 100
)
