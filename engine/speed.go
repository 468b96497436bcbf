package engine

import "time"

// SpeedController owns the tick interval
// Adjustments are requested during a tick and resolved once by Apply
type SpeedController struct {
	base      time.Duration
	floor     time.Duration
	levelStep time.Duration
	growStep  time.Duration

	interval time.Duration

	pendingReward  bool
	pendingLevelUp bool
	pendingGrowth  int
}

// NewSpeedController starts at base
func NewSpeedController(r Rules) *SpeedController {
	return &SpeedController{
		base:      r.BaseTick,
		floor:     r.MinTick,
		levelStep: r.LevelDecrement,
		growStep:  r.GrowthDecrement,
		interval:  r.BaseTick,
	}
}

// Interval returns the current tick interval
func (sc *SpeedController) Interval() time.Duration {
	return sc.interval
}

// RequestReward schedules a reset to the base interval
func (sc *SpeedController) RequestReward() {
	sc.pendingReward = true
}

// RequestLevelUp schedules one level decrement
func (sc *SpeedController) RequestLevelUp() {
	sc.pendingLevelUp = true
}

// RequestGrowth schedules n growth decrements
func (sc *SpeedController) RequestGrowth(n int) {
	if n > 0 {
		sc.pendingGrowth += n
	}
}

// Apply resolves pending requests in priority order (reward, level-up, growth)
// and clears them; returns the resulting interval
func (sc *SpeedController) Apply() time.Duration {
	switch {
	case sc.pendingReward:
		sc.interval = sc.base
	case sc.pendingLevelUp:
		sc.interval -= sc.levelStep
	case sc.pendingGrowth > 0:
		sc.interval -= time.Duration(sc.pendingGrowth) * sc.growStep
	}
	if sc.interval < sc.floor {
		sc.interval = sc.floor
	}

	sc.pendingReward = false
	sc.pendingLevelUp = false
	sc.pendingGrowth = 0
	return sc.interval
}
