package engine

import (
	"sync"
	"time"
)

// PausableClock is game time: a real-time source minus accumulated pauses
type PausableClock struct {
	mu sync.RWMutex

	source    Clock
	epoch     time.Time     // Source time at creation
	paused    bool
	pausedAt  time.Time     // Source time when the current pause began
	pausedFor time.Duration // Completed pauses
}

// NewPausableClock wraps source; nil uses the system clock
func NewPausableClock(source Clock) *PausableClock {
	if source == nil {
		source = NewTimeProvider()
	}
	return &PausableClock{source: source, epoch: source.Now()}
}

// Now returns game time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pausedAt.Add(-pc.pausedFor)
	}
	return pc.source.Now().Add(-pc.pausedFor)
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.source.Now()
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.pausedFor += pc.source.Now().Sub(pc.pausedAt)
	pc.paused = false
	pc.pausedAt = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time, including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.pausedFor
	if pc.paused {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}

// GameElapsed returns game time since creation
func (pc *PausableClock) GameElapsed() time.Duration {
	return pc.Now().Sub(pc.epoch)
}
