package engine

// IdlePolicy counts movement ticks since the last accepted turn
type IdlePolicy struct {
	ticks int
}

// Tick records one movement tick
func (ip *IdlePolicy) Tick() {
	ip.ticks++
}

// Reset clears the counter after a turn or a forced growth
func (ip *IdlePolicy) Reset() {
	ip.ticks = 0
}

// Ticks returns the current idle streak
func (ip *IdlePolicy) Ticks() int {
	return ip.ticks
}

// Due reports whether the idle streak has reached threshold
func (ip *IdlePolicy) Due(threshold int) bool {
	return ip.ticks >= threshold
}
