package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/grid"
)

// DepositState is derived from a deposit's age
type DepositState int

const (
	DepositFresh DepositState = iota
	DepositArmed
	DepositExpired
)

func (s DepositState) String() string {
	switch s {
	case DepositFresh:
		return "fresh"
	case DepositArmed:
		return "armed"
	case DepositExpired:
		return "expired"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler
func (s DepositState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *DepositState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "fresh":
		*s = DepositFresh
	case "armed":
		*s = DepositArmed
	case "expired":
		*s = DepositExpired
	default:
		return fmt.Errorf("unknown deposit state %q", b)
	}
	return nil
}

// GroupID identifies the batch of deposits dropped after one food
// Zero means no group
type GroupID uint64

// DepositSeed is a deposit waiting for its cell to be free
type DepositSeed struct {
	Pos   grid.Position
	Group GroupID
}

// Deposit is an active timed consumable
type Deposit struct {
	Pos         grid.Position
	ActivatedAt time.Time
	Penalized   bool
	Group       GroupID
}

// StateAt derives the lifecycle state at now
func (d Deposit) StateAt(now time.Time, fresh, armed time.Duration) DepositState {
	age := now.Sub(d.ActivatedAt)
	switch {
	case age < fresh:
		return DepositFresh
	case age < fresh+armed:
		return DepositArmed
	}
	return DepositExpired
}

func (g *Game) depositState(d Deposit, now time.Time) DepositState {
	return d.StateAt(now, g.rules.FreshWindow, g.rules.ArmedWindow)
}

func (g *Game) depositIndex(p grid.Position) int {
	for i := range g.deposits {
		if g.deposits[i].Pos == p {
			return i
		}
	}
	return -1
}

// ageAll removes expired deposits, each with one penalty
func (g *Game) ageAll(now time.Time) {
	kept := g.deposits[:0]
	for _, d := range g.deposits {
		if g.depositState(d, now) != DepositExpired {
			kept = append(kept, d)
			continue
		}
		if d.Penalized {
			continue
		}
		d.Penalized = true

		g.pendingGrowth += g.rules.PenaltyGrowth
		g.speed.RequestGrowth(1)
		g.spawnExplosion(d.Pos)
		g.forgetGroup(d.Group)
		g.sound.queue(core.SoundExplosion)
		g.flags |= EvExpired
	}
	g.deposits = kept
}

// activateSeeds turns seeds whose cell is clear into fresh deposits
func (g *Game) activateSeeds(now time.Time) {
	landed := 0
	pending := g.seeds[:0]
	for _, s := range g.seeds {
		if g.onSnake(s.Pos) || g.depositIndex(s.Pos) >= 0 {
			pending = append(pending, s)
			continue
		}
		g.deposits = append(g.deposits, Deposit{Pos: s.Pos, ActivatedAt: now, Group: s.Group})
		g.spawnAnnotation(s.Pos)
		landed++
	}
	g.seeds = pending

	if landed > 0 {
		g.sound.queue(core.SoundPlop)
		g.flags |= EvSeedLanded
	}
}

// depositMeal is the result of the head entering a deposit cell
type depositMeal struct {
	state  DepositState
	shrink int
}

// eatDepositAt consumes the deposit at p, if any
func (g *Game) eatDepositAt(p grid.Position, now time.Time) (depositMeal, bool) {
	i := g.depositIndex(p)
	if i < 0 {
		return depositMeal{}, false
	}
	d := g.deposits[i]
	g.deposits = append(g.deposits[:i], g.deposits[i+1:]...)

	meal := depositMeal{state: g.depositState(d, now)}
	if meal.state != DepositFresh {
		g.forgetGroup(d.Group)
		g.sound.queue(core.SoundDisarm)
		g.flags |= EvAteArmed
		return meal, true
	}

	g.flags |= EvAteFresh
	left, ok := g.groups[d.Group]
	if !ok {
		g.sound.queue(core.SoundGulp)
		return meal, true
	}
	left--
	if left > 0 {
		g.groups[d.Group] = left
		g.sound.queue(core.SoundGulp)
		return meal, true
	}

	delete(g.groups, d.Group)
	g.sound.queue(core.RewardSounds[g.rewardCursor%len(core.RewardSounds)])
	g.rewardCursor++
	g.speed.RequestReward()
	g.flags |= EvGroupComplete
	meal.shrink = g.rules.RewardShrink
	return meal, true
}

// forgetGroup drops a ledger entry that can no longer reach zero
func (g *Game) forgetGroup(id GroupID) {
	if id == 0 {
		return
	}
	delete(g.groups, id)
}

// startDropSequence opens a new group for the deposits that follow a food
func (g *Game) startDropSequence() {
	if g.dropsLeft > 0 {
		g.forgetGroup(g.dropGroup)
	}
	if g.rules.DepositBatch == 0 {
		g.dropGroup, g.dropsLeft = 0, 0
		return
	}
	g.nextGroup++
	g.dropGroup = g.nextGroup
	g.dropsLeft = g.rules.DepositBatch
	g.groups[g.dropGroup] = g.rules.DepositBatch
}

// dropSeed queues one seed of the running sequence at p
func (g *Game) dropSeed(p grid.Position) {
	if g.dropsLeft <= 0 {
		return
	}
	g.seeds = append(g.seeds, DepositSeed{Pos: p, Group: g.dropGroup})
	g.dropsLeft--
	if g.dropsLeft == 0 {
		g.dropGroup = 0
	}
}
