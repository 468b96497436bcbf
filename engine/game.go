package engine

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/lixenwraith/term-snake/grid"
)

// Phase is the game-level state machine
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseEating
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhaseEating:
		return "Eating"
	case PhaseGameOver:
		return "GameOver"
	}
	return "Unknown"
}

// Input is what the input collaborator delivers for one tick
type Input struct {
	Turn grid.Direction // DirNone for no turn
}

// Game is the complete simulation state
// Not safe for concurrent use; owned by a single tick loop
type Game struct {
	rules Rules
	rng   *rand.Rand

	snake []grid.Position // head first
	dir   grid.Direction
	food  grid.Position

	phase      Phase
	chomp      int
	crashPoint grid.Position

	score      int
	level      int
	foodEaten  int
	levelFlash int

	seeds         []DepositSeed
	deposits      []Deposit
	groups        map[GroupID]int
	nextGroup     GroupID
	dropGroup     GroupID
	dropsLeft     int
	pendingGrowth int
	rewardCursor  int

	explosions []Explosion
	annotation *Annotation

	speed *SpeedController
	idle  IdlePolicy
	sound soundSlot
	flags EventFlag

	tick      uint64
	startedAt time.Time
	lastNow   time.Time
}

// NewGame creates a game with a centred snake heading right
// Panics if rules are invalid
func NewGame(rules Rules, seed uint64) *Game {
	if err := rules.Validate(); err != nil {
		panic(err)
	}

	g := &Game{
		rules:  rules,
		rng:    rand.New(rand.NewSource(seed)),
		dir:    grid.Right,
		level:  1,
		groups: make(map[GroupID]int),
		speed:  NewSpeedController(rules),
	}

	r, c := rules.Rows/2, rules.Cols/2
	g.snake = make([]grid.Position, 0, rules.MinLength*4)
	for i := 0; i < rules.MinLength; i++ {
		g.snake = append(g.snake, grid.Wrap(grid.Position{Row: r, Col: c - i}, rules.Rows, rules.Cols))
	}
	g.placeFood()
	return g
}

// Update advances the game by one tick at game time now
func (g *Game) Update(now time.Time, in Input) Events {
	if g.phase == PhaseGameOver {
		return Events{Tick: g.tick, Snapshot: g.Snapshot(now)}
	}
	if g.startedAt.IsZero() {
		g.startedAt = now
	}
	g.lastNow = now
	g.tick++
	g.flags = 0

	if in.Turn != grid.DirNone && g.Turn(in.Turn) {
		g.flags |= EvTurned
	}

	g.tickEffects()
	g.ageAll(now)
	g.activateSeeds(now)

	if g.phase == PhaseEating {
		g.chew(now)
	} else {
		g.move(now)
	}

	g.speed.Apply()

	return Events{
		Tick:     g.tick,
		Sound:    g.sound.take(),
		Flags:    g.flags,
		Snapshot: g.Snapshot(now),
	}
}

// Turn changes heading; reversals and repeats are rejected
func (g *Game) Turn(d grid.Direction) bool {
	if g.phase == PhaseGameOver || !d.Valid() || d == g.dir || d == g.dir.Opposite() {
		return false
	}
	g.dir = d
	g.idle.Reset()
	return true
}

// TickInterval is the delay until the next tick
func (g *Game) TickInterval() time.Duration {
	return g.speed.Interval()
}

func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Over() bool { return g.phase == PhaseGameOver }
func (g *Game) Score() int { return g.score }
func (g *Game) Level() int { return g.level }
func (g *Game) FoodEaten() int { return g.foodEaten }
func (g *Game) Length() int { return len(g.snake) }
func (g *Game) Head() grid.Position { return g.snake[0] }
func (g *Game) Food() grid.Position { return g.food }
func (g *Game) Direction() grid.Direction { return g.dir }
func (g *Game) Rules() Rules { return g.rules }

// Elapsed is game time since the first tick
func (g *Game) Elapsed() time.Duration {
	if g.startedAt.IsZero() {
		return 0
	}
	return g.lastNow.Sub(g.startedAt)
}
