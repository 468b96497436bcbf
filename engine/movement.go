package engine

import (
	"time"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/grid"
)

func (g *Game) nextHead() grid.Position {
	return grid.Advance(g.snake[0], g.dir, g.rules.Rows, g.rules.Cols)
}

func (g *Game) pushHead(p grid.Position) {
	g.snake = append(g.snake, grid.Position{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = p
}

func (g *Game) popTail() grid.Position {
	tail := g.snake[len(g.snake)-1]
	g.snake = g.snake[:len(g.snake)-1]
	return tail
}

// shrink removes up to n tail segments, never below the minimum length
func (g *Game) shrink(n int) {
	removed := 0
	for ; removed < n && len(g.snake) > g.rules.MinLength; removed++ {
		g.popTail()
	}
	if removed > 0 {
		g.flags |= EvShrank
	}
}

func (g *Game) gameOver(at grid.Position) {
	g.phase = PhaseGameOver
	g.crashPoint = at
	g.sound.queue(core.SoundCrash)
	g.flags |= EvGameOver
}

// move runs one normal tick: food check, collision, then growth precedence
func (g *Game) move(now time.Time) {
	next := g.nextHead()

	if next == g.food {
		g.phase = PhaseEating
		g.chomp = g.rules.ChompTotal
		g.flags |= EvGulpStarted
		return
	}

	// Collision precedes every growth decision
	if g.onSnake(next) {
		g.gameOver(next)
		return
	}

	g.idle.Tick()
	g.pushHead(next)
	g.flags |= EvMoved

	grew := false
	meal, ate := g.eatDepositAt(next, now)
	switch {
	case ate:
		grew = meal.state == DepositFresh
	case g.pendingGrowth > 0:
		g.pendingGrowth--
		grew = true
	case g.idle.Due(g.rules.IdleThreshold(g.level)):
		g.idle.Reset()
		g.speed.RequestGrowth(1)
		g.flags |= EvIdleBloat
		grew = true
	}

	var vacated grid.Position
	if grew {
		g.flags |= EvGrew
	} else {
		vacated = g.popTail()
	}

	switch {
	case ate:
		g.dropSeed(next)
	case !grew:
		g.dropSeed(vacated)
	default:
		g.dropSeed(g.snake[len(g.snake)-1])
	}

	if meal.shrink > 0 {
		g.shrink(meal.shrink)
	}
}

// chew counts down the gulp and completes it on the last frame
func (g *Game) chew(now time.Time) {
	g.chomp--
	if g.chomp > 0 {
		return
	}

	// Heading may have changed during the gulp
	next := g.nextHead()
	if g.onSnake(next) {
		g.gameOver(next)
		return
	}

	g.phase = PhasePlaying
	g.pushHead(next)
	g.flags |= EvMoved | EvGrew | EvScored

	meal, ate := g.eatDepositAt(next, now)

	g.score += g.rules.FoodScore
	g.foodEaten++
	g.sound.queue(core.BiteSounds[g.rng.Intn(len(core.BiteSounds))])

	if lvl := g.score/g.rules.LevelScore + 1; lvl > g.level {
		g.level = lvl
		g.levelFlash = g.rules.LevelFlashFrames
		g.speed.RequestLevelUp()
		g.sound.queue(core.SoundLevelUp)
		g.flags |= EvLevelUp
	}

	if ate && meal.shrink > 0 {
		g.shrink(meal.shrink)
	}

	g.placeFood()
	g.startDropSequence()
}
