package engine

import (
	"time"

	"github.com/lixenwraith/term-snake/grid"
)

// TestEpoch is a fixed start time for deterministic tests
var TestEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// NewTestGame creates a game with a hand-placed snake (head first), heading and food
// Intended for tests in this and other packages
func NewTestGame(rules Rules, snake []grid.Position, dir grid.Direction, food grid.Position) *Game {
	g := NewGame(rules, 1)
	g.snake = append(g.snake[:0], snake...)
	g.dir = dir
	g.food = food
	return g
}

// SetFood moves the food marker
func (g *Game) SetFood(p grid.Position) {
	g.food = p
}

// PlaceDeposit adds an active deposit, bypassing the seed queue
func (g *Game) PlaceDeposit(p grid.Position, activatedAt time.Time, group GroupID) {
	g.deposits = append(g.deposits, Deposit{Pos: p, ActivatedAt: activatedAt, Group: group})
}

// OpenGroup registers a ledger of n outstanding deposits and returns its id
func (g *Game) OpenGroup(n int) GroupID {
	g.nextGroup++
	g.groups[g.nextGroup] = n
	return g.nextGroup
}
