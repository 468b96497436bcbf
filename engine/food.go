package engine

import (
	"errors"

	"github.com/lixenwraith/term-snake/grid"
	"github.com/lixenwraith/term-snake/parameter"
)

// ErrNoFreeCell is the panic value when food cannot be placed
var ErrNoFreeCell = errors.New("no free cell for food")

func (g *Game) onSnake(p grid.Position) bool {
	for _, s := range g.snake {
		if s == p {
			return true
		}
	}
	return false
}

func (g *Game) foodCandidate(p grid.Position) bool {
	if g.onSnake(p) || g.depositIndex(p) >= 0 {
		return false
	}
	for _, s := range g.seeds {
		if s.Pos == p {
			return false
		}
	}
	return true
}

// placeFood puts food on a random free cell, falling back to a scan
func (g *Game) placeFood() {
	rows, cols := g.rules.Rows, g.rules.Cols
	for i := 0; i < parameter.FoodPlacementAttempts; i++ {
		p := grid.Position{Row: g.rng.Intn(rows), Col: g.rng.Intn(cols)}
		if g.foodCandidate(p) {
			g.food = p
			return
		}
	}

	// Crowded board: take the first cell that is merely off the snake
	start := g.rng.Intn(rows * cols)
	fallback := -1
	for k := 0; k < rows*cols; k++ {
		idx := (start + k) % (rows * cols)
		p := grid.Position{Row: idx / cols, Col: idx % cols}
		if g.foodCandidate(p) {
			g.food = p
			return
		}
		if fallback < 0 && !g.onSnake(p) {
			fallback = idx
		}
	}
	if fallback < 0 {
		panic(ErrNoFreeCell)
	}
	g.food = grid.Position{Row: fallback / cols, Col: fallback % cols}
}
