package engine

import "github.com/lixenwraith/term-snake/grid"

// Explosion marks where a deposit expired, cosmetic only
type Explosion struct {
	Center grid.Position
	Ring   [8]grid.Position
	Frames int
}

// Annotation is the floating text shown when a deposit lands
type Annotation struct {
	Pos    grid.Position
	Text   string
	Frames int
}

func (g *Game) spawnExplosion(p grid.Position) {
	if g.rules.ExplosionFrames <= 0 {
		return
	}
	g.explosions = append(g.explosions, Explosion{
		Center: p,
		Ring:   grid.Ring(p, g.rules.Rows, g.rules.Cols),
		Frames: g.rules.ExplosionFrames,
	})
}

// spawnAnnotation is a no-op while another annotation is live
func (g *Game) spawnAnnotation(p grid.Position) {
	if g.annotation != nil || g.rules.AnnotationFrames <= 0 {
		return
	}
	g.annotation = &Annotation{Pos: p, Text: g.rules.AnnotationText, Frames: g.rules.AnnotationFrames}
}

// tickEffects counts down cosmetic markers before new ones can spawn this tick
func (g *Game) tickEffects() {
	live := g.explosions[:0]
	for _, e := range g.explosions {
		e.Frames--
		if e.Frames > 0 {
			live = append(live, e)
		}
	}
	g.explosions = live

	if g.annotation != nil {
		g.annotation.Frames--
		if g.annotation.Frames <= 0 {
			g.annotation = nil
		}
	}

	if g.levelFlash > 0 {
		g.levelFlash--
	}
}
