package engine

import (
	"time"

	"github.com/lixenwraith/term-snake/grid"
)

// DepositView is a deposit as seen by presentation layers
type DepositView struct {
	Pos   grid.Position `json:"pos" msgpack:"p"`
	State DepositState  `json:"state" msgpack:"s"`
	Group GroupID       `json:"group" msgpack:"g"`
	Age   time.Duration `json:"age" msgpack:"a"`
}

// ExplosionView is an explosion marker
type ExplosionView struct {
	Center grid.Position   `json:"center" msgpack:"c"`
	Ring   []grid.Position `json:"ring" msgpack:"r"`
	Frames int             `json:"frames" msgpack:"f"`
}

// AnnotationView is the live floating text
type AnnotationView struct {
	Pos    grid.Position `json:"pos" msgpack:"p"`
	Text   string        `json:"text" msgpack:"t"`
	Frames int           `json:"frames" msgpack:"f"`
}

// Snapshot is a read-only copy of the game for rendering, recording and streaming
type Snapshot struct {
	Tick uint64 `json:"tick" msgpack:"tick"`
	Rows int    `json:"rows" msgpack:"rows"`
	Cols int    `json:"cols" msgpack:"cols"`

	Snake     []grid.Position `json:"snake" msgpack:"snake"`
	Food      grid.Position   `json:"food" msgpack:"food"`
	Direction grid.Direction  `json:"direction" msgpack:"dir"`

	Deposits   []DepositView   `json:"deposits" msgpack:"deposits"`
	Seeds      []grid.Position `json:"seeds,omitempty" msgpack:"seeds,omitempty"`
	Explosions []ExplosionView `json:"explosions,omitempty" msgpack:"explosions,omitempty"`
	Annotation *AnnotationView `json:"annotation,omitempty" msgpack:"annotation,omitempty"`

	Score      int            `json:"score" msgpack:"score"`
	Level      int            `json:"level" msgpack:"level"`
	FoodEaten  int            `json:"foodEaten" msgpack:"eaten"`
	Eating     bool           `json:"eating" msgpack:"eating"`
	ChompPhase int            `json:"chompPhase" msgpack:"chomp"`
	GameOver   bool           `json:"gameOver" msgpack:"over"`
	CrashPoint *grid.Position `json:"crashPoint,omitempty" msgpack:"crash,omitempty"`

	Interval   time.Duration `json:"interval" msgpack:"interval"`
	LevelFlash int           `json:"levelFlash" msgpack:"flash"`
	Elapsed    time.Duration `json:"elapsed" msgpack:"elapsed"`
	Paused     bool          `json:"paused" msgpack:"paused"`
}

// Snapshot copies the current state, deriving deposit states at now
func (g *Game) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Rows:       g.rules.Rows,
		Cols:       g.rules.Cols,
		Snake:      append([]grid.Position(nil), g.snake...),
		Food:       g.food,
		Direction:  g.dir,
		Score:      g.score,
		Level:      g.level,
		FoodEaten:  g.foodEaten,
		Eating:     g.phase == PhaseEating,
		GameOver:   g.phase == PhaseGameOver,
		Interval:   g.speed.Interval(),
		LevelFlash: g.levelFlash,
		Elapsed:    g.Elapsed(),
	}

	if s.Eating {
		s.ChompPhase = g.rules.ChompTotal - g.chomp
	}
	if s.GameOver {
		crash := g.crashPoint
		s.CrashPoint = &crash
	}

	s.Deposits = make([]DepositView, 0, len(g.deposits))
	for _, d := range g.deposits {
		s.Deposits = append(s.Deposits, DepositView{
			Pos:   d.Pos,
			State: g.depositState(d, now),
			Group: d.Group,
			Age:   now.Sub(d.ActivatedAt),
		})
	}

	for _, sd := range g.seeds {
		s.Seeds = append(s.Seeds, sd.Pos)
	}

	for _, e := range g.explosions {
		s.Explosions = append(s.Explosions, ExplosionView{
			Center: e.Center,
			Ring:   append([]grid.Position(nil), e.Ring[:]...),
			Frames: e.Frames,
		})
	}

	if g.annotation != nil {
		a := AnnotationView(*g.annotation)
		s.Annotation = &a
	}
	return s
}

// Occupies reports whether p is a snake cell
func (s Snapshot) Occupies(p grid.Position) bool {
	for _, c := range s.Snake {
		if c == p {
			return true
		}
	}
	return false
}

// DepositAt returns the deposit on p, if any
func (s Snapshot) DepositAt(p grid.Position) (DepositView, bool) {
	for _, d := range s.Deposits {
		if d.Pos == p {
			return d, true
		}
	}
	return DepositView{}, false
}
