package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/grid"
)

const (
	glyphSegment   = '●'
	glyphPac       = '█'
	glyphExplosion = '*'
	glyphCrash     = 'X'

	// Rows outside the board: status, two borders, help, message
	chromeRows = 5
	// Columns outside the board: two borders
	chromeCols = 2

	// LevelFlash frames per banner blink
	flashPeriod = 4

	DefaultHelp    = "W/A/S/D to move, P to pause, M to mute, Q to quit."
	GameOverText   = "Game Over. Press Q to exit."
	PausedText     = "Paused. Press P to resume."
	TooSmallFormat = "Terminal too small: need %dx%d"
)

// TerminalRenderer draws snapshots onto a tcell screen
type TerminalRenderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	width  int
	height int
	help   string
}

// NewTerminalRenderer creates a new terminal renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen: screen,
		width:  w,
		height: h,
		help:   DefaultHelp,
	}
}

// Publish implements engine.SnapshotSink
func (r *TerminalRenderer) Publish(s engine.Snapshot) {
	r.RenderFrame(s)
}

// UpdateDimensions records a new terminal size
func (r *TerminalRenderer) UpdateDimensions(width, height int) {
	r.mu.Lock()
	r.width = width
	r.height = height
	r.mu.Unlock()
}

// SetHelp replaces the key hint line
func (r *TerminalRenderer) SetHelp(text string) {
	r.mu.Lock()
	r.help = text
	r.mu.Unlock()
}

// Origin returns the screen cell of board (0,0)
func (r *TerminalRenderer) Origin(s engine.Snapshot) (x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.origin(s)
}

func (r *TerminalRenderer) origin(s engine.Snapshot) (x, y int) {
	x = (r.width-(s.Cols+chromeCols))/2 + 1
	if x < 1 {
		x = 1
	}
	return x, 2
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame(s engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)

	if r.width < s.Cols+chromeCols || r.height < s.Rows+chromeRows {
		r.drawText(0, 0, fmt.Sprintf(TooSmallFormat, s.Cols+chromeCols, s.Rows+chromeRows), defaultStyle.Foreground(RgbGameOver))
		r.screen.Show()
		return
	}

	ox, oy := r.origin(s)

	r.drawStatusBar(s, defaultStyle)
	r.drawBorder(s, ox, oy, defaultStyle)
	r.drawField(s, ox, oy)
	r.drawDeposits(s, ox, oy)
	r.drawFood(s, ox, oy)
	r.drawSnake(s, ox, oy)
	r.drawExplosions(s, ox, oy)
	r.drawPac(s, ox, oy)
	r.drawAnnotation(s, ox, oy)
	r.drawBanner(s, ox, oy)

	footerY := oy + s.Rows + 1
	r.drawText(ox-1, footerY, r.help, defaultStyle.Foreground(RgbStatusDim))
	switch {
	case s.GameOver:
		r.drawText(ox-1, footerY+1, GameOverText, defaultStyle.Foreground(RgbGameOver).Bold(true))
	case s.Paused:
		r.drawText(ox-1, footerY+1, PausedText, defaultStyle.Foreground(RgbPaused))
	}

	r.screen.Show()
}

// StatusLine formats the score line above the board
func StatusLine(s engine.Snapshot) string {
	line := fmt.Sprintf("Score: %d  Level: %d  Length: %d  Speed: %dms  Time: %s",
		s.Score, s.Level, len(s.Snake), s.Interval.Milliseconds(), formatElapsed(s.Elapsed))
	if s.Eating {
		line += "   (CHOMP!)"
	}
	if len(s.Seeds) > 0 {
		line += "   (Dropping...)"
	}
	return line
}

func formatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (r *TerminalRenderer) drawStatusBar(s engine.Snapshot, defaultStyle tcell.Style) {
	r.drawText(0, 0, StatusLine(s), defaultStyle.Foreground(RgbStatusText))
}

func (r *TerminalRenderer) drawBorder(s engine.Snapshot, ox, oy int, defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbBorder)
	top, bottom := oy-1, oy+s.Rows
	left, right := ox-1, ox+s.Cols

	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, '-', nil, style)
		r.screen.SetContent(x, bottom, '-', nil, style)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, '|', nil, style)
		r.screen.SetContent(right, y, '|', nil, style)
	}
	for _, c := range [][2]int{{left, top}, {right, top}, {left, bottom}, {right, bottom}} {
		r.screen.SetContent(c[0], c[1], '+', nil, style)
	}
}

func (r *TerminalRenderer) drawField(s engine.Snapshot, ox, oy int) {
	style := tcell.StyleDefault.Background(RgbField)
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			r.screen.SetContent(ox+col, oy+row, ' ', nil, style)
		}
	}
}

func (r *TerminalRenderer) cell(ox, oy int, p grid.Position, ch rune, fg tcell.Color) {
	r.screen.SetContent(ox+p.Col, oy+p.Row, ch, nil, tcell.StyleDefault.Background(RgbField).Foreground(fg))
}

func (r *TerminalRenderer) drawDeposits(s engine.Snapshot, ox, oy int) {
	for _, d := range s.Deposits {
		color := RgbDepositFresh
		if d.State == engine.DepositArmed {
			color = RgbDepositArmed
		}
		r.cell(ox, oy, d.Pos, glyphSegment, color)
	}
}

func (r *TerminalRenderer) drawFood(s engine.Snapshot, ox, oy int) {
	r.cell(ox, oy, s.Food, glyphSegment, RgbFood)
}

// drawSnake paints tail first so the head wins on overlap
func (r *TerminalRenderer) drawSnake(s engine.Snapshot, ox, oy int) {
	n := len(s.Snake)
	for i := n - 1; i >= 0; i-- {
		r.cell(ox, oy, s.Snake[i], glyphSegment, snakeColor(i, n))
	}
	if s.CrashPoint != nil {
		r.cell(ox, oy, *s.CrashPoint, glyphCrash, RgbGameOver)
	}
}

func (r *TerminalRenderer) drawExplosions(s engine.Snapshot, ox, oy int) {
	for _, e := range s.Explosions {
		for _, p := range e.Ring {
			r.cell(ox, oy, p, glyphExplosion, RgbExplosion)
		}
		r.cell(ox, oy, e.Center, glyphExplosion, RgbExplosionCore)
	}
}

func (r *TerminalRenderer) drawPac(s engine.Snapshot, ox, oy int) {
	if !s.Eating || len(s.Snake) == 0 {
		return
	}
	head := s.Snake[0]
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			p := grid.Wrap(grid.Position{Row: head.Row + dr, Col: head.Col + dc}, s.Rows, s.Cols)
			if PacOverlay(s, p) {
				r.cell(ox, oy, p, glyphPac, RgbPac)
			}
		}
	}
}

// drawAnnotation clips text at the right border
func (r *TerminalRenderer) drawAnnotation(s engine.Snapshot, ox, oy int) {
	a := s.Annotation
	if a == nil {
		return
	}
	style := tcell.StyleDefault.Background(RgbField).Foreground(RgbAnnotation).Bold(true)
	col := a.Pos.Col
	for _, ch := range a.Text {
		if col >= s.Cols {
			break
		}
		r.screen.SetContent(ox+col, oy+a.Pos.Row, ch, nil, style)
		col++
	}
}

func (r *TerminalRenderer) drawBanner(s engine.Snapshot, ox, oy int) {
	var text string
	var style tcell.Style
	switch {
	case s.GameOver:
		text = " GAME OVER "
		style = tcell.StyleDefault.Background(RgbGameOver).Foreground(RgbStatusText).Bold(true)
	case s.Paused:
		text = " PAUSED "
		style = tcell.StyleDefault.Background(RgbPaused).Foreground(RgbBackground).Bold(true)
	case s.LevelFlash > 0:
		if (s.LevelFlash/flashPeriod)%2 == 1 {
			return
		}
		text = fmt.Sprintf(" LEVEL %d! ", s.Level)
		style = tcell.StyleDefault.Background(RgbLevelBanner).Foreground(RgbBackground).Bold(true)
	default:
		return
	}
	x := ox + (s.Cols-len(text))/2
	if x < ox {
		x = ox
	}
	r.drawText(x, oy+s.Rows/2, text, style)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= r.width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
