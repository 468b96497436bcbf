package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)   // Tokyo Night background
	RgbBorder     = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbField      = tcell.NewRGBColor(0, 0, 139)     // Dark blue playfield

	RgbSnakeHead = tcell.NewRGBColor(120, 255, 120) // Bright green
	RgbSnakeBody = tcell.NewRGBColor(50, 220, 50)   // Green, darkened toward the tail
	RgbPac       = tcell.NewRGBColor(80, 255, 80)   // Gulp overlay

	RgbFood          = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbDepositFresh  = tcell.NewRGBColor(139, 90, 43)   // Brown
	RgbDepositArmed  = tcell.NewRGBColor(220, 40, 40)   // Red
	RgbExplosion     = tcell.NewRGBColor(255, 140, 0)   // Orange
	RgbExplosionCore = tcell.NewRGBColor(255, 255, 200) // Yellow-white flash
	RgbAnnotation    = tcell.NewRGBColor(255, 255, 255) // White

	RgbStatusText  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusDim   = tcell.NewRGBColor(140, 140, 140) // Gray hints
	RgbLevelBanner = tcell.NewRGBColor(255, 215, 0)   // Gold
	RgbGameOver    = tcell.NewRGBColor(255, 0, 0)     // Error red
	RgbPaused      = tcell.NewRGBColor(135, 206, 250) // Light sky blue
)

// Scale darkens or brightens c by factor
func Scale(c tcell.Color, factor float64) tcell.Color {
	r, g, b := c.RGB()
	clamp := func(v float64) int32 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return int32(v)
	}
	return tcell.NewRGBColor(clamp(float64(r)*factor), clamp(float64(g)*factor), clamp(float64(b)*factor))
}

// snakeColor shades segment i of n from bright at the head to dark at the tail
func snakeColor(i, n int) tcell.Color {
	if i == 0 {
		return RgbSnakeHead
	}
	if n <= 1 {
		return RgbSnakeBody
	}
	t := float64(i) / float64(n-1)
	return Scale(RgbSnakeBody, 1.0-0.45*t)
}
