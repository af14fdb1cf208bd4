package core

import (
	"math"
	"unicode/utf8"
)

// Align selects how Text positions a string relative to its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Glyphs used when rasterizing shapes onto cells.
const (
	GlyphSolid   = '█'
	GlyphCircle  = '●'
	GlyphDot     = '•'
	GlyphFaint   = '·'
	GlyphOutline = '▒'
)

// Canvas draws shapes given in a fixed logical resolution onto a Screen.
// Logical coordinates are scaled independently on each axis so the whole
// logical area always fills the screen.
type Canvas struct {
	screen  *Screen
	logical Box
	alpha   float64
}

// NewCanvas creates a canvas mapping a logicalW x logicalH area onto screen.
func NewCanvas(screen *Screen, logicalW, logicalH float64) *Canvas {
	return &Canvas{
		screen:  screen,
		logical: Box{W: logicalW, H: logicalH},
		alpha:   1,
	}
}

// Screen returns the underlying cell buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// cellW returns the logical width of one screen column.
func (c *Canvas) cellW() float64 {
	if c.screen.Width() == 0 {
		return 1
	}
	return c.logical.W / float64(c.screen.Width())
}

// cellH returns the logical height of one screen row.
func (c *Canvas) cellH() float64 {
	if c.screen.Height() == 0 {
		return 1
	}
	return c.logical.H / float64(c.screen.Height())
}

// ToCell converts a logical point to the screen cell containing it.
func (c *Canvas) ToCell(x, y float64) (int, int) {
	return int(math.Floor(x / c.cellW())), int(math.Floor(y / c.cellH()))
}

// ToLogicalX converts a screen column to the logical x of its center.
func (c *Canvas) ToLogicalX(col int) float64 {
	return (float64(col) + 0.5) * c.cellW()
}

// span converts a logical interval to an inclusive cell range.
// Edges are rounded so adjacent shapes separated by padding do not share cells,
// and every shape covers at least one cell.
func span(start, length, cell float64) (int, int) {
	first := int(math.Round(start / cell))
	last := int(math.Round((start+length)/cell)) - 1
	if last < first {
		last = first
	}
	return first, last
}

// cellRect converts a logical box to a screen rect.
func (c *Canvas) cellRect(x, y, w, h float64) Rect {
	x0, x1 := span(x, w, c.cellW())
	y0, y1 := span(y, h, c.cellH())
	return NewRect(x0, y0, x1-x0+1, y1-y0+1)
}

// Clear wipes the whole surface.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// FillRect fills a logical rectangle. Under reduced opacity the area
// underneath is dimmed instead of overwritten.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	r := c.cellRect(x, y, w, h)
	if c.alpha < 1 {
		c.screen.Dim(r)
		return
	}
	c.screen.FillRect(r, GlyphSolid, col)
}

// StrokeRect outlines a logical rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64, col Color) {
	r := c.cellRect(x, y, w, h)
	if r.W < 3 {
		return
	}
	for cy := r.Y; cy < r.Bottom(); cy++ {
		c.screen.SetCell(r.X, cy, GlyphOutline, col)
		c.screen.SetCell(r.Right()-1, cy, GlyphOutline, col)
	}
}

// FillCircle draws a disc. Small discs collapse to a single glyph whose weight
// follows the current opacity.
func (c *Canvas) FillCircle(x, y, radius float64, col Color) {
	glyph := c.alphaGlyph()
	if glyph == 0 {
		return
	}

	cw, ch := c.cellW(), c.cellH()
	if radius*2 < cw && radius*2 < ch {
		cx, cy := c.ToCell(x, y)
		c.screen.SetCell(cx, cy, glyph, col)
		return
	}

	x0, y0 := c.ToCell(x-radius, y-radius)
	x1, y1 := c.ToCell(x+radius, y+radius)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			dx := (float64(cx)+0.5)*cw - x
			dy := (float64(cy)+0.5)*ch - y
			if dx*dx+dy*dy <= radius*radius {
				c.screen.SetCell(cx, cy, glyph, col)
			}
		}
	}
	// Always mark the center so the disc never vanishes between cell centers.
	cx, cy := c.ToCell(x, y)
	c.screen.SetCell(cx, cy, glyph, col)
}

// alphaGlyph picks a glyph for the current opacity, or 0 when invisible.
func (c *Canvas) alphaGlyph() rune {
	switch {
	case c.alpha <= 0:
		return 0
	case c.alpha >= 0.66:
		return GlyphCircle
	case c.alpha >= 0.33:
		return GlyphDot
	default:
		return GlyphFaint
	}
}

// Text writes a string at logical (x, y).
func (c *Canvas) Text(x, y float64, text string, col Color, align Align) {
	cx, cy := c.ToCell(x, y)
	if align == AlignCenter {
		cx -= utf8.RuneCountInString(text) / 2
	}
	c.screen.DrawTextColor(cx, cy, text, col)
}

// WithAlpha runs draw with the given opacity and restores the previous one.
func (c *Canvas) WithAlpha(alpha float64, draw func()) {
	prev := c.alpha
	c.alpha = ClampF(alpha, 0, 1)
	defer func() { c.alpha = prev }()
	draw()
}
