package breakout

import (
	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
)

// Paddle is the player's bar. X is the left edge and stays within
// [0, canvasWidth-Width].
type Paddle struct {
	X, Y          float64
	Width, Height float64
	Step          float64 // Keyboard movement per tick
}

// Box returns the paddle bounds.
func (p Paddle) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// clamp keeps the paddle inside a field of the given width.
func (p *Paddle) clamp(fieldW float64) {
	p.X = core.ClampF(p.X, 0, fieldW-p.Width)
}

// Ball is the moving circle. Speed is the canonical |dy| after a paddle bounce.
type Ball struct {
	X, Y   float64
	Radius float64
	DX, DY float64
	Speed  float64
}

// Move advances the ball by its velocity.
func (b *Ball) Move() {
	b.X += b.DX
	b.Y += b.DY
}

// Brick is one grid cell.
type Brick struct {
	X, Y          float64
	Width, Height float64
	Active        bool
}

// Box returns the brick bounds.
func (b Brick) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Grid holds bricks indexed [column][row].
type Grid [][]Brick

// NewGrid builds a fully active grid from the brick layout.
func NewGrid(cfg config.BricksConfig) Grid {
	g := make(Grid, cfg.Columns)
	for c := range cfg.Columns {
		g[c] = make([]Brick, cfg.Rows)
		for r := range cfg.Rows {
			g[c][r] = Brick{
				X:      float64(c)*(cfg.Width+cfg.Padding) + cfg.OffsetLeft,
				Y:      float64(r)*(cfg.Height+cfg.Padding) + cfg.OffsetTop,
				Width:  cfg.Width,
				Height: cfg.Height,
				Active: true,
			}
		}
	}
	return g
}

// CountActive returns the number of bricks still standing.
func (g Grid) CountActive() int {
	n := 0
	for _, column := range g {
		for _, b := range column {
			if b.Active {
				n++
			}
		}
	}
	return n
}

// Size returns the total number of bricks.
func (g Grid) Size() int {
	n := 0
	for _, column := range g {
		n += len(column)
	}
	return n
}
