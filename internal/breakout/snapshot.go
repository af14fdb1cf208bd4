package breakout

import "math"

// Snapshot captures the full simulation state for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick     uint64
	Score    int
	Running  bool
	GameOver bool
	Outcome  Outcome

	PaddleX float64
	BallX   float64
	BallY   float64
	BallDX  float64
	BallDY  float64

	// Brick states flattened column-major, true when active
	Bricks []bool

	// Each particle is 4 floats: X, Y, Radius, Alpha
	ParticleCount int
	ParticleData  []float64

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bricks := make([]bool, 0, g.bricks.Size())
	for _, column := range g.bricks {
		for _, b := range column {
			bricks = append(bricks, b.Active)
		}
	}

	particleData := make([]float64, 0, len(g.particles)*4)
	for _, p := range g.particles {
		particleData = append(particleData, p.X, p.Y, p.Radius, p.Alpha)
	}

	return Snapshot{
		Tick:          g.tick,
		Score:         g.score,
		Running:       g.running,
		GameOver:      g.gameOver,
		Outcome:       g.outcome,
		PaddleX:       g.paddle.X,
		BallX:         g.ball.X,
		BallY:         g.ball.Y,
		BallDX:        g.ball.DX,
		BallDY:        g.ball.DY,
		Bricks:        bricks,
		ParticleCount: len(g.particles),
		ParticleData:  particleData,
		RNGState:      g.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Outcome)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ParticleCount) //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.Running)
	h = h*31 + boolBit(snap.GameOver)

	for _, v := range []float64{snap.PaddleX, snap.BallX, snap.BallY, snap.BallDX, snap.BallDY} {
		h = h*31 + math.Float64bits(v)
	}

	for _, active := range snap.Bricks {
		h = h*31 + boolBit(active)
	}

	for _, v := range snap.ParticleData {
		h = h*31 + math.Float64bits(v)
	}

	h = h*31 + snap.RNGState

	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
