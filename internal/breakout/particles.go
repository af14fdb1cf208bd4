package breakout

import (
	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
)

// Particle is a fading spark spawned when a brick breaks.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Alpha  float64
	Decay  float64
	Color  core.Color
}

// Advance moves the particle and fades it by one tick.
func (p *Particle) Advance() {
	p.X += p.VX
	p.Y += p.VY
	p.Alpha -= p.Decay
}

// Expired reports whether the particle has faded out.
func (p Particle) Expired() bool {
	return p.Alpha <= 0
}

// AdvanceParticles advances every particle and drops expired ones.
// The slice is filtered in place.
func AdvanceParticles(ps []Particle) []Particle {
	live := ps[:0]
	for i := range ps {
		ps[i].Advance()
		if !ps[i].Expired() {
			live = append(live, ps[i])
		}
	}
	return live
}

// Burst creates cfg.Burst fresh particles at (x, y) with random radius and
// velocity.
func Burst(rng *SimpleRNG, cfg config.ParticlesConfig, x, y float64) []Particle {
	ps := make([]Particle, cfg.Burst)
	for i := range ps {
		ps[i] = Particle{
			X:      x,
			Y:      y,
			Radius: cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius),
			VX:     (rng.Float64() - 0.5) * 2 * cfg.MaxSpeed,
			VY:     (rng.Float64() - 0.5) * 2 * cfg.MaxSpeed,
			Alpha:  1,
			Decay:  cfg.Decay,
			Color:  cfg.Color,
		}
	}
	return ps
}
