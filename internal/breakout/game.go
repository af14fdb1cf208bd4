// Package breakout implements the brick breaker simulation: a paddle, one
// ball, a fixed brick grid and particle bursts in an 800x600 logical field.
package breakout

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
)

// Colors used when drawing.
const (
	PaddleColor      = core.ColorBlue
	BallColor        = core.ColorRed
	BrickColor       = core.ColorPurple
	BrickEdgeColor   = core.ColorMagenta
	OverlayTextColor = core.ColorBrightWhite
)

// Overlay text.
const (
	WinMessage  = "YOU WIN!"
	LoseMessage = "GAME OVER"
	ReplayHint  = "Press N to play again"
)

// Outcome is how a game ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

// String returns the name stored in game history.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return "none"
	}
}

// Message returns the overlay headline for the outcome.
func (o Outcome) Message() string {
	if o == OutcomeWin {
		return WinMessage
	}
	return LoseMessage
}

// Surface is the drawing target, in logical coordinates.
type Surface interface {
	Clear()
	FillRect(x, y, w, h float64, c core.Color)
	StrokeRect(x, y, w, h float64, c core.Color)
	FillCircle(x, y, radius float64, c core.Color)
	Text(x, y float64, text string, c core.Color, align core.Align)
	WithAlpha(alpha float64, draw func())
}

// Recorder stores a named score.
type Recorder interface {
	AddEntry(name string, score int) error
}

// GameOver is the follow-up work of a finished game. The driver waits Delay,
// asks the player for a name and then calls Resolve.
type GameOver struct {
	Outcome Outcome
	Score   int
	Delay   time.Duration
}

// Resolve records the score under the trimmed name. A blank name records
// nothing. The bool reports whether an entry was written.
func (o GameOver) Resolve(name string, rec Recorder) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || rec == nil {
		return false, nil
	}
	if err := rec.AddEntry(name, o.Score); err != nil {
		return true, err
	}
	return true, nil
}

// Game owns the whole simulation state of one session.
type Game struct {
	cfg    config.BreakerConfig
	logger *log.Logger
	rng    *SimpleRNG

	paddle    Paddle
	ball      Ball
	bricks    Grid
	particles []Particle

	score    int
	running  bool
	gameOver bool
	outcome  Outcome
	tick     uint64
	pending  *GameOver
}

// New creates a running game. The first launch uses the configured initial dx;
// later resets draw a random one from the seeded RNG.
func New(cfg config.BreakerConfig, seed int64, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		cfg:    cfg,
		logger: logger,
		rng:    NewSimpleRNG(seed),
	}
	g.start(cfg.Ball.InitialDX)
	return g
}

// Reset starts a new game with a fresh grid and a random launch direction.
func (g *Game) Reset() {
	maxDX := g.cfg.Ball.MaxLaunchDX
	g.start((g.rng.Float64() - 0.5) * 2 * maxDX)
	g.logger.Debug("game reset", "dx", g.ball.DX)
}

func (g *Game) start(dx float64) {
	cfg := g.cfg
	g.paddle = Paddle{
		X:      (cfg.Canvas.Width - cfg.Paddle.Width) / 2,
		Y:      cfg.PaddleY(),
		Width:  cfg.Paddle.Width,
		Height: cfg.Paddle.Height,
		Step:   cfg.Paddle.Step,
	}
	g.ball = Ball{
		X:      cfg.Canvas.Width / 2,
		Y:      g.paddle.Y - cfg.Ball.Radius,
		Radius: cfg.Ball.Radius,
		DX:     dx,
		DY:     -cfg.Ball.Speed,
		Speed:  cfg.Ball.Speed,
	}
	g.bricks = NewGrid(cfg.Bricks)
	g.particles = g.particles[:0]
	g.score = 0
	g.running = true
	g.gameOver = false
	g.outcome = OutcomeNone
	g.tick = 0
	g.pending = nil
}

// Step advances the simulation by one tick. Once the game has ended it does
// nothing and reports Continue=false; only Reset brings it back.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.running {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	g.particles = AdvanceParticles(g.particles)
	g.movePaddle(in)

	hits := StepBall(&g.ball, g.paddle, g.bricks, g.cfg.Canvas.Width)
	for _, h := range hits {
		g.score++
		g.particles = append(g.particles, Burst(g.rng, g.cfg.Particles, h.X, h.Y)...)
	}

	// A clearing hit on the last brick wins even if the ball also dropped out.
	switch {
	case g.score == g.bricks.Size():
		g.end(OutcomeWin)
	case fellOut(&g.ball, g.cfg.Canvas.Height):
		g.end(OutcomeLose)
	}

	return core.StepResult{State: g.State(), Continue: g.running}
}

// movePaddle applies the pointer, then the held keys, then clamps.
func (g *Game) movePaddle(in core.InputFrame) {
	w := g.cfg.Canvas.Width
	if in.HasPointer && in.PointerX > 0 && in.PointerX < w {
		g.paddle.X = in.PointerX - g.paddle.Width/2
	}

	switch {
	case in.Has(core.ActionRight) && g.paddle.X < w-g.paddle.Width:
		g.paddle.X += g.paddle.Step
	case in.Has(core.ActionLeft) && g.paddle.X > 0:
		g.paddle.X -= g.paddle.Step
	}

	g.paddle.clamp(w)
}

func (g *Game) end(outcome Outcome) {
	g.running = false
	g.gameOver = true
	g.outcome = outcome
	g.pending = &GameOver{
		Outcome: outcome,
		Score:   g.score,
		Delay:   g.cfg.Leaderboard.PromptDelay,
	}
	g.logger.Info("game over", "outcome", outcome, "score", g.score, "ticks", g.tick)
}

// TakeGameOver hands out the follow-up of a finished game exactly once.
func (g *Game) TakeGameOver() (GameOver, bool) {
	if g.pending == nil {
		return GameOver{}, false
	}
	task := *g.pending
	g.pending = nil
	return task, true
}

// State returns the externally visible state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Running:  g.running,
		GameOver: g.gameOver,
	}
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Outcome returns how the game ended, or OutcomeNone while running.
func (g *Game) Outcome() Outcome { return g.outcome }

// Running reports whether ticks still advance the game.
func (g *Game) Running() bool { return g.running }

// Paddle returns a copy of the paddle.
func (g *Game) Paddle() Paddle { return g.paddle }

// Ball returns a copy of the ball.
func (g *Game) Ball() Ball { return g.ball }

// Particles returns the live particles. The slice must not be modified.
func (g *Game) Particles() []Particle { return g.particles }

// BricksLeft returns the number of active bricks.
func (g *Game) BricksLeft() int { return g.bricks.CountActive() }

// Config returns the configuration the game was built with.
func (g *Game) Config() config.BreakerConfig { return g.cfg }

// Draw renders the bricks, particles, paddle and ball, plus the end overlay
// once the game is over.
func (g *Game) Draw(s Surface) {
	s.Clear()

	for _, column := range g.bricks {
		for _, b := range column {
			if !b.Active {
				continue
			}
			s.FillRect(b.X, b.Y, b.Width, b.Height, BrickColor)
			s.StrokeRect(b.X, b.Y, b.Width, b.Height, BrickEdgeColor)
		}
	}

	for _, p := range g.particles {
		s.WithAlpha(p.Alpha, func() {
			s.FillCircle(p.X, p.Y, p.Radius, p.Color)
		})
	}

	s.FillRect(g.paddle.X, g.paddle.Y, g.paddle.Width, g.paddle.Height, PaddleColor)
	s.FillCircle(g.ball.X, g.ball.Y, g.ball.Radius, BallColor)

	if g.gameOver {
		g.drawOverlay(s)
	}
}

func (g *Game) drawOverlay(s Surface) {
	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height
	s.WithAlpha(0.5, func() {
		s.FillRect(0, 0, w, h, core.ColorDefault)
	})
	s.Text(w/2, h/2-20, g.outcome.Message(), OverlayTextColor, core.AlignCenter)
	s.Text(w/2, h/2+20, ReplayHint, core.ColorWhite, core.AlignCenter)
}
