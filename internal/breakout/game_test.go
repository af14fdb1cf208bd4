package breakout

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
)

func newTestGame(seed int64) *Game {
	return New(config.DefaultBreakerConfig(), seed, log.New(io.Discard))
}

// clearAllBut deactivates every brick except (keepC, keepR).
func clearAllBut(g *Game, keepC, keepR int) {
	for c := range g.bricks {
		for r := range g.bricks[c] {
			g.bricks[c][r].Active = c == keepC && r == keepR
		}
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(1)

	if !g.Running() || g.State().GameOver || g.Score() != 0 {
		t.Errorf("initial state = %+v", g.State())
	}
	if g.BricksLeft() != 45 {
		t.Errorf("BricksLeft() = %d, expected 45", g.BricksLeft())
	}
	ball := g.Ball()
	if ball.X != 400 || ball.Y != 522 || ball.DX != 4 || ball.DY != -4 {
		t.Errorf("ball = %+v", ball)
	}
	paddle := g.Paddle()
	if paddle.X != 350 || paddle.Y != 530 {
		t.Errorf("paddle = %+v", paddle)
	}
	if g.Outcome() != OutcomeNone {
		t.Errorf("Outcome() = %v", g.Outcome())
	}
}

func TestStepKeepsRunning(t *testing.T) {
	g := newTestGame(1)
	res := g.Step(core.NewInputFrame())

	if !res.Continue || !res.State.Running {
		t.Errorf("first step should continue: %+v", res)
	}
	if ball := g.Ball(); ball.X != 404 || ball.Y != 518 {
		t.Errorf("ball after one step = (%v, %v)", ball.X, ball.Y)
	}
}

func TestSingleBrickScenario(t *testing.T) {
	g := newTestGame(1)
	// Brick (4, 4) spans x 370..445, y 150..170
	g.ball.X, g.ball.Y = 400, 164

	res := g.Step(core.NewInputFrame())

	if g.Score() != 1 || res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", g.Score())
	}
	if g.bricks[4][4].Active {
		t.Error("brick (4, 4) should be destroyed")
	}
	if g.BricksLeft() != 44 {
		t.Errorf("BricksLeft() = %d, expected 44", g.BricksLeft())
	}
	particles := g.Particles()
	if len(particles) != 8 {
		t.Fatalf("expected exactly 8 particles, got %d", len(particles))
	}
	for _, p := range particles {
		if p.Alpha != 1 {
			t.Errorf("new particle alpha = %v, expected 1", p.Alpha)
		}
		if p.X != 404 || p.Y != 160 {
			t.Errorf("particle spawned at (%v, %v), expected ball position (404, 160)", p.X, p.Y)
		}
	}
	if !res.Continue {
		t.Error("game should keep running")
	}

	// Particles fade on the next tick
	g.Step(core.NewInputFrame())
	for _, p := range g.Particles() {
		if p.Alpha >= 1 {
			t.Errorf("particle did not fade: %v", p.Alpha)
		}
	}
}

func TestWinOnLastBrick(t *testing.T) {
	g := newTestGame(1)
	clearAllBut(g, 4, 4)
	g.score = 44
	g.ball.X, g.ball.Y = 400, 164

	res := g.Step(core.NewInputFrame())

	if g.Score() != 45 {
		t.Errorf("score = %d, expected 45", g.Score())
	}
	if res.Continue || res.State.Running || !res.State.GameOver {
		t.Errorf("win should end the game: %+v", res)
	}
	if g.Outcome() != OutcomeWin {
		t.Errorf("Outcome() = %v, expected win", g.Outcome())
	}

	task, ok := g.TakeGameOver()
	if !ok || task.Outcome != OutcomeWin || task.Score != 45 {
		t.Errorf("TakeGameOver() = %+v, %v", task, ok)
	}
	if task.Delay != 500*time.Millisecond {
		t.Errorf("prompt delay = %v, expected 500ms", task.Delay)
	}
	if _, ok := g.TakeGameOver(); ok {
		t.Error("the game over task should be handed out once")
	}
}

func TestWinAndLoseSameFrameReportsWin(t *testing.T) {
	cfg := config.DefaultBreakerConfig()
	cfg.Bricks.Rows, cfg.Bricks.Columns = 1, 1
	cfg.Bricks.OffsetTop = 575
	g := New(cfg, 1, log.New(io.Discard))

	// Moves to (60, 594): inside the brick (575..595) and past the bottom edge.
	g.ball.X, g.ball.Y, g.ball.DX, g.ball.DY = 60, 590, 0, 4

	res := g.Step(core.NewInputFrame())

	if g.Outcome() != OutcomeWin {
		t.Errorf("Outcome() = %v, expected win to take precedence", g.Outcome())
	}
	if res.Continue {
		t.Error("game should have ended")
	}
	if _, ok := g.TakeGameOver(); !ok {
		t.Fatal("expected a game over task")
	}
	if _, ok := g.TakeGameOver(); ok {
		t.Error("handler should run exactly once")
	}
}

func TestLoseRegardlessOfScore(t *testing.T) {
	for _, score := range []int{0, 17, 44} {
		g := newTestGame(1)
		g.score = score
		g.ball.X, g.ball.Y, g.ball.DX, g.ball.DY = 700, 595, 0, 4

		res := g.Step(core.NewInputFrame())

		if res.Continue || g.Outcome() != OutcomeLose {
			t.Errorf("score %d: expected loss, got outcome %v continue %v", score, g.Outcome(), res.Continue)
		}
		task, ok := g.TakeGameOver()
		if !ok || task.Score != score || task.Outcome != OutcomeLose {
			t.Errorf("score %d: task = %+v, %v", score, task, ok)
		}
	}
}

func TestStepAfterEndIsNoop(t *testing.T) {
	g := newTestGame(1)
	g.ball.X, g.ball.Y, g.ball.DX, g.ball.DY = 700, 595, 0, 4
	g.Step(core.NewInputFrame())

	before := g.Snapshot()
	res := g.Step(core.NewInputFrame())
	after := g.Snapshot()

	if res.Continue {
		t.Error("ended game should not ask for more ticks")
	}
	if before.Hash() != after.Hash() {
		t.Error("stepping an ended game should not change state")
	}
}

func TestResetAfterLose(t *testing.T) {
	g := newTestGame(3)
	g.ball.X, g.ball.Y, g.ball.DX, g.ball.DY = 700, 595, 0, 4
	g.Step(core.NewInputFrame())
	g.particles = append(g.particles, Particle{Alpha: 1, Decay: 0.02})

	g.Reset()

	if !g.Running() || g.State().GameOver || g.Score() != 0 {
		t.Errorf("state after reset = %+v", g.State())
	}
	if g.BricksLeft() != 45 || len(g.Particles()) != 0 {
		t.Errorf("reset should rebuild the grid and clear particles")
	}
	ball := g.Ball()
	if ball.X != 400 || ball.Y != 522 || ball.DY != -4 {
		t.Errorf("ball after reset = %+v", ball)
	}
	if ball.DX < -4 || ball.DX >= 4 {
		t.Errorf("launch dx %v outside [-4, 4)", ball.DX)
	}
	if _, ok := g.TakeGameOver(); ok {
		t.Error("reset should drop a pending game over task")
	}
	if res := g.Step(core.NewInputFrame()); !res.Continue {
		t.Error("reset game should continue ticking")
	}
}

func TestPaddleKeys(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		action core.Action
		wantX  float64
	}{
		{"right", 350, core.ActionRight, 358},
		{"left", 350, core.ActionLeft, 342},
		{"right clamps", 696, core.ActionRight, 700},
		{"right at edge", 700, core.ActionRight, 700},
		{"left clamps", 4, core.ActionLeft, 0},
		{"left at edge", 0, core.ActionLeft, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(1)
			g.paddle.X = tc.startX
			in := core.NewInputFrame()
			in.Set(tc.action)
			g.Step(in)
			if g.Paddle().X != tc.wantX {
				t.Errorf("paddle x = %v, expected %v", g.Paddle().X, tc.wantX)
			}
		})
	}
}

func TestPaddlePointer(t *testing.T) {
	tests := []struct {
		name     string
		pointerX float64
		wantX    float64
	}{
		{"centers on pointer", 100, 50},
		{"clamps left", 20, 0},
		{"clamps right", 790, 700},
		{"zero ignored", 0, 350},
		{"canvas width ignored", 800, 350},
		{"outside ignored", 900, 350},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(1)
			in := core.NewInputFrame()
			in.Point(tc.pointerX)
			g.Step(in)
			if g.Paddle().X != tc.wantX {
				t.Errorf("paddle x = %v, expected %v", g.Paddle().X, tc.wantX)
			}
		})
	}
}

type recorderFunc func(name string, score int) error

func (f recorderFunc) AddEntry(name string, score int) error { return f(name, score) }

func TestGameOverResolve(t *testing.T) {
	var gotName string
	var gotScore int
	rec := recorderFunc(func(name string, score int) error {
		gotName, gotScore = name, score
		return nil
	})
	task := GameOver{Outcome: OutcomeLose, Score: 12}

	if ok, err := task.Resolve("  ann  ", rec); !ok || err != nil {
		t.Fatalf("Resolve() = %v, %v", ok, err)
	}
	if gotName != "ann" || gotScore != 12 {
		t.Errorf("recorded %q %d, expected ann 12", gotName, gotScore)
	}

	gotName = ""
	if ok, _ := task.Resolve("   ", rec); ok || gotName != "" {
		t.Error("blank name should not be recorded")
	}
	if ok, _ := task.Resolve("bob", nil); ok {
		t.Error("nil recorder should record nothing")
	}

	failing := recorderFunc(func(string, int) error { return errors.New("boom") })
	if _, err := task.Resolve("ann", failing); err == nil {
		t.Error("recorder errors should be returned")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		g := newTestGame(seed)
		for i := range 400 {
			in := core.NewInputFrame()
			switch {
			case i%7 < 3:
				in.Set(core.ActionRight)
			case i%7 < 5:
				in.Set(core.ActionLeft)
			}
			if i%50 == 0 {
				in.Point(float64(100 + i))
			}
			if res := g.Step(in); !res.Continue {
				g.Reset()
			}
		}
		return g.Snapshot()
	}

	a, b := run(12345), run(12345)
	if a.Hash() != b.Hash() {
		t.Errorf("same seed produced different states: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Tick != b.Tick || a.Score != b.Score || a.BallX != b.BallX {
		t.Error("snapshots differ")
	}
}

func TestResetDirectionDependsOnSeed(t *testing.T) {
	g1, g2 := newTestGame(1), newTestGame(2)
	g1.Reset()
	g2.Reset()
	if g1.Ball().DX == g2.Ball().DX {
		t.Error("different seeds should launch differently")
	}
	snap1, snap2 := g1.Snapshot(), g2.Snapshot()
	if snap1.Hash() == snap2.Hash() {
		t.Error("hashes should differ")
	}
}

func TestStepMonotonic(t *testing.T) {
	g := newTestGame(1)
	prevScore, prevBricks := 0, g.BricksLeft()

	for range 2000 {
		res := g.Step(core.NewInputFrame())
		if g.Score() < prevScore {
			t.Fatal("score decreased")
		}
		if g.BricksLeft() > prevBricks {
			t.Fatal("a destroyed brick came back")
		}
		if g.Score()+g.BricksLeft() != 45 {
			t.Fatalf("score %d + bricks %d != 45", g.Score(), g.BricksLeft())
		}
		p := g.Paddle()
		if p.X < 0 || p.X > 700 {
			t.Fatalf("paddle left the field: %v", p.X)
		}
		if math.Abs(g.Ball().DY) != 4 {
			t.Fatalf("|dy| = %v, expected 4", math.Abs(g.Ball().DY))
		}
		prevScore, prevBricks = g.Score(), g.BricksLeft()
		if !res.Continue {
			break
		}
	}
}

func TestDrawRendersEntities(t *testing.T) {
	g := newTestGame(1)
	canvas := core.NewCanvas(core.NewScreen(80, 24), 800, 600)
	g.Draw(canvas)
	s := canvas.Screen()

	if cell := s.GetCell(5, 1); cell.Rune != core.GlyphSolid || cell.Color != BrickColor {
		t.Errorf("brick interior = %+v", cell)
	}
	if cell := s.GetCell(3, 1); cell.Rune != core.GlyphOutline || cell.Color != BrickEdgeColor {
		t.Errorf("brick edge = %+v", cell)
	}
	if cell := s.GetCell(40, 21); cell.Rune != core.GlyphSolid || cell.Color != PaddleColor {
		t.Errorf("paddle = %+v", cell)
	}
	if cell := s.GetCell(40, 20); cell.Rune != core.GlyphCircle || cell.Color != BallColor {
		t.Errorf("ball = %+v", cell)
	}
	if strings.Contains(s.String(), LoseMessage) {
		t.Error("overlay should not show while running")
	}
}

func TestDrawOverlayAfterLoss(t *testing.T) {
	g := newTestGame(1)
	g.ball.X, g.ball.Y, g.ball.DX, g.ball.DY = 700, 595, 0, 4
	g.Step(core.NewInputFrame())

	canvas := core.NewCanvas(core.NewScreen(80, 24), 800, 600)
	g.Draw(canvas)
	s := canvas.Screen()

	if !strings.Contains(s.Row(11), LoseMessage) {
		t.Errorf("row 11 = %q, expected %q", s.Row(11), LoseMessage)
	}
	if !strings.Contains(s.Row(12), ReplayHint) {
		t.Errorf("row 12 = %q, expected %q", s.Row(12), ReplayHint)
	}
	if cell := s.GetCell(5, 1); cell.Color != core.ColorGray {
		t.Errorf("overlay should dim the field, brick cell = %+v", cell)
	}
}
