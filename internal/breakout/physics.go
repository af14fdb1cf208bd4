package breakout

// BrickHit records one brick destroyed during a physics step.
type BrickHit struct {
	Column, Row int
	// Ball position at the moment of the hit, where the burst spawns.
	X, Y float64
}

// StepBall advances the ball one tick inside a field fieldW wide and
// resolves collisions against walls, the paddle and the brick grid.
// Destroyed bricks are marked inactive and returned in column-major order.
//
// All comparisons are strict: a ball exactly touching a wall or a brick edge
// is not a collision. The bottom edge never reflects.
func StepBall(ball *Ball, paddle Paddle, bricks Grid, fieldW float64) []BrickHit {
	ball.Move()

	if ball.X+ball.Radius > fieldW || ball.X-ball.Radius < 0 {
		ball.DX = -ball.DX
	}
	if ball.Y-ball.Radius < 0 {
		ball.DY = -ball.DY
	}

	if hitsPaddle(ball, paddle) {
		ball.DY = -ball.Speed
	}

	var hits []BrickHit
	for c := range bricks {
		for r := range bricks[c] {
			brick := &bricks[c][r]
			if !brick.Active || !brick.Box().ContainsOpen(ball.X, ball.Y) {
				continue
			}
			ball.DY = -ball.DY
			brick.Active = false
			hits = append(hits, BrickHit{Column: c, Row: r, X: ball.X, Y: ball.Y})
		}
	}

	return hits
}

// hitsPaddle reports whether the ball's vertical extent overlaps the paddle
// band while its center lies strictly within the paddle's width.
func hitsPaddle(ball *Ball, paddle Paddle) bool {
	return ball.Y+ball.Radius > paddle.Y &&
		ball.Y-ball.Radius < paddle.Y+paddle.Height &&
		ball.X > paddle.X &&
		ball.X < paddle.X+paddle.Width
}

// fellOut reports whether the ball has crossed the bottom edge.
func fellOut(ball *Ball, fieldH float64) bool {
	return ball.Y+ball.Radius > fieldH
}
