package game

import "math"

// AI drives the right paddle in single player matches.
type AI struct {
	Difficulty float64
	rand       Rand
}

func NewAI(difficulty float64, r Rand) *AI {
	if r == nil {
		r = newRand()
	}
	return &AI{Difficulty: clamp(difficulty, 0, 1), rand: r}
}

// Predict extrapolates the ball's height when it reaches the right goal line.
// Wall bounces on the way are ignored.
func (a *AI) Predict(ball *Ball) float64 {
	distance := ArenaWidth/2 - ball.Position.X
	return ball.Position.Y + ball.Direction.Y*distance/ball.Direction.X
}

// Update moves the paddle one frame toward the predicted arrival point. The aim is
// blurred by an error that shrinks with difficulty and is re-drawn every frame.
// It reports whether the paddle moved.
func (a *AI) Update(paddle *Paddle, ball *Ball) bool {
	if ball.Direction.X <= 0 {
		return false
	}

	aim := (1 - a.Difficulty) * uniform(a.rand, -1, 1) * aiErrorScale
	target := a.Predict(ball) + aim

	distance := target - paddle.Y
	if math.Abs(distance) <= aiDeadZone {
		return false
	}

	step := PaddleSpeed * a.Difficulty
	if distance < 0 {
		step = -step
	}
	paddle.SetY(paddle.Y + step)
	return true
}
