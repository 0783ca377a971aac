package game

import "math"

type Paddle struct {
	Side Side
	Y    float64
}

func NewPaddle(side Side) *Paddle {
	return &Paddle{Side: side}
}

// X is the fixed horizontal centre of the paddle.
func (p *Paddle) X() float64 {
	if p.Side == Right {
		return ArenaWidth/2 - PaddleWidth/2
	}
	return -ArenaWidth/2 + PaddleWidth/2
}

// SetY moves the paddle centre to y, clamped so the paddle never enters a wall.
func (p *Paddle) SetY(y float64) {
	p.Y = clamp(y, -paddleLimit, paddleLimit)
}

func (p *Paddle) MoveUp() {
	p.Y = math.Min(paddleLimit, p.Y+PaddleSpeed)
}

func (p *Paddle) MoveDown() {
	p.Y = math.Max(-paddleLimit, p.Y-PaddleSpeed)
}

// InSlab reports whether x lies in the horizontal band in front of the paddle.
func (p *Paddle) InSlab(x float64) bool {
	if p.Side == Right {
		return x > ArenaWidth/2-PaddleWidth-BallSize/2 && x < ArenaWidth/2-BallSize/2
	}
	return x < -ArenaWidth/2+PaddleWidth+BallSize/2 && x > -ArenaWidth/2+BallSize/2
}

// Overlaps reports whether a ball centred at y vertically overlaps the paddle.
func (p *Paddle) Overlaps(y float64) bool {
	return math.Abs(y-p.Y) < PaddleHeight/2+BallSize/2
}

func (p *Paddle) IsOnPaddle(ball *Ball) bool {
	return p.InSlab(ball.Position.X) && p.Overlaps(ball.Position.Y)
}

// Facing reports whether the ball travels toward this paddle.
func (p *Paddle) Facing(ball *Ball) bool {
	if p.Side == Right {
		return ball.Direction.X > 0
	}
	return ball.Direction.X < 0
}
