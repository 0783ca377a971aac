package game

import "math"

type Ball struct {
	Position  Vec2
	Direction Vec2
	Speed     float64
}

func NewBall() *Ball {
	return &Ball{
		Direction: Vec2{X: 1, Y: 0.5}.Normalize(),
		Speed:     InitialBallSpeed,
	}
}

func (b *Ball) SetSpeed(newSpeed float64) {
	b.Speed = newSpeed
}

func (b *Ball) SetDirection(d Vec2) {
	b.Direction = d.Normalize()
}

func (b *Ball) UpdatePosition() {
	b.Position = b.Position.Add(b.Direction.Scale(b.Speed))
}

func (b *Ball) HitsWall() bool {
	return math.Abs(b.Position.Y) > wallLimit
}

// BounceWall mirrors the vertical travel and nudges it by jitter.
func (b *Ball) BounceWall(jitter float64) {
	b.SetDirection(Vec2{X: b.Direction.X, Y: -b.Direction.Y + jitter})
}

// Deflect sends the ball back from paddle p. The outgoing angle depends on how far
// from the paddle centre the ball struck, and every return is 5% faster.
func (b *Ball) Deflect(p *Paddle) {
	hit := clamp((b.Position.Y-p.Y)/(PaddleHeight/2), -1, 1)
	b.SetDirection(Vec2{X: -b.Direction.X, Y: hit * hitDeflection})
	b.Speed *= SpeedMultiplier
}

// Reset puts the ball back on the centre spot at serving speed heading toward biasX.
func (b *Ball) Reset(biasX, dy float64) {
	b.Position = Vec2{}
	b.Speed = InitialBallSpeed
	b.SetDirection(Vec2{X: biasX, Y: dy})
}

// Out reports which player the ball position scores for, if any.
func (b *Ball) Out() Player {
	switch {
	case b.Position.X > goalLine:
		return Player1
	case b.Position.X < -goalLine:
		return Player2
	}
	return NoPlayer
}
