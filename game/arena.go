package game

import "time"

const (
	ArenaWidth    = 20.0
	ArenaHeight   = 10.0
	ArenaDepth    = 5.0
	PaddleWidth   = 0.3
	PaddleHeight  = 2.0
	PaddleDepth   = 0.5
	BallSize      = 0.3
	WallThickness = 0.3

	PaddleSpeed       = 0.1
	InitialBallSpeed  = 0.05
	SpeedMultiplier   = 1.05
	PointsToWin       = 11
	ScoreCooldown     = 500 * time.Millisecond
	DefaultDifficulty = 0.5
)

const (
	// paddleLimit bounds the paddle centre on both sides of the x axis.
	paddleLimit = ArenaHeight/2 - PaddleHeight/2 - WallThickness
	// wallLimit is the |y| past which the ball bounces off a wall.
	wallLimit = ArenaHeight/2 - BallSize/2 - WallThickness
	// goalLine is the |x| past which the ball counts as out.
	goalLine = ArenaWidth/2 + BallSize

	wallJitter    = 0.1
	hitDeflection = 0.8
	serveSpread   = 0.5
	aiDeadZone    = 0.2
	aiErrorScale  = 2.0
)

// PaddleBounds returns the lowest and highest centre position a paddle may take.
func PaddleBounds() (lower, upper float64) {
	return -paddleLimit, paddleLimit
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
