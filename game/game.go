package game

import "time"

// ScoreFunc receives the player credited with a point.
type ScoreFunc func(Player)

type SimulationOptions struct {
	SinglePlayer bool
	Difficulty   float64
	// HitGuard lets a paddle return the ball only while the ball travels toward it.
	// Off, a slow ball lingering in the slab can be returned on consecutive frames.
	HitGuard bool
	Rand     Rand
	Clock    Clock
	OnScore  ScoreFunc
}

// Simulation owns the paddles and ball of one match and advances them one frame at a time.
type Simulation struct {
	LeftPaddle  *Paddle
	RightPaddle *Paddle
	Ball        *Ball

	Frame       uint64
	Hits        int
	WallBounces int

	ai           *AI
	singlePlayer bool
	hitGuard     bool
	rand         Rand
	now          Clock
	onScore      ScoreFunc
	lastScore    time.Time
}

func NewSimulation(opts SimulationOptions) *Simulation {
	if opts.Rand == nil {
		opts.Rand = newRand()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	s := &Simulation{
		LeftPaddle:   NewPaddle(Left),
		RightPaddle:  NewPaddle(Right),
		Ball:         NewBall(),
		singlePlayer: opts.SinglePlayer,
		hitGuard:     opts.HitGuard,
		rand:         opts.Rand,
		now:          opts.Clock,
		onScore:      opts.OnScore,
	}
	if opts.SinglePlayer {
		s.ai = NewAI(opts.Difficulty, opts.Rand)
	}
	return s
}

func (s *Simulation) SinglePlayer() bool {
	return s.singlePlayer
}

func (s *Simulation) AI() *AI {
	return s.ai
}

// LastScore is when the ball was last reset.
func (s *Simulation) LastScore() time.Time {
	return s.lastScore
}

// SetLastScore moves the score cooldown window.
func (s *Simulation) SetLastScore(t time.Time) {
	s.lastScore = t
}

// Serve resets the ball toward a randomly chosen side.
func (s *Simulation) Serve() {
	bias := -1.0
	if s.rand.Float64() > 0.5 {
		bias = 1
	}
	s.ResetBall(bias)
}

// ResetBall recentres the ball heading toward biasX and restarts the score cooldown.
func (s *Simulation) ResetBall(biasX float64) {
	s.Ball.Reset(biasX, uniform(s.rand, -serveSpread, serveSpread))
	s.Hits = 0
	s.lastScore = s.now()
}

// Step advances the match by one frame. A paused step, or one issued before the
// paddles and ball exist, changes nothing.
func (s *Simulation) Step(in Input, paused bool) {
	if paused || s == nil || s.LeftPaddle == nil || s.RightPaddle == nil || s.Ball == nil {
		return
	}

	movePaddle(s.LeftPaddle, in.For(Left))
	if s.singlePlayer {
		if s.ai != nil {
			s.ai.Update(s.RightPaddle, s.Ball)
		}
	} else {
		movePaddle(s.RightPaddle, in.For(Right))
	}

	s.Ball.UpdatePosition()

	if s.Ball.HitsWall() {
		s.Ball.BounceWall(uniform(s.rand, -wallJitter, wallJitter))
		s.WallBounces++
	}

	for _, paddle := range []*Paddle{s.LeftPaddle, s.RightPaddle} {
		if !paddle.IsOnPaddle(s.Ball) {
			continue
		}
		if s.hitGuard && !paddle.Facing(s.Ball) {
			continue
		}
		s.Ball.Deflect(paddle)
		s.Hits++
	}

	s.checkScore()
	s.Frame++
}

func (s *Simulation) checkScore() {
	if s.now().Sub(s.lastScore) <= ScoreCooldown {
		return
	}

	switch s.Ball.Out() {
	case Player1:
		s.score(Player1)
		s.ResetBall(-1)
	case Player2:
		s.score(Player2)
		s.ResetBall(1)
	}
}

func (s *Simulation) score(p Player) {
	log.Debugf("Point for %v after %d paddle hits", p, s.Hits)
	if s.onScore != nil {
		s.onScore(p)
	}
}

// movePaddle applies up then down, so holding both ends on the down move.
func movePaddle(p *Paddle, keys Keys) {
	if keys.Up {
		p.MoveUp()
	}
	if keys.Down {
		p.MoveDown()
	}
}
