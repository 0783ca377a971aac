package game

type PaddleView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BallView struct {
	Position  Vec2    `json:"position"`
	Direction Vec2    `json:"direction"`
	Speed     float64 `json:"speed"`
}

// Snapshot is the read-only view renderers draw from.
type Snapshot struct {
	State        State      `json:"state"`
	SinglePlayer bool       `json:"single_player"`
	Score        Score      `json:"score"`
	Winner       Player     `json:"winner,omitempty"`
	Frame        uint64     `json:"frame"`
	Hits         int        `json:"hits"`
	WallBounces  int        `json:"wall_bounces"`
	LeftPaddle   PaddleView `json:"left_paddle"`
	RightPaddle  PaddleView `json:"right_paddle"`
	Ball         BallView   `json:"ball"`
}

func (s *Simulation) fill(snap *Snapshot) {
	snap.Frame = s.Frame
	snap.Hits = s.Hits
	snap.WallBounces = s.WallBounces
	snap.LeftPaddle = PaddleView{X: s.LeftPaddle.X(), Y: s.LeftPaddle.Y}
	snap.RightPaddle = PaddleView{X: s.RightPaddle.X(), Y: s.RightPaddle.Y}
	snap.Ball = BallView{
		Position:  s.Ball.Position,
		Direction: s.Ball.Direction,
		Speed:     s.Ball.Speed,
	}
}

func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		State:        m.state,
		SinglePlayer: m.singlePlayer,
		Score:        m.score,
		Winner:       m.winner,
	}
	if m.sim != nil {
		m.sim.fill(&snap)
		return snap
	}

	left, right := NewPaddle(Left), NewPaddle(Right)
	snap.LeftPaddle = PaddleView{X: left.X()}
	snap.RightPaddle = PaddleView{X: right.X()}
	snap.Ball = BallView{Speed: InitialBallSpeed}
	return snap
}
