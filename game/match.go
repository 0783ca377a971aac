package game

import (
	"sync"
	"time"
)

type Score struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

func (s Score) Of(p Player) int {
	switch p {
	case Player1:
		return s.Player1
	case Player2:
		return s.Player2
	}
	return 0
}

type EventKind int

const (
	EventStarted EventKind = iota
	EventScored
	EventGameOver
	EventPaused
	EventResumed
	EventQuit
)

var eventName = map[EventKind]string{
	EventStarted:  "started",
	EventScored:   "scored",
	EventGameOver: "game_over",
	EventPaused:   "paused",
	EventResumed:  "resumed",
	EventQuit:     "quit",
}

func (k EventKind) String() string {
	return eventName[k]
}

// Event tells the UI shell about a match transition.
type Event struct {
	Kind         EventKind
	Player       Player
	Score        Score
	SinglePlayer bool
}

type MatchOptions struct {
	Difficulty float64
	HitGuard   bool
	Rand       Rand
	Clock      Clock
	// Listener is called after every transition, outside the match lock.
	Listener func(Event)
}

// Match tracks phase, score and winner, and gates the simulation.
type Match struct {
	mu sync.Mutex

	opts         MatchOptions
	state        State
	score        Score
	winner       Player
	singlePlayer bool
	sim          *Simulation
	controls     Controls
	pending      []Event
}

func NewMatch(opts MatchOptions) *Match {
	if opts.Rand == nil {
		opts.Rand = newRand()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Match{
		opts:         opts,
		state:        Waiting,
		singlePlayer: true,
	}
}

// Start begins a fresh match in the chosen mode with zeroed scores and a new serve.
func (m *Match) Start(singlePlayer bool) {
	m.mu.Lock()
	m.singlePlayer = singlePlayer
	m.state = Playing
	m.score = Score{}
	m.winner = NoPlayer
	m.controls.Clear()
	m.sim = NewSimulation(SimulationOptions{
		SinglePlayer: singlePlayer,
		Difficulty:   m.opts.Difficulty,
		HitGuard:     m.opts.HitGuard,
		Rand:         m.opts.Rand,
		Clock:        m.opts.Clock,
		OnScore:      m.scoreLocked,
	})
	m.sim.Serve()
	m.emit(Event{Kind: EventStarted, SinglePlayer: singlePlayer})
	log.Infof("Match started (single player: %v)", singlePlayer)
	m.unlockAndFlush()
}

// TogglePause flips between playing and paused. It does nothing in other phases.
func (m *Match) TogglePause() {
	m.mu.Lock()
	switch m.state {
	case Playing:
		m.state = Paused
		m.emit(Event{Kind: EventPaused, Score: m.score})
	case Paused:
		m.state = Playing
		m.emit(Event{Kind: EventResumed, Score: m.score})
	}
	m.unlockAndFlush()
}

// Quit abandons the match and returns to mode selection.
func (m *Match) Quit() {
	m.mu.Lock()
	m.state = Waiting
	m.score = Score{}
	m.winner = NoPlayer
	m.sim = nil
	m.controls.Clear()
	m.emit(Event{Kind: EventQuit})
	m.unlockAndFlush()
}

// Press records a key change. Presses only register while playing, releases always do.
func (m *Match) Press(side Side, dir Direction, pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pressed && m.state != Playing {
		return
	}
	m.controls.Set(side, dir, pressed)
}

// Tick runs one frame. It reports whether the simulation advanced.
func (m *Match) Tick() bool {
	m.mu.Lock()
	ran := false
	switch m.state {
	case Playing:
		m.sim.Step(m.controls.Snapshot(), false)
		ran = true
	case Paused:
		m.sim.Step(m.controls.Snapshot(), true)
	}
	m.unlockAndFlush()
	return ran
}

// OnScore credits p with a point.
func (m *Match) OnScore(p Player) {
	m.mu.Lock()
	m.scoreLocked(p)
	m.unlockAndFlush()
}

func (m *Match) scoreLocked(p Player) {
	if m.state == GameOver || m.state == Waiting {
		return
	}
	switch p {
	case Player1:
		m.score.Player1++
	case Player2:
		m.score.Player2++
	default:
		return
	}
	m.emit(Event{Kind: EventScored, Player: p, Score: m.score, SinglePlayer: m.singlePlayer})

	if m.score.Of(p) >= PointsToWin {
		m.state = GameOver
		m.winner = p
		m.emit(Event{Kind: EventGameOver, Player: p, Score: m.score, SinglePlayer: m.singlePlayer})
		log.Infof("Match over, %s wins %d-%d", p.Label(), m.score.Player1, m.score.Player2)
	}
}

func (m *Match) IsPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Paused
}

func (m *Match) IsSinglePlayer() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.singlePlayer
}

func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Match) Score() Score {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score
}

func (m *Match) Winner() Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winner
}

// WithSimulation runs fn against the live simulation under the match lock.
// fn is not called when no match is running.
func (m *Match) WithSimulation(fn func(*Simulation)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sim != nil {
		fn(m.sim)
	}
}

func (m *Match) emit(ev Event) {
	if m.opts.Listener != nil {
		m.pending = append(m.pending, ev)
	}
}

func (m *Match) unlockAndFlush() {
	events := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, ev := range events {
		m.opts.Listener(ev)
	}
}
