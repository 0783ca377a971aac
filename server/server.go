package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"pong3d/game"
	"pong3d/protocol"
	"pong3d/sound"
)

const writeWait = 10 * time.Second

var errClosed = errors.New("server closed")

type Config struct {
	FrameInterval time.Duration
	Difficulty    float64
	HitGuard      bool
	InputRate     float64
	InputBurst    int
	// Sounds enables sound cues and the /sounds route when set.
	Sounds *sound.Library
}

type Server struct {
	cfg          Config
	sessions     map[string]*Session
	sessionsLock sync.Mutex
	closed       bool
	wg           sync.WaitGroup
	upgrader     websocket.Upgrader
}

// Session is one browser tab playing one local match.
type Session struct {
	ID     string
	Match  *game.Match
	client *Client

	lastState   game.State
	lastHits    int
	lastBounces int
}

type Client struct {
	Conn    *websocket.Conn
	Server  *Server
	Session *Session
	limiter *rate.Limiter
	writeMu sync.Mutex
}

func NewServer(cfg Config) *Server {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = time.Second / 60
	}
	if cfg.InputRate <= 0 {
		cfg.InputRate = 120
	}
	if cfg.InputBurst <= 0 {
		cfg.InputBurst = 240
	}
	return &Server{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", s.HandleConnection)
	r.Get("/schema", s.handleSchema)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if s.cfg.Sounds != nil {
		r.Get("/sounds/{name}", s.handleSound)
	}
	return r
}

func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("Upgrade error: %v", err)
		return
	}
	defer conn.Close()

	client := &Client{
		Conn:    conn,
		Server:  s,
		limiter: rate.NewLimiter(rate.Limit(s.cfg.InputRate), s.cfg.InputBurst),
	}
	session, err := s.openSession(client)
	if err != nil {
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
		return
	}
	defer s.closeSession(session)

	ctx, cancel := context.WithCancel(r.Context())
	frames := make(chan struct{})
	go func() {
		defer close(frames)
		session.run(ctx, s.cfg.FrameInterval)
	}()

	client.Send(protocol.StateMessage(session.Match.Snapshot()))
	client.Listen()

	cancel()
	<-frames
}

// Sessions reports how many connections are being served.
func (s *Server) Sessions() int {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	return len(s.sessions)
}

// Close disconnects every client and waits for their sessions to end.
func (s *Server) Close() {
	s.sessionsLock.Lock()
	s.closed = true
	for _, session := range s.sessions {
		session.client.Conn.Close()
	}
	s.sessionsLock.Unlock()

	s.wg.Wait()
}

func (s *Server) openSession(client *Client) (*Session, error) {
	session := &Session{
		ID:     uuid.NewString(),
		client: client,
	}
	session.Match = game.NewMatch(game.MatchOptions{
		Difficulty: s.cfg.Difficulty,
		HitGuard:   s.cfg.HitGuard,
		Listener:   session.onEvent,
	})
	session.lastState = session.Match.State()
	client.Session = session

	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	if s.closed {
		return nil, errClosed
	}
	s.sessions[session.ID] = session
	s.wg.Add(1)
	log.Infof("Session %s opened from %s", session.ID, client.Conn.RemoteAddr())
	return session, nil
}

func (s *Server) closeSession(session *Session) {
	s.sessionsLock.Lock()
	delete(s.sessions, session.ID)
	s.sessionsLock.Unlock()
	s.wg.Done()
	log.Infof("Session %s closed", session.ID)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	data, err := protocol.Schema()
	if err != nil {
		log.Errorf("Error building schema: %v", err)
		http.Error(w, "failed to build schema", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.Write(data)
}

func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "name"), ".wav")
	data, err := s.cfg.Sounds.WAV(name)
	if errors.Is(err, sound.ErrUnknown) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Errorf("Error rendering sound %s: %v", name, err)
		http.Error(w, "failed to render sound", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

// run steps the match once per frame until ctx is cancelled.
func (sess *Session) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sess.frame()
		}
	}
}

func (sess *Session) frame() {
	ran := sess.Match.Tick()
	snap := sess.Match.Snapshot()
	if !ran && snap.State == sess.lastState {
		return
	}
	if ran {
		sess.cues(snap)
	}
	sess.lastState = snap.State
	sess.client.Send(protocol.StateMessage(snap))
}

func (sess *Session) cues(snap game.Snapshot) {
	if sess.client.Server.cfg.Sounds != nil {
		if snap.Hits > sess.lastHits {
			sess.client.Send(protocol.SoundMessage(sound.Paddle))
		}
		if snap.WallBounces > sess.lastBounces {
			sess.client.Send(protocol.SoundMessage(sound.Wall))
		}
	}
	sess.lastHits = snap.Hits
	sess.lastBounces = snap.WallBounces
}

func (sess *Session) onEvent(ev game.Event) {
	log.Debugf("Session %s: %v (%d-%d)", sess.ID, ev.Kind, ev.Score.Player1, ev.Score.Player2)
	if msg, ok := protocol.EventMessage(ev); ok {
		sess.client.Send(msg)
	}
	if sess.client.Server.cfg.Sounds == nil {
		return
	}
	switch ev.Kind {
	case game.EventScored:
		sess.client.Send(protocol.SoundMessage(sound.Score))
	case game.EventGameOver:
		sess.client.Send(protocol.SoundMessage(sound.Win))
	}
}

func (c *Client) Listen() {
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debugf("Connection closed normally")
			} else {
				log.Debugf("Read error: %v", err)
			}
			return
		}
		if !c.limiter.Allow() {
			c.Send(protocol.ErrorMessage(protocol.ErrTooMany))
			continue
		}
		protocol.ParseMessage(c, message)
	}
}

func (c *Client) HandleStartGame(singlePlayer bool) {
	c.Session.Match.Start(singlePlayer)
}

func (c *Client) HandlePause() {
	c.Session.Match.TogglePause()
}

func (c *Client) HandleQuit() {
	c.Session.Match.Quit()
}

func (c *Client) HandleInput(side game.Side, direction game.Direction, pressed bool) {
	c.Session.Match.Press(side, direction, pressed)
}

func (c *Client) InGame() bool {
	state := c.Session.Match.State()
	return state == game.Playing || state == game.Paused
}

func (c *Client) Send(message protocol.Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Errorf("Error marshalling message: %v", err)
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Debugf("Write error: %v", err)
	}
}
