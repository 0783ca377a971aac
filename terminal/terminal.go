package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"pong3d/game"
	"pong3d/protocol"
)

const toastDuration = 3 * time.Second

type Options struct {
	FrameInterval time.Duration
	// KeyHold is how long a key counts as held after its last press or repeat.
	// Terminals report no key releases.
	KeyHold    time.Duration
	Difficulty float64
	HitGuard   bool
	Rand       game.Rand
	Clock      game.Clock
}

type heldKey struct {
	side      game.Side
	direction game.Direction
}

// App plays one local match in the terminal. It is driven from a single goroutine.
type App struct {
	opts  Options
	match *game.Match
	held  map[heldKey]time.Time

	toast      string
	toastUntil time.Time
}

func New(opts Options) *App {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.KeyHold <= 0 {
		opts.KeyHold = 150 * time.Millisecond
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	a := &App{
		opts: opts,
		held: make(map[heldKey]time.Time),
	}
	a.match = game.NewMatch(game.MatchOptions{
		Difficulty: opts.Difficulty,
		HitGuard:   opts.HitGuard,
		Rand:       opts.Rand,
		Clock:      opts.Clock,
		Listener:   a.onEvent,
	})
	return a
}

func (a *App) Match() *game.Match {
	return a.match
}

// HandleKey applies one key event. It returns false when the player asked to quit.
func (a *App) HandleKey(key tcell.Key, r rune, now time.Time) bool {
	switch key {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.hold(game.Right, game.Up, now)
	case tcell.KeyDown:
		a.hold(game.Right, game.Down, now)
	case tcell.KeyEscape:
		if a.match.State() == game.Playing {
			a.match.TogglePause()
		}
	case tcell.KeyRune:
		return a.handleRune(r, now)
	}
	return true
}

func (a *App) handleRune(r rune, now time.Time) bool {
	state := a.match.State()
	switch r {
	case 'q', 'Q':
		return false
	case 'w', 'W':
		a.hold(game.Left, game.Up, now)
	case 's', 'S':
		a.hold(game.Left, game.Down, now)
	case 'p', 'P':
		a.match.TogglePause()
	case '1', '2':
		if state == game.Waiting || state == game.GameOver {
			a.release()
			a.match.Start(r == '1')
		}
	case 'r', 'R':
		if state == game.GameOver {
			a.release()
			a.match.Start(a.match.IsSinglePlayer())
		}
	case 'm', 'M':
		if state == game.Paused || state == game.GameOver {
			a.release()
			a.match.Quit()
		}
	}
	return true
}

func (a *App) hold(side game.Side, direction game.Direction, now time.Time) {
	if a.match.State() != game.Playing {
		return
	}
	a.match.Press(side, direction, true)
	a.held[heldKey{side, direction}] = now.Add(a.opts.KeyHold)
}

func (a *App) release() {
	for k := range a.held {
		delete(a.held, k)
	}
}

// expire releases keys whose hold window has run out.
func (a *App) expire(now time.Time) {
	for k, until := range a.held {
		if !now.Before(until) {
			a.match.Press(k.side, k.direction, false)
			delete(a.held, k)
		}
	}
}

// Tick releases stale keys and runs one frame.
func (a *App) Tick(now time.Time) {
	a.expire(now)
	a.match.Tick()
}

func (a *App) onEvent(ev game.Event) {
	text, ok := protocol.EventText(ev)
	if !ok {
		return
	}
	log.Debugf("%s", text)
	a.toast = text
	a.toastUntil = a.opts.Clock().Add(toastDuration)
}

// Run polls screen for keys and renders one frame per tick until ctx is done
// or the player quits. The caller owns Init and Fini.
func (a *App) Run(ctx context.Context, screen tcell.Screen) error {
	screen.SetStyle(backgroundStyle)
	screen.HideCursor()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.opts.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.HandleKey(ev.Key(), ev.Rune(), a.opts.Clock()) {
					log.Infof("Quit requested")
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			now := a.opts.Clock()
			a.Tick(now)
			a.Draw(screen, now)
			screen.Show()
		}
	}
}
