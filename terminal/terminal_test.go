package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pong3d/game"
)

type fixedRand float64

func (r fixedRand) Float64() float64 {
	return float64(r)
}

type fakeCanvas struct {
	width, height int
	cells         map[[2]int]rune
}

func newFakeCanvas(width, height int) *fakeCanvas {
	return &fakeCanvas{width: width, height: height, cells: make(map[[2]int]rune)}
}

func (c *fakeCanvas) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[[2]int{x, y}] = primary
}

func (c *fakeCanvas) Size() (int, int) {
	return c.width, c.height
}

func (c *fakeCanvas) row(y int) string {
	var b strings.Builder
	for x := 0; x < c.width; x++ {
		r, ok := c.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (c *fakeCanvas) contains(text string) bool {
	for y := 0; y < c.height; y++ {
		if strings.Contains(c.row(y), text) {
			return true
		}
	}
	return false
}

func newTestApp() (*App, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	app := New(Options{
		KeyHold:    150 * time.Millisecond,
		Difficulty: 0.5,
		Rand:       fixedRand(0.5),
		Clock:      func() time.Time { return now },
	})
	return app, &now
}

func leftY(app *App) float64 {
	return app.Match().Snapshot().LeftPaddle.Y
}

func TestMenuIsDrawn(t *testing.T) {
	app, now := newTestApp()
	canvas := newFakeCanvas(80, 24)

	app.Draw(canvas, *now)

	assert.True(t, canvas.contains("1  single player (vs AI)"))
	assert.True(t, canvas.contains("2  two players"))
	assert.True(t, canvas.contains("PLAYER 1  0"))
}

func TestStartKeysPickMode(t *testing.T) {
	app, now := newTestApp()

	assert.True(t, app.HandleKey(tcell.KeyRune, '2', *now))
	assert.Equal(t, game.Playing, app.Match().State())
	assert.False(t, app.Match().IsSinglePlayer())

	canvas := newFakeCanvas(80, 24)
	app.Draw(canvas, *now)
	assert.Contains(t, canvas.row(23), "Two player mode activated")
	assert.True(t, canvas.contains("0  PLAYER 2"))

	app.Draw(canvas, now.Add(toastDuration))
	assert.NotContains(t, canvas.row(23), "Two player mode activated")
}

func TestStartKeysIgnoredMidMatch(t *testing.T) {
	app, now := newTestApp()
	app.HandleKey(tcell.KeyRune, '1', *now)
	app.Match().OnScore(game.Player1)

	app.HandleKey(tcell.KeyRune, '2', *now)

	assert.True(t, app.Match().IsSinglePlayer())
	assert.Equal(t, 1, app.Match().Score().Player1)
}

func TestHeldKeyExpires(t *testing.T) {
	app, now := newTestApp()
	app.HandleKey(tcell.KeyRune, '2', *now)

	app.HandleKey(tcell.KeyRune, 'w', *now)
	app.Tick(*now)
	assert.InDelta(t, game.PaddleSpeed, leftY(app), 1e-9)

	app.Tick(now.Add(100 * time.Millisecond))
	assert.InDelta(t, 2*game.PaddleSpeed, leftY(app), 1e-9)

	app.Tick(now.Add(150 * time.Millisecond))
	assert.InDelta(t, 2*game.PaddleSpeed, leftY(app), 1e-9)
}

func TestKeyRepeatExtendsHold(t *testing.T) {
	app, now := newTestApp()
	app.HandleKey(tcell.KeyRune, '2', *now)

	app.HandleKey(tcell.KeyRune, 's', *now)
	app.HandleKey(tcell.KeyRune, 's', now.Add(100*time.Millisecond))
	app.Tick(now.Add(200 * time.Millisecond))

	assert.InDelta(t, -game.PaddleSpeed, leftY(app), 1e-9)
}

func TestArrowKeysDriveRightPaddle(t *testing.T) {
	app, now := newTestApp()
	app.HandleKey(tcell.KeyRune, '2', *now)

	app.HandleKey(tcell.KeyDown, 0, *now)
	app.Tick(*now)

	assert.InDelta(t, -game.PaddleSpeed, app.Match().Snapshot().RightPaddle.Y, 1e-9)
}

func TestKeysIgnoredOutsidePlay(t *testing.T) {
	app, now := newTestApp()

	app.HandleKey(tcell.KeyRune, 'w', *now)
	app.HandleKey(tcell.KeyRune, '2', *now)
	app.Tick(*now)

	assert.Equal(t, 0.0, leftY(app))
}

func TestPauseAndMenu(t *testing.T) {
	app, now := newTestApp()
	app.HandleKey(tcell.KeyRune, '1', *now)

	app.HandleKey(tcell.KeyRune, 'p', *now)
	assert.True(t, app.Match().IsPaused())

	canvas := newFakeCanvas(80, 24)
	app.Draw(canvas, *now)
	assert.True(t, canvas.contains("PAUSED"))

	app.HandleKey(tcell.KeyEscape, 0, *now)
	assert.True(t, app.Match().IsPaused(), "Escape should only pause")

	app.HandleKey(tcell.KeyRune, 'p', *now)
	assert.False(t, app.Match().IsPaused())

	app.HandleKey(tcell.KeyRune, 'm', *now)
	assert.Equal(t, game.Playing, app.Match().State())

	app.HandleKey(tcell.KeyRune, 'p', *now)
	app.HandleKey(tcell.KeyRune, 'm', *now)
	assert.Equal(t, game.Waiting, app.Match().State())
}

func TestQuitKeys(t *testing.T) {
	app, now := newTestApp()

	assert.False(t, app.HandleKey(tcell.KeyRune, 'q', *now))
	assert.False(t, app.HandleKey(tcell.KeyCtrlC, 0, *now))
}

func TestGameOverPlayAgain(t *testing.T) {
	app, now := newTestApp()
	app.HandleKey(tcell.KeyRune, '1', *now)
	for i := 0; i < game.PointsToWin; i++ {
		app.Match().OnScore(game.Player2)
	}
	require.Equal(t, game.GameOver, app.Match().State())

	canvas := newFakeCanvas(80, 24)
	app.Draw(canvas, *now)
	assert.True(t, canvas.contains("Player 2 wins!"))
	assert.True(t, canvas.contains("r  play again"))

	app.HandleKey(tcell.KeyRune, 'r', *now)
	assert.Equal(t, game.Playing, app.Match().State())
	assert.True(t, app.Match().IsSinglePlayer())
	assert.Equal(t, game.Score{}, app.Match().Score())
}

func TestDrawBallAndPaddles(t *testing.T) {
	app, now := newTestApp()
	app.HandleKey(tcell.KeyRune, '2', *now)

	canvas := newFakeCanvas(81, 24)
	app.Draw(canvas, *now)

	view := layout(81, 24)
	bx, by := view.cell(0, 0)
	assert.Equal(t, ballRune, canvas.cells[[2]int{bx, by}])

	lx, ly := view.cell(-game.ArenaWidth/2+game.PaddleWidth/2, 0)
	assert.Equal(t, paddleRune, canvas.cells[[2]int{lx, ly}])
	rx, ry := view.cell(game.ArenaWidth/2-game.PaddleWidth/2, 0)
	assert.Equal(t, paddleRune, canvas.cells[[2]int{rx, ry}])
}

func TestViewportCorners(t *testing.T) {
	view := layout(81, 24)

	x, y := view.cell(-game.ArenaWidth/2, game.ArenaHeight/2)
	assert.Equal(t, 0, x)
	assert.Equal(t, 2, y)

	x, y = view.cell(game.ArenaWidth/2, -game.ArenaHeight/2)
	assert.Equal(t, 80, x)
	assert.Equal(t, 21, y)
}

func TestSmallTerminal(t *testing.T) {
	app, now := newTestApp()
	canvas := newFakeCanvas(19, 5)

	app.Draw(canvas, *now)

	assert.True(t, canvas.contains("terminal too"))
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)

	app := New(Options{FrameInterval: time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, app.Run(ctx, screen))
}

func TestEscapePauses(t *testing.T) {
	app, now := newTestApp()
	app.HandleKey(tcell.KeyEscape, 0, *now)
	assert.Equal(t, game.Waiting, app.Match().State())

	app.HandleKey(tcell.KeyRune, '2', *now)
	app.HandleKey(tcell.KeyEscape, 0, *now)
	assert.True(t, app.Match().IsPaused())
}

func TestWinnerDrawnInSideColour(t *testing.T) {
	assert.Equal(t, player1Style, sideStyle(game.Player1.Side()))
	assert.Equal(t, player2Style, sideStyle(game.Player2.Side()))
}
