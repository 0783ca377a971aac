package terminal

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"pong3d/game"
)

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	player1Style    = backgroundStyle.Foreground(tcell.NewRGBColor(255, 0, 229))
	player2Style    = backgroundStyle.Foreground(tcell.NewRGBColor(0, 243, 255))
	wallStyle       = backgroundStyle.Foreground(tcell.ColorGray)
	ballStyle       = backgroundStyle.Foreground(tcell.ColorWhite).Bold(true)
	textStyle       = backgroundStyle.Foreground(tcell.ColorWhite)
	dimStyle        = backgroundStyle.Foreground(tcell.ColorDarkGray)
)

const (
	paddleRune = '█'
	ballRune   = '●'
	wallRune   = '▀'
	netRune    = '┊'
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// viewport maps arena coordinates onto the cells between the two walls.
type viewport struct {
	left, top     int
	width, height int
}

// layout reserves the first row for the score, the last row for hints and
// one row for each wall.
func layout(width, height int) viewport {
	return viewport{left: 0, top: 2, width: width, height: height - 4}
}

func (v viewport) cell(x, y float64) (int, int) {
	col := (x + game.ArenaWidth/2) / game.ArenaWidth * float64(v.width-1)
	row := (game.ArenaHeight/2 - y) / game.ArenaHeight * float64(v.height-1)
	return v.left + int(math.Round(col)), v.top + int(math.Round(row))
}

// Draw renders the current match onto c.
func (a *App) Draw(c Canvas, now time.Time) {
	width, height := c.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.SetContent(x, y, ' ', nil, backgroundStyle)
		}
	}
	if width < 20 || height < 10 {
		drawCentered(c, height/2, "terminal too small", textStyle)
		return
	}

	snap := a.match.Snapshot()
	view := layout(width, height)

	drawScore(c, width, snap)
	for x := 0; x < width; x++ {
		c.SetContent(x, view.top-1, wallRune, nil, wallStyle)
		c.SetContent(x, view.top+view.height, wallRune, nil, wallStyle)
	}
	netCol, _ := view.cell(0, 0)
	for y := view.top; y < view.top+view.height; y += 2 {
		c.SetContent(netCol, y, netRune, nil, dimStyle)
	}

	if snap.State != game.Waiting {
		drawPaddle(c, view, snap.LeftPaddle, sideStyle(game.Left))
		drawPaddle(c, view, snap.RightPaddle, sideStyle(game.Right))
		bx, by := view.cell(snap.Ball.Position.X, snap.Ball.Position.Y)
		c.SetContent(bx, by, ballRune, nil, ballStyle)
	}

	switch snap.State {
	case game.Waiting:
		mid := view.top + view.height/2
		drawCentered(c, mid-2, "3 D   P O N G", player1Style.Bold(true))
		drawCentered(c, mid, "1  single player (vs AI)", textStyle)
		drawCentered(c, mid+1, "2  two players", textStyle)
		drawCentered(c, mid+3, "q  quit", dimStyle)
	case game.Paused:
		mid := view.top + view.height/2
		drawCentered(c, mid-1, "PAUSED", player2Style.Bold(true))
		drawCentered(c, mid+1, "p  resume    m  main menu", textStyle)
	case game.GameOver:
		mid := view.top + view.height/2
		style := sideStyle(snap.Winner.Side())
		drawCentered(c, mid-1, snap.Winner.Label()+" wins!", style.Bold(true))
		drawCentered(c, mid+1, "r  play again    m  main menu", textStyle)
	}

	footer := "w/s  left paddle    ↑/↓  right paddle    p  pause    q  quit"
	if snap.SinglePlayer {
		footer = "w/s  move    p  pause    q  quit"
	}
	if a.toast != "" && now.Before(a.toastUntil) {
		drawCentered(c, height-1, a.toast, player2Style)
	} else {
		drawCentered(c, height-1, footer, dimStyle)
	}
}

func sideStyle(side game.Side) tcell.Style {
	if side == game.Right {
		return player2Style
	}
	return player1Style
}

func drawScore(c Canvas, width int, snap game.Snapshot) {
	right := "PLAYER 2"
	if snap.SinglePlayer {
		right = "AI"
	}
	drawText(c, 1, 0, fmt.Sprintf("PLAYER 1  %d", snap.Score.Player1), player1Style)
	label := fmt.Sprintf("%d  %s", snap.Score.Player2, right)
	drawText(c, width-1-len([]rune(label)), 0, label, player2Style)
}

func drawPaddle(c Canvas, view viewport, p game.PaddleView, style tcell.Style) {
	col, top := view.cell(p.X, p.Y+game.PaddleHeight/2)
	_, bottom := view.cell(p.X, p.Y-game.PaddleHeight/2)
	for row := top; row <= bottom; row++ {
		c.SetContent(col, row, paddleRune, nil, style)
	}
}

func drawCentered(c Canvas, row int, text string, style tcell.Style) {
	width, _ := c.Size()
	drawText(c, (width-len([]rune(text)))/2, row, text, style)
}

func drawText(c Canvas, col, row int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		c.SetContent(col+i, row, r, nil, style)
	}
}
