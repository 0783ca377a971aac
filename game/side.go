package game

import "fmt"

type Side int

const (
	Left Side = iota
	Right
)

var sideName = map[Side]string{
	Left:  "left",
	Right: "right",
}

func (s Side) String() string {
	return sideName[s]
}

func (s Side) MarshalText() ([]byte, error) {
	name, ok := sideName[s]
	if !ok {
		return nil, fmt.Errorf("unknown side %d", int(s))
	}
	return []byte(name), nil
}

func ParseSide(name string) (Side, error) {
	switch name {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown side %q", name)
}

// Player identifies who a point is credited to. Player1 owns the left paddle.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

var playerName = map[Player]string{
	NoPlayer: "",
	Player1:  "player1",
	Player2:  "player2",
}

func (p Player) String() string {
	return playerName[p]
}

// Label is the human readable name shown by the UI shells.
func (p Player) Label() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	}
	return ""
}

func (p Player) Side() Side {
	if p == Player2 {
		return Right
	}
	return Left
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(playerName[p]), nil
}
