package game

import "fmt"

type Direction int

const (
	Up Direction = iota
	Down
)

var directionName = map[Direction]string{
	Up:   "up",
	Down: "down",
}

func (d Direction) String() string {
	return directionName[d]
}

func ParseDirection(name string) (Direction, error) {
	switch name {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}
