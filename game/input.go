package game

import "sync"

// Keys is the up/down state of one paddle's controls.
type Keys struct {
	Up   bool `json:"up"`
	Down bool `json:"down"`
}

// Input is the snapshot of both paddles' controls read once per frame.
type Input struct {
	Left  Keys `json:"left"`
	Right Keys `json:"right"`
}

func (in Input) For(side Side) Keys {
	if side == Right {
		return in.Right
	}
	return in.Left
}

// Controls holds the latest input flags. Input collaborators write from their own
// goroutines; the frame loop reads a snapshot at the start of each step.
type Controls struct {
	mu sync.Mutex
	in Input
}

func (c *Controls) Set(side Side, dir Direction, pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := &c.in.Left
	if side == Right {
		keys = &c.in.Right
	}
	switch dir {
	case Up:
		keys.Up = pressed
	case Down:
		keys.Down = pressed
	}
}

func (c *Controls) Snapshot() Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.in
}

func (c *Controls) Clear() {
	c.mu.Lock()
	c.in = Input{}
	c.mu.Unlock()
}
