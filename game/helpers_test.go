package game

import "time"

// fixedRand always yields the same value. 0.5 maps every uniform range to its midpoint,
// which zeroes wall jitter, serve spread and AI error.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
