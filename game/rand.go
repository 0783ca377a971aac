package game

import (
	"math/rand"
	"time"
)

// Rand is the source of uniform numbers in [0, 1) used for serves, wall jitter and AI error.
type Rand interface {
	Float64() float64
}

// Clock returns the current time. Tests replace it to drive the score cooldown.
type Clock func() time.Time

func newRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
