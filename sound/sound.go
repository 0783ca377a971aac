// Package sound synthesizes the game's sound effects and encodes them as WAV files
// for browser clients to play.
package sound

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

const (
	Paddle = "paddle"
	Wall   = "wall"
	Score  = "score"
	Win    = "win"
)

const sampleRate = beep.SampleRate(44100)

var ErrUnknown = errors.New("unknown sound")

type note struct {
	freq     float64
	duration time.Duration
}

var recipes = map[string][]note{
	Paddle: {{880, 60 * time.Millisecond}},
	Wall:   {{440, 40 * time.Millisecond}},
	Score:  {{659.25, 90 * time.Millisecond}, {987.77, 140 * time.Millisecond}},
	Win: {
		{523.25, 120 * time.Millisecond},
		{659.25, 120 * time.Millisecond},
		{783.99, 120 * time.Millisecond},
		{1046.5, 240 * time.Millisecond},
	},
}

// Library renders sounds on first use and keeps the encoded bytes.
type Library struct {
	mu    sync.Mutex
	cache map[string][]byte
}

func NewLibrary() *Library {
	return &Library{cache: make(map[string][]byte)}
}

func (l *Library) Names() []string {
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WAV returns the named sound as a 16-bit mono WAV file.
func (l *Library) WAV(name string) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if data, ok := l.cache[name]; ok {
		return data, nil
	}

	s, err := Streamer(name)
	if err != nil {
		return nil, err
	}
	out := &writeSeeker{}
	format := beep.Format{SampleRate: sampleRate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(out, s, format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	l.cache[name] = out.buf
	return out.buf, nil
}

// Streamer builds a fresh streamer for the named sound.
func Streamer(name string) (beep.Streamer, error) {
	notes, ok := recipes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %v Hz: %w", n.freq, err)
		}
		length := sampleRate.N(n.duration)
		parts = append(parts, newEnvelope(beep.Take(length, tone), length, sampleRate.N(5*time.Millisecond)))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: math.Log2(0.6)}, nil
}

// Samples is the length of the named sound in samples.
func Samples(name string) int {
	total := 0
	for _, n := range recipes[name] {
		total += sampleRate.N(n.duration)
	}
	return total
}
