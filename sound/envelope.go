package sound

import "github.com/gopxl/beep"

// envelope fades a note in over attack samples and linearly out over the rest,
// so consecutive blips do not click.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack int) beep.Streamer {
	if attack > total {
		attack = total
	}
	return &envelope{streamer: s, attack: attack, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		switch {
		case e.position < e.attack:
			vol = float64(e.position) / float64(e.attack)
		case e.total > e.attack:
			vol = float64(e.total-e.position) / float64(e.total-e.attack)
		}
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error {
	return e.streamer.Err()
}
