package sound

import (
	"io"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{Paddle, Score, Wall, Win}, NewLibrary().Names())
}

func TestWAVHeader(t *testing.T) {
	lib := NewLibrary()

	for _, name := range lib.Names() {
		data, err := lib.WAV(name)
		require.NoError(t, err, name)

		require.Greater(t, len(data), 44, name)
		assert.Equal(t, "RIFF", string(data[0:4]), name)
		assert.Equal(t, "WAVE", string(data[8:12]), name)
		assert.GreaterOrEqual(t, len(data), 44+Samples(name)*2, "%s should hold every sample", name)
	}
}

func TestWAVIsCached(t *testing.T) {
	lib := NewLibrary()

	first, err := lib.WAV(Score)
	require.NoError(t, err)
	second, err := lib.WAV(Score)
	require.NoError(t, err)

	assert.Same(t, &first[0], &second[0])
}

func TestUnknownSound(t *testing.T) {
	_, err := NewLibrary().WAV("kazoo")

	assert.ErrorIs(t, err, ErrUnknown)
}

func TestStreamerLengthAndRange(t *testing.T) {
	s, err := Streamer(Paddle)
	require.NoError(t, err)

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			if sample[0] > peak {
				peak = sample[0]
			}
		}
		total += n
		if !ok {
			break
		}
	}

	assert.Equal(t, Samples(Paddle), total)
	assert.LessOrEqual(t, peak, 1.0)
	assert.Greater(t, peak, 0.0)
}

func TestEnvelopeStartsSilent(t *testing.T) {
	ones := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	env := newEnvelope(ones, 10, 4)

	buf := make([][2]float64, 10)
	env.Stream(buf)

	assert.Equal(t, 0.0, buf[0][0], "first sample should be silent")
	assert.Equal(t, 1.0, buf[4][0], "attack should finish at full volume")
	assert.InDelta(t, 1.0/6, buf[9][0], 1e-12, "release should fade linearly")
}

func TestWriteSeeker(t *testing.T) {
	w := &writeSeeker{}
	_, _ = w.Write([]byte("hello world"))

	_, err := w.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, _ = w.Write([]byte("J"))

	pos, err := w.Seek(-5, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)
	assert.Equal(t, "Jello world", string(w.buf))

	_, err = w.Seek(-1, io.SeekStart)
	assert.Error(t, err)
}
