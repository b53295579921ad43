package console

import (
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// alertTone is an audible fault-alert: a short square-wave beep played
// through the default audio device whenever a console test run reports
// a nonzero error delta. Grounded on audio_backend_oto.go's
// oto.NewContext/NewPlayer setup, generalized here from a continuous
// chip-sample reader to a one-shot alert generator.
type alertTone struct {
	mu      sync.Mutex
	ctx     *oto.Context
	ready   bool
	playing atomic.Bool
}

const (
	alertSampleRate = 44100
	alertFreqHz     = 880.0
	alertSeconds    = 0.25
)

func newAlertTone() *alertTone {
	return &alertTone{}
}

func (a *alertTone) init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ready {
		return nil
	}
	ctx, readyCh, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   alertSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return err
	}
	<-readyCh
	a.ctx = ctx
	a.ready = true
	return nil
}

// Play renders a square-wave beep and plays it once. It is a no-op
// (but not an error) if a previous beep is still playing, so a burst
// of failing tests doesn't pile up overlapping players.
func (a *alertTone) Play() error {
	if err := a.init(); err != nil {
		return err
	}
	if !a.playing.CompareAndSwap(false, true) {
		return nil
	}

	samples := toneSamples(alertSampleRate, alertFreqHz, alertSeconds)
	player := a.ctx.NewPlayer(&toneReader{samples: samples})
	player.Play()

	go func() {
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
		a.playing.Store(false)
	}()
	return nil
}

// toneReader hands out a fixed square-wave buffer as little-endian
// float32 PCM, the same sample format audio_backend_oto.go's
// OtoPlayer.Read used for live chip output.
type toneReader struct {
	samples []float32
	pos     int
}

func (t *toneReader) Read(p []byte) (int, error) {
	n := len(p) / 4
	if n > len(t.samples)-t.pos {
		n = len(t.samples) - t.pos
	}
	for i := 0; i < n; i++ {
		putFloat32LE(p[i*4:], t.samples[t.pos+i])
	}
	t.pos += n
	if t.pos >= len(t.samples) {
		return n * 4, io.EOF
	}
	return n * 4, nil
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func toneSamples(rate int, freq, seconds float64) []float32 {
	n := int(float64(rate) * seconds)
	out := make([]float32, n)
	period := float64(rate) / freq
	for i := range out {
		if float64(int(float64(i))%int(period)) < period/2 {
			out[i] = 0.2
		} else {
			out[i] = -0.2
		}
	}
	return out
}
