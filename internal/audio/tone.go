package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone is a finite oscillator whose pitch slides linearly from "from" to "to"
// over its length, with a linear fade in and fade out.
type tone struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate

	total int
	fade  int
	pos   int
	phase float64
}

func NewTone(from, to float64, length, fade time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	total := rate.N(length)
	f := rate.N(fade)
	if f*2 > total {
		f = total / 2
	}
	return &tone{
		from:  from,
		to:    to,
		wave:  wave,
		rate:  rate,
		total: total,
		fade:  f,
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}

	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}

		v := t.sample() * t.gain()
		samples[i][0] = v
		samples[i][1] = v

		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

func (t *tone) sample() float64 {
	switch t.wave {
	case WaveSquare:
		if t.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(t.phase-0.5)
	}
	return math.Sin(2 * math.Pi * t.phase)
}

func (t *tone) gain() float64 {
	if t.fade == 0 {
		return 1
	}
	if t.pos < t.fade {
		return float64(t.pos) / float64(t.fade)
	}
	if left := t.total - t.pos; left < t.fade {
		return float64(left) / float64(t.fade)
	}
	return 1
}

// withVolume scales a streamer linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
