package audio

import (
	"time"

	"snake/internal/engine"

	"github.com/gopxl/beep"
)

type Cue int

const (
	CueNone Cue = iota
	CueEat
	CueHazard
	CuePoison
	CueCure
	CueDeath
)

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueHazard:
		return "hazard"
	case CuePoison:
		return "poison"
	case CueCure:
		return "cure"
	case CueDeath:
		return "death"
	}
	return "none"
}

// CueFor picks the sound for a game event.
func CueFor(event engine.Event) Cue {
	switch event.Type {
	case engine.EventFoodEaten:
		return CueEat
	case engine.EventHazardActivated:
		return CueHazard
	case engine.EventPoisoned:
		return CuePoison
	case engine.EventPoisonCured:
		return CueCure
	case engine.EventSnakeDied:
		return CueDeath
	}
	return CueNone
}

// Streamer builds a fresh, finite streamer for a cue.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	const fade = 5 * time.Millisecond

	switch c {
	case CueEat:
		return NewTone(660, 990, 80*time.Millisecond, fade, WaveSine, rate)
	case CueHazard:
		return beep.Seq(
			NewTone(440, 440, 60*time.Millisecond, fade, WaveTriangle, rate),
			beep.Silence(rate.N(30*time.Millisecond)),
			NewTone(440, 440, 60*time.Millisecond, fade, WaveTriangle, rate),
		)
	case CuePoison:
		return beep.Mix(
			withVolume(NewTone(300, 150, 250*time.Millisecond, fade, WaveSquare, rate), 0.5),
			withVolume(NewTone(310, 160, 250*time.Millisecond, fade, WaveSine, rate), 0.5),
		)
	case CueCure:
		return NewTone(400, 800, 150*time.Millisecond, fade, WaveSine, rate)
	case CueDeath:
		return beep.Seq(
			NewTone(392, 392, 150*time.Millisecond, fade, WaveSquare, rate),
			NewTone(330, 330, 150*time.Millisecond, fade, WaveSquare, rate),
			NewTone(262, 200, 400*time.Millisecond, fade, WaveSquare, rate),
		)
	}
	return nil
}
