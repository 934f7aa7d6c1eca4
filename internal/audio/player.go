// Package audio plays short synthesized cues for game events.
package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"snake/internal/engine"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player turns session events into sounds. Without a working audio device it
// stays silent and the game runs unchanged.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	enabled bool
	played  map[Cue]int
}

func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		played: make(map[Cue]int),
	}
}

// Init opens the speaker. A failure leaves the player disabled.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init failed: %w", err)
	}
	speaker.Play(p.mixer)
	p.enabled = true
	log.Println("AUDIO: speaker ready")
	return nil
}

func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *Player) HandleEvent(event engine.Event) {
	cue := CueFor(event)
	if cue == CueNone {
		return
	}
	p.Play(cue)
}

func (p *Player) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.played[cue]++
	if !p.enabled {
		return
	}

	s := cue.Streamer(sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	speaker.Unlock()
}

// Played counts requested cues, including ones dropped while disabled.
func (p *Player) Played(cue Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[cue]
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.enabled = false
}
