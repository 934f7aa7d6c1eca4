package audio

import (
	"testing"
	"time"

	"snake/internal/engine"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1.0001 || buf[i][0] > 1.0001 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatalf("streamer did not end within %d samples", limit)
	return total
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewTone(440, 880, 100*time.Millisecond, 10*time.Millisecond, WaveSine, rate)

	if got, want := drain(t, s, rate.N(time.Second)), rate.N(100*time.Millisecond); got != want {
		t.Errorf("streamed %d samples, want %d", got, want)
	}
	if s.Err() != nil {
		t.Errorf("Err = %v", s.Err())
	}
}

func TestToneFadesFromSilence(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewTone(440, 440, 50*time.Millisecond, 10*time.Millisecond, WaveSquare, rate)

	buf := make([][2]float64, 1)
	s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 at the start of the fade in", buf[0][0])
	}
}

func TestEveryCueIsFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, cue := range []Cue{CueEat, CueHazard, CuePoison, CueCure, CueDeath} {
		t.Run(cue.String(), func(t *testing.T) {
			s := cue.Streamer(rate)
			if s == nil {
				t.Fatal("nil streamer")
			}
			if n := drain(t, s, rate.N(5*time.Second)); n == 0 {
				t.Error("cue produced no samples")
			}
		})
	}
	if CueNone.Streamer(rate) != nil {
		t.Error("CueNone should have no streamer")
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		event engine.EventType
		want  Cue
	}{
		{engine.EventFoodEaten, CueEat},
		{engine.EventHazardActivated, CueHazard},
		{engine.EventPoisoned, CuePoison},
		{engine.EventPoisonCured, CueCure},
		{engine.EventSnakeDied, CueDeath},
		{engine.EventFoodPlaced, CueNone},
		{engine.EventQuit, CueNone},
	}

	for _, tt := range tests {
		if got := CueFor(engine.Event{Type: tt.event}); got != tt.want {
			t.Errorf("CueFor(%s) = %s, want %s", tt.event, got, tt.want)
		}
	}
}

func TestPlayerWithoutSpeakerStaysSilent(t *testing.T) {
	p := NewPlayer(0.5)

	p.HandleEvent(engine.Event{Type: engine.EventFoodEaten})
	p.HandleEvent(engine.Event{Type: engine.EventFoodEaten})
	p.HandleEvent(engine.Event{Type: engine.EventFoodPlaced})

	if p.Enabled() {
		t.Fatal("player should be disabled before Init")
	}
	if got := p.Played(CueEat); got != 2 {
		t.Errorf("Played(eat) = %d, want 2", got)
	}
	if got := p.mixer.Len(); got != 0 {
		t.Errorf("mixer has %d streamers, want 0", got)
	}
	p.Close()
}
