package terminal

import (
	"log"

	"snake/internal/domain"
	"snake/internal/engine"

	"github.com/gdamore/tcell/v2"
)

// KeyToInput maps a key press to an input event. Unmapped keys report false.
func KeyToInput(key tcell.Key, ch rune) (engine.InputEvent, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.InputEvent{Type: engine.InputQuit}, true
	case tcell.KeyUp:
		return direction(domain.DirectionUp), true
	case tcell.KeyDown:
		return direction(domain.DirectionDown), true
	case tcell.KeyLeft:
		return direction(domain.DirectionLeft), true
	case tcell.KeyRight:
		return direction(domain.DirectionRight), true
	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			return engine.InputEvent{Type: engine.InputQuit}, true
		case 'w', 'W':
			return direction(domain.DirectionUp), true
		case 's', 'S':
			return direction(domain.DirectionDown), true
		case 'a', 'A':
			return direction(domain.DirectionLeft), true
		case 'd', 'D':
			return direction(domain.DirectionRight), true
		}
	}
	return engine.InputEvent{}, false
}

func direction(d domain.Direction) engine.InputEvent {
	return engine.InputEvent{Type: engine.InputDirection, Direction: d}
}

// KeySource reads tcell events on its own goroutine and queues the mapped
// input for the poller.
type KeySource struct {
	screen tcell.Screen
	events chan engine.InputEvent
}

func NewKeySource(screen tcell.Screen) *KeySource {
	return &KeySource{
		screen: screen,
		events: make(chan engine.InputEvent, 32),
	}
}

// Run blocks in PollEvent until the screen is finalized.
func (k *KeySource) Run() {
	for {
		ev := k.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			k.screen.Sync()
		case *tcell.EventKey:
			if in, ok := KeyToInput(ev.Key(), ev.Rune()); ok {
				k.push(in)
			}
		}
	}
}

func (k *KeySource) push(ev engine.InputEvent) {
	select {
	case k.events <- ev:
	default:
		log.Println("Input channel full, dropping key")
	}
}

func (k *KeySource) Poll() (engine.InputEvent, bool) {
	select {
	case ev := <-k.events:
		return ev, true
	default:
		return engine.InputEvent{}, false
	}
}
