package input

import (
	"log"

	"snake/internal/domain"
	"snake/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyDirections = []struct {
	keys []ebiten.Key
	dir  domain.Direction
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyUp}, domain.DirectionUp},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyDown}, domain.DirectionDown},
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyLeft}, domain.DirectionLeft},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyRight}, domain.DirectionRight},
}

// KeyboardSource collects key presses on the ebiten update goroutine and
// hands them to the input poller through a buffered channel.
type KeyboardSource struct {
	events chan engine.InputEvent
}

func NewKeyboardSource() *KeyboardSource {
	return &KeyboardSource{
		events: make(chan engine.InputEvent, 32),
	}
}

// Update must be called from ebiten's Update.
func (k *KeyboardSource) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		k.Push(engine.InputEvent{Type: engine.InputQuit})
	}

	for _, kd := range keyDirections {
		for _, key := range kd.keys {
			if inpututil.IsKeyJustPressed(key) {
				k.Push(engine.InputEvent{Type: engine.InputDirection, Direction: kd.dir})
				break
			}
		}
	}
}

// Push queues ev and reports whether it fit.
func (k *KeyboardSource) Push(ev engine.InputEvent) bool {
	select {
	case k.events <- ev:
		return true
	default:
		log.Println("Input channel full, dropping key")
		return false
	}
}

func (k *KeyboardSource) Poll() (engine.InputEvent, bool) {
	select {
	case ev := <-k.events:
		return ev, true
	default:
		return engine.InputEvent{}, false
	}
}
