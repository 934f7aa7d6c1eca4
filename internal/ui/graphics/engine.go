package graphics

import (
	"fmt"
	"sync"

	"snake/internal/domain"
	"snake/internal/engine"
	"snake/internal/ui/graphics/components"
	"snake/internal/ui/graphics/input"
	"snake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
)

const hudHeight = 24

// Engine is the windowed frontend. The game loop renders into it from its own
// goroutine; ebiten draws the latest snapshot on the main goroutine.
type Engine struct {
	settings domain.GameSettings

	fieldRenderer *components.FieldRenderer
	hud           *components.HUD
	keyboard      *input.KeyboardSource

	snapshot     *domain.Snapshot
	title        string
	titleChanged bool
	dataMu       sync.RWMutex

	done    <-chan struct{}
	closing bool
}

func NewEngine(settings domain.GameSettings) *Engine {
	types.InitFonts()

	fr := components.NewFieldRenderer()
	fr.TopBar = hudHeight

	return &Engine{
		settings:      settings,
		fieldRenderer: fr,
		hud:           components.NewHUD(hudHeight),
		keyboard:      input.NewKeyboardSource(),
		title:         "Snake",
	}
}

func (e *Engine) Input() engine.InputSource {
	return e.keyboard
}

// Run blocks on the main goroutine until the window is closed and done is
// closed by the session teardown.
func (e *Engine) Run(done <-chan struct{}) error {
	e.done = done

	ebiten.SetWindowSize(e.settings.ScreenWidth, e.settings.ScreenHeight+hudHeight)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(e.settings.FramesPerSecond)

	err := ebiten.RunGame(e)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

func (e *Engine) Update() error {
	select {
	case <-e.done:
		return ebiten.Termination
	default:
	}

	if ebiten.IsWindowBeingClosed() {
		e.requestClose()
	}
	e.keyboard.Update()

	e.dataMu.Lock()
	if e.titleChanged {
		ebiten.SetWindowTitle(e.title)
		e.titleChanged = false
	}
	e.dataMu.Unlock()

	return nil
}

// requestClose queues a quit for the window close. A full input queue leaves
// closing unset so the next Update tries again.
func (e *Engine) requestClose() {
	if e.closing {
		return
	}
	e.closing = e.keyboard.Push(engine.InputEvent{Type: engine.InputQuit})
}

func (e *Engine) Draw(screen *ebiten.Image) {
	screen.Fill(types.ColorBackground)

	e.dataMu.RLock()
	snapshot := e.snapshot
	e.dataMu.RUnlock()
	if snapshot == nil {
		return
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	e.fieldRenderer.CalculateLayout(w, h, snapshot.GridWidth, snapshot.GridHeight)

	e.fieldRenderer.DrawField(screen, snapshot.GridWidth, snapshot.GridHeight)
	if snapshot.FoodValid {
		e.fieldRenderer.DrawFood(screen, snapshot.Food)
	}
	if snapshot.PoisonActive {
		e.fieldRenderer.DrawPoison(screen, snapshot.Poison)
	}
	e.fieldRenderer.DrawSnake(screen, *snapshot)

	e.hud.Draw(screen, *snapshot, w)
	if !snapshot.Alive {
		e.hud.DrawGameOver(screen, w, h)
	}
}

func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Render keeps the snapshot for the next Draw.
func (e *Engine) Render(snapshot domain.Snapshot) {
	e.dataMu.Lock()
	e.snapshot = &snapshot
	e.dataMu.Unlock()
}

func (e *Engine) UpdateWindowTitle(score, fps int) {
	e.dataMu.Lock()
	e.title = WindowTitle(score, fps)
	e.titleChanged = true
	e.dataMu.Unlock()
}

func WindowTitle(score, fps int) string {
	return fmt.Sprintf("Snake Score: %d FPS: %d", score, fps)
}
