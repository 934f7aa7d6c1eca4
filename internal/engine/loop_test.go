package engine

import (
	"context"
	"testing"
	"time"

	"snake/internal/domain"
)

func TestTickEatsFoodAndGrowsOnNextCrossing(t *testing.T) {
	opts := defaultWorldOptions()
	opts.mode = SpawnAsync
	w := newWorld(t, opts)
	now := time.Now()
	w.hazard.Reset(now)

	// head at (5,5) moving up with speed 1 lands on (5,4) next tick
	w.food.place(domain.Cell{X: 5, Y: 4})

	if !w.loop.Tick(now) {
		t.Fatal("Tick ended the session")
	}
	if w.loop.Score() != 1 {
		t.Fatalf("score = %d, want 1", w.loop.Score())
	}
	if w.snake.Size() != 1 || len(w.snake.Body()) != 0 {
		t.Fatalf("size=%d body=%v right after eating, want growth deferred", w.snake.Size(), w.snake.Body())
	}
	if got := w.snake.Speed(); got != float32(1)+w.loop.tuning.SpeedIncrement {
		t.Errorf("speed = %v, want 1 + increment", got)
	}

	ok := eventually(t, time.Second, func() bool {
		w.food.Poll()
		return w.food.Food().Valid
	})
	if !ok {
		t.Fatal("replacement food never published")
	}
	for _, c := range w.snake.Cells() {
		if c == w.food.Food().Cell {
			t.Fatalf("new food %v overlaps the snake", c)
		}
	}

	w.loop.Tick(now)
	if w.snake.Size() != 2 {
		t.Errorf("size = %d after the next crossing, want 2", w.snake.Size())
	}

	if !hasEvent(drainEvents(w.events), EventFoodEaten) {
		t.Error("missing food-eaten event")
	}
}

func TestTickRendersSnapshot(t *testing.T) {
	w := newWorld(t, defaultWorldOptions())
	now := time.Now()
	w.hazard.Reset(now)

	w.loop.Tick(now)
	w.loop.Tick(now)

	if got := w.renderer.frameCount(); got != 2 {
		t.Errorf("rendered %d frames, want 2", got)
	}
	latest := w.loop.Latest()
	if latest == nil {
		t.Fatal("Latest is nil after ticking")
	}
	if latest.Tick != 2 || latest.HeadCell != w.snake.HeadCell() {
		t.Errorf("latest = %+v", latest)
	}
	if latest.GridWidth != 10 || latest.GridHeight != 10 {
		t.Errorf("grid = %dx%d", latest.GridWidth, latest.GridHeight)
	}
}

func TestTickStopsOnQuit(t *testing.T) {
	w := newWorld(t, defaultWorldOptions())
	w.controller.Push(InputEvent{Type: InputQuit})

	if w.loop.Tick(time.Now()) {
		t.Error("Tick continued after quit")
	}
	if !hasEvent(drainEvents(w.events), EventQuit) {
		t.Error("missing quit event")
	}
}

// killSnake drives a size five snake into its own body.
func killSnake(t *testing.T, w *world, now time.Time) bool {
	t.Helper()
	w.controller.Push(steer(domain.DirectionRight))
	for i := 0; i < 4; i++ {
		w.snake.Grow()
		w.loop.Tick(now)
	}
	cont := true
	for _, d := range []domain.Direction{domain.DirectionDown, domain.DirectionLeft, domain.DirectionUp} {
		w.controller.Push(steer(d))
		cont = w.loop.Tick(now)
	}
	if w.snake.Alive() {
		t.Fatal("snake survived the loop")
	}
	return cont
}

func TestDeathKeepsSessionByDefault(t *testing.T) {
	opts := defaultWorldOptions()
	opts.width, opts.height = 20, 20
	w := newWorld(t, opts)
	now := time.Now()
	w.hazard.Reset(now)
	w.food.place(domain.Cell{X: 0, Y: 0})

	if !killSnake(t, w, now) {
		t.Fatal("session ended on death with EndOnDeath off")
	}
	head := w.snake.Head()
	if !w.loop.Tick(now) {
		t.Fatal("Tick after death ended the session")
	}
	if w.snake.Head() != head {
		t.Error("dead snake kept moving")
	}

	died := 0
	for _, e := range drainEvents(w.events) {
		if e.Type == EventSnakeDied {
			died++
		}
	}
	if died != 1 {
		t.Errorf("snake-died emitted %d times, want 1", died)
	}
}

func TestDeathEndsSessionWhenConfigured(t *testing.T) {
	opts := defaultWorldOptions()
	opts.width, opts.height = 20, 20
	opts.tuning.EndOnDeath = true
	w := newWorld(t, opts)
	now := time.Now()
	w.hazard.Reset(now)
	w.food.place(domain.Cell{X: 0, Y: 0})

	if killSnake(t, w, now) {
		t.Error("session continued after death with EndOnDeath on")
	}
}

func TestCountFrameUpdatesTitleOncePerSecond(t *testing.T) {
	w := newWorld(t, defaultWorldOptions())
	start := time.Now()
	w.loop.titleTimestamp = start

	for i := 0; i < 30; i++ {
		w.loop.countFrame(start.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	if w.renderer.lastFPS != 0 {
		t.Fatalf("title updated before a second passed")
	}

	w.loop.countFrame(start.Add(time.Second))
	if w.renderer.lastFPS != 31 {
		t.Errorf("fps = %d, want 31", w.renderer.lastFPS)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	w := newWorld(t, defaultWorldOptions())
	clock := newFakeClock()
	w.loop.clock = clock

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.loop.Run(ctx) }()

	if !eventually(t, time.Second, func() bool { return w.loop.Latest() != nil }) {
		t.Fatal("loop never ticked")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run ignored cancellation")
	}
}
