package engine

import (
	"testing"
	"time"

	"snake/internal/domain"
)

func hazardWorld(t *testing.T, duration, revert time.Duration) *world {
	t.Helper()
	opts := defaultWorldOptions()
	opts.speed = 0.2
	opts.tuning.PoisonDuration = duration
	opts.tuning.PoisonRevertDelay = revert
	return newWorld(t, opts)
}

func TestActivatePlacesOffSnakeAndFood(t *testing.T) {
	w := hazardWorld(t, time.Hour, time.Hour)
	w.food.Spawn()

	if !w.hazard.Activate() {
		t.Fatal("Activate failed")
	}
	st := w.hazard.State()
	if !st.Active || !w.field.Contains(st.Cell) {
		t.Fatalf("state = %+v", st)
	}
	if w.snake.OccupiesCell(st.Cell) {
		t.Error("hazard placed on the snake")
	}
	if food := w.food.Food(); food.Valid && food.Cell == st.Cell {
		t.Error("hazard placed on the food")
	}
}

func TestActivateWhileActiveIsNoop(t *testing.T) {
	w := hazardWorld(t, time.Hour, time.Hour)

	w.hazard.Activate()
	first := w.hazard.State().Cell

	if w.hazard.Activate() {
		t.Error("second Activate should be a no-op")
	}
	if w.hazard.State().Cell != first {
		t.Error("second Activate moved the hazard")
	}
}

func TestMaybeActivateCadence(t *testing.T) {
	w := hazardWorld(t, time.Hour, time.Hour)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	w.hazard.Reset(start)
	if w.hazard.MaybeActivate(start.Add(9 * time.Second)) {
		t.Error("activated before the interval")
	}
	if !w.hazard.MaybeActivate(start.Add(10 * time.Second)) {
		t.Error("did not activate at the interval")
	}
	if w.hazard.MaybeActivate(start.Add(15 * time.Second)) {
		t.Error("activated again inside the next interval")
	}
}

func TestUneatenHazardExpires(t *testing.T) {
	w := hazardWorld(t, 20*time.Millisecond, time.Hour)

	w.hazard.Activate()
	if !eventually(t, time.Second, func() bool { return !w.hazard.Active() }) {
		t.Fatal("hazard never expired")
	}
	if w.hazard.State().Cell != domain.OffGrid {
		t.Error("expired hazard kept its cell")
	}
	if !hasEvent(drainEvents(w.events), EventHazardExpired) {
		t.Error("missing hazard-expired event")
	}
}

func TestPoisonHalvesAndRestoresExactSpeed(t *testing.T) {
	w := hazardWorld(t, time.Hour, 50*time.Millisecond)
	w.snake.SetSpeed(0.34)

	w.hazard.Activate()
	cell := w.hazard.State().Cell

	if !w.hazard.TryConsume(cell) {
		t.Fatal("TryConsume missed the hazard cell")
	}
	if got := w.snake.Speed(); got != float32(0.34)/2 {
		t.Errorf("speed = %v, want half of 0.34", got)
	}
	if w.hazard.Active() {
		t.Error("consumed hazard still active")
	}
	if !w.hazard.Poisoned() {
		t.Error("snake should be poisoned")
	}

	// food eaten while poisoned does not change what is restored
	w.snake.IncreaseSpeed(0.02)

	if !eventually(t, 2*time.Second, func() bool { return !w.hazard.Poisoned() }) {
		t.Fatal("poison never wore off")
	}
	if got := w.snake.Speed(); got != 0.34 {
		t.Errorf("restored speed = %v, want exactly 0.34", got)
	}

	events := drainEvents(w.events)
	for _, want := range []EventType{EventHazardConsumed, EventPoisoned, EventPoisonCured} {
		if !hasEvent(events, want) {
			t.Errorf("missing %s event", want)
		}
	}
}

func TestSecondBiteWhilePoisonedDoesNotStack(t *testing.T) {
	w := hazardWorld(t, time.Hour, time.Hour)
	w.snake.SetSpeed(0.4)

	w.hazard.Activate()
	w.hazard.TryConsume(w.hazard.State().Cell)

	w.hazard.Activate()
	if !w.hazard.TryConsume(w.hazard.State().Cell) {
		t.Fatal("second hazard not consumed")
	}

	if got := w.snake.Speed(); got != 0.2 {
		t.Errorf("speed = %v, want 0.2 after two bites", got)
	}
	if got := w.hazard.State().SavedSpeed; got != 0.4 {
		t.Errorf("SavedSpeed = %v, want 0.4", got)
	}
}

func TestSecondBiteKeepsRevertDeadline(t *testing.T) {
	const revert = 400 * time.Millisecond
	w := hazardWorld(t, time.Hour, revert)
	w.snake.SetSpeed(0.4)

	w.hazard.Activate()
	bitten := time.Now()
	w.hazard.TryConsume(w.hazard.State().Cell)

	time.Sleep(revert * 2 / 3)
	w.hazard.Activate()
	if !w.hazard.TryConsume(w.hazard.State().Cell) {
		t.Fatal("second hazard not consumed")
	}

	if !eventually(t, 2*revert, func() bool { return !w.hazard.Poisoned() }) {
		t.Fatal("poison never wore off")
	}
	// a reset timer would cure at revert*5/3 after the first bite
	if elapsed := time.Since(bitten); elapsed >= revert*3/2 {
		t.Errorf("cured %v after the first bite, want close to %v", elapsed, revert)
	}
	if got := w.snake.Speed(); got != 0.4 {
		t.Errorf("restored speed = %v, want exactly 0.4", got)
	}
}

func TestTryConsumeMisses(t *testing.T) {
	w := hazardWorld(t, time.Hour, time.Hour)

	if w.hazard.TryConsume(w.snake.HeadCell()) {
		t.Error("consumed an inactive hazard")
	}

	w.hazard.Activate()
	cell := w.hazard.State().Cell
	other := w.field.Normalize(domain.Cell{X: cell.X + 1, Y: cell.Y})
	if w.hazard.TryConsume(other) {
		t.Error("consumed the hazard from a neighbouring cell")
	}
}

func TestStopInterruptsPendingTimers(t *testing.T) {
	w := hazardWorld(t, time.Hour, time.Hour)

	w.hazard.Activate()
	w.hazard.Activate()
	w.hazard.TryConsume(w.hazard.State().Cell)
	w.hazard.Activate() // countdown waiting on an hour

	done := make(chan struct{})
	go func() {
		w.life.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on hazard timers")
	}
	if w.life.Go("late", nil) {
		t.Error("lifecycle accepted work after Stop")
	}
}
