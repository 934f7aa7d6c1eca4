package engine

import (
	"sync"
	"testing"
	"time"

	"snake/internal/domain"
)

type world struct {
	field      *domain.Field
	snake      *domain.Snake
	life       *Lifecycle
	events     *EventBus
	food       *FoodSpawner
	hazard     *PoisonHazard
	controller *Controller
	renderer   *recordingRenderer
	loop       *Loop
}

type worldOptions struct {
	width, height int32
	speed         float32
	mode          SpawnMode
	tuning        domain.Tuning
}

func defaultWorldOptions() worldOptions {
	return worldOptions{
		width:  10,
		height: 10,
		speed:  1,
		mode:   SpawnSync,
		tuning: domain.DefaultTuning(),
	}
}

func newWorld(t *testing.T, opts worldOptions) *world {
	t.Helper()

	field := domain.NewField(opts.width, opts.height)
	snake := domain.NewSnake(field, opts.speed)
	life := NewLifecycle(t.Context())
	events := NewEventBus(256)

	food := NewFoodSpawner(FoodSpawnerConfig{
		Field:      field,
		Snake:      snake,
		Sampler:    NewSampler(field, 1),
		Lifecycle:  life,
		Events:     events,
		Mode:       opts.mode,
		Revalidate: opts.tuning.RevalidateFood,
	})
	hazard := NewPoisonHazard(PoisonHazardConfig{
		Field:       field,
		Snake:       snake,
		Sampler:     NewSampler(field, 2),
		Lifecycle:   life,
		Events:      events,
		Food:        food,
		Interval:    opts.tuning.PoisonInterval,
		Duration:    opts.tuning.PoisonDuration,
		RevertDelay: opts.tuning.PoisonRevertDelay,
	})
	food.Avoid(hazard.Occupies)

	controller := NewController(nil, time.Millisecond)
	renderer := &recordingRenderer{}

	settings := domain.DefaultGameSettings()
	settings.GridWidth = opts.width
	settings.GridHeight = opts.height

	loop := NewLoop(LoopConfig{
		Settings:   settings,
		Tuning:     opts.tuning,
		Field:      field,
		Snake:      snake,
		Controller: controller,
		Food:       food,
		Hazard:     hazard,
		Renderer:   renderer,
		Events:     events,
	})

	t.Cleanup(func() { life.Stop() })

	return &world{
		field:      field,
		snake:      snake,
		life:       life,
		events:     events,
		food:       food,
		hazard:     hazard,
		controller: controller,
		renderer:   renderer,
		loop:       loop,
	}
}

type recordingRenderer struct {
	mu        sync.Mutex
	frames    []domain.Snapshot
	lastScore int
	lastFPS   int
}

func (r *recordingRenderer) Render(s domain.Snapshot) {
	r.mu.Lock()
	r.frames = append(r.frames, s)
	r.mu.Unlock()
}

func (r *recordingRenderer) UpdateWindowTitle(score, fps int) {
	r.mu.Lock()
	r.lastScore = score
	r.lastFPS = fps
	r.mu.Unlock()
}

func (r *recordingRenderer) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// drainEvents collects everything emitted so far.
func drainEvents(b *EventBus) []Event {
	var out []Event
	for {
		select {
		case e := <-b.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}

func hasEvent(events []Event, typ EventType) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
