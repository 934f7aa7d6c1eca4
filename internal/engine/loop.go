package engine

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"snake/internal/domain"
)

type LoopConfig struct {
	Settings   domain.GameSettings
	Tuning     domain.Tuning
	Field      *domain.Field
	Snake      *domain.Snake
	Controller *Controller
	Food       *FoodSpawner
	Hazard     *PoisonHazard
	Renderer   Renderer
	Events     *EventBus
	Clock      Clock
}

// Loop runs the fixed cadence tick: input, movement, collisions, render.
type Loop struct {
	settings   domain.GameSettings
	tuning     domain.Tuning
	field      *domain.Field
	snake      *domain.Snake
	controller *Controller
	food       *FoodSpawner
	hazard     *PoisonHazard
	renderer   Renderer
	events     *EventBus
	clock      Clock

	score     atomic.Int64
	tick      uint64
	deathSeen bool

	fps            int
	frameCount     int
	titleTimestamp time.Time

	latest atomic.Pointer[domain.Snapshot]
}

func NewLoop(cfg LoopConfig) *Loop {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock
	}
	return &Loop{
		settings:   cfg.Settings,
		tuning:     cfg.Tuning,
		field:      cfg.Field,
		snake:      cfg.Snake,
		controller: cfg.Controller,
		food:       cfg.Food,
		hazard:     cfg.Hazard,
		renderer:   cfg.Renderer,
		events:     cfg.Events,
		clock:      clock,
	}
}

// Run ticks until quit, context cancellation, or death when EndOnDeath is set.
func (l *Loop) Run(ctx context.Context) error {
	target := l.settings.FrameDuration()

	start := l.clock.Now()
	l.titleTimestamp = start
	l.hazard.Reset(start)
	l.food.Spawn()

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		frameStart := l.clock.Now()

		if !l.Tick(frameStart) {
			return nil
		}

		frameEnd := l.clock.Now()
		l.countFrame(frameEnd)

		elapsed := frameEnd.Sub(frameStart)
		wait := time.Duration(0)
		if elapsed < target {
			wait = target - elapsed
		}

		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// Tick runs one iteration at the given timestamp and reports whether the
// session continues.
func (l *Loop) Tick(now time.Time) bool {
	l.tick++

	if !l.controller.Consume(l.snake) {
		log.Println("LOOP: quit observed")
		l.events.Emit(Event{Type: EventQuit, Payload: l.scorePayload()})
		return false
	}

	if l.snake.Alive() {
		l.snake.Advance()
	}

	// both collision checks use this one head sample
	head := l.snake.HeadCell()
	alive := l.snake.Alive()

	l.food.Poll()
	if alive && l.food.TryConsume(head) {
		score := l.score.Add(1)
		l.snake.Grow()
		l.snake.IncreaseSpeed(l.tuning.SpeedIncrement)
		l.events.Emit(Event{Type: EventFoodEaten, Payload: ScorePayload{Score: int(score), Size: l.snake.Size()}})
	}

	if alive {
		l.hazard.MaybeActivate(now)
		l.hazard.TryConsume(head)
	}

	snapshot := l.Snapshot()
	l.latest.Store(&snapshot)
	if l.renderer != nil {
		l.renderer.Render(snapshot)
	}

	if !alive && !l.deathSeen {
		l.deathSeen = true
		log.Printf("LOOP: snake died, score=%d size=%d", l.Score(), l.snake.Size())
		l.events.Emit(Event{Type: EventSnakeDied, Payload: l.scorePayload()})
	}
	if !alive && l.tuning.EndOnDeath {
		return false
	}
	return true
}

func (l *Loop) countFrame(now time.Time) {
	l.frameCount++
	if now.Sub(l.titleTimestamp) >= time.Second {
		l.fps = l.frameCount
		if l.renderer != nil {
			l.renderer.UpdateWindowTitle(l.Score(), l.fps)
		}
		l.frameCount = 0
		l.titleTimestamp = now
	}
}

func (l *Loop) Snapshot() domain.Snapshot {
	food := l.food.Food()
	hazard := l.hazard.State()

	return domain.Snapshot{
		Tick:         l.tick,
		GridWidth:    l.field.Width,
		GridHeight:   l.field.Height,
		Head:         l.snake.Head(),
		HeadCell:     l.snake.HeadCell(),
		Body:         l.snake.Body(),
		Direction:    l.snake.Direction(),
		Speed:        l.snake.Speed(),
		Size:         l.snake.Size(),
		Alive:        l.snake.Alive(),
		Food:         food.Cell,
		FoodValid:    food.Valid,
		Poison:       hazard.Cell,
		PoisonActive: hazard.Active,
		Poisoned:     hazard.Poisoned,
		Score:        l.Score(),
		FPS:          l.fps,
	}
}

// Latest returns the most recently rendered snapshot, or nil before the first
// tick.
func (l *Loop) Latest() *domain.Snapshot {
	return l.latest.Load()
}

func (l *Loop) Score() int {
	return int(l.score.Load())
}

func (l *Loop) Size() int {
	return l.snake.Size()
}

func (l *Loop) scorePayload() ScorePayload {
	return ScorePayload{Score: l.Score(), Size: l.snake.Size()}
}
