package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"snake/internal/domain"
)

type PoisonHazardConfig struct {
	Field       *domain.Field
	Snake       *domain.Snake
	Sampler     *Sampler
	Lifecycle   *Lifecycle
	Events      *EventBus
	Food        *FoodSpawner
	Interval    time.Duration
	Duration    time.Duration
	RevertDelay time.Duration
}

// PoisonHazard places a poison cell on a fixed cadence. An uneaten cell
// expires after Duration; eating it halves the snake's speed until the revert
// task restores the saved speed.
type PoisonHazard struct {
	snake   *domain.Snake
	sampler *Sampler
	life    *Lifecycle
	events  *EventBus
	food    *FoodSpawner

	interval    time.Duration
	duration    time.Duration
	revertDelay time.Duration

	cell       domain.Cell
	active     bool
	poisoned   bool
	savedSpeed float32
	generation uint64
	mu         sync.Mutex

	// wake interrupts the countdown when the hazard is consumed
	wake chan struct{}

	// lastActivation is only touched by the loop goroutine
	lastActivation time.Time
}

func NewPoisonHazard(cfg PoisonHazardConfig) *PoisonHazard {
	return &PoisonHazard{
		snake:       cfg.Snake,
		sampler:     cfg.Sampler,
		life:        cfg.Lifecycle,
		events:      cfg.Events,
		food:        cfg.Food,
		interval:    cfg.Interval,
		duration:    cfg.Duration,
		revertDelay: cfg.RevertDelay,
		cell:        domain.OffGrid,
		wake:        make(chan struct{}, 1),
	}
}

// Reset starts the activation cadence from now.
func (h *PoisonHazard) Reset(now time.Time) {
	h.lastActivation = now
}

// MaybeActivate activates the hazard once Interval has passed since the last
// activation, measured on tick timestamps.
func (h *PoisonHazard) MaybeActivate(now time.Time) bool {
	if h.lastActivation.IsZero() {
		h.lastActivation = now
		return false
	}
	if now.Sub(h.lastActivation) < h.interval {
		return false
	}
	h.lastActivation = now
	return h.Activate()
}

// Activate places the poison on a free cell and starts its countdown. It is a
// no-op while a hazard is already active.
func (h *PoisonHazard) Activate() bool {
	if h.Active() {
		return false
	}

	cell, err := h.sampler.Find(h.life.Running, h.snake.OccupiesCell, h.isFoodCell)
	if err != nil {
		if !errors.Is(err, ErrStopped) {
			log.Printf("HAZARD: no placement this cycle: %v", err)
		}
		return false
	}

	h.mu.Lock()
	if h.active {
		h.mu.Unlock()
		return false
	}
	h.cell = cell
	h.active = true
	h.generation++
	gen := h.generation
	h.mu.Unlock()

	// drop a stale wake left by an earlier consumption
	select {
	case <-h.wake:
	default:
	}

	if !h.life.Go("hazard countdown", func(ctx context.Context) error {
		h.countdown(ctx, gen)
		return nil
	}) {
		h.deactivate(gen)
		return false
	}

	h.events.Emit(Event{Type: EventHazardActivated, Payload: CellPayload{Cell: cell}})
	return true
}

func (h *PoisonHazard) countdown(ctx context.Context, gen uint64) {
	timer := time.NewTimer(h.duration)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.wake:
			if !h.current(gen) {
				return
			}
		case <-timer.C:
			if h.deactivate(gen) {
				log.Println("HAZARD: expired")
				h.events.Emit(Event{Type: EventHazardExpired})
			}
			return
		}
	}
}

func (h *PoisonHazard) current(gen uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active && h.generation == gen
}

func (h *PoisonHazard) deactivate(gen uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.active || h.generation != gen {
		return false
	}
	h.active = false
	h.cell = domain.OffGrid
	return true
}

// TryConsume removes the hazard if the head is on it. The first bite halves
// the speed and schedules the revert; bites while poisoned only remove the
// hazard.
func (h *PoisonHazard) TryConsume(head domain.Cell) bool {
	h.mu.Lock()
	if !h.active || !h.cell.Equals(head) {
		h.mu.Unlock()
		return false
	}

	h.active = false
	h.cell = domain.OffGrid

	poisonNow := !h.poisoned
	if poisonNow {
		h.savedSpeed = h.snake.Speed()
		h.snake.SetSpeed(h.savedSpeed / 2)
		h.poisoned = true
	}
	saved := h.savedSpeed
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}

	h.events.Emit(Event{Type: EventHazardConsumed, Payload: CellPayload{Cell: head}})

	if poisonNow {
		h.events.Emit(Event{Type: EventPoisoned, Payload: SpeedPayload{Speed: saved / 2}})
		h.life.Go("poison revert", func(ctx context.Context) error {
			h.revertAfter(ctx)
			return nil
		})
	}
	return true
}

func (h *PoisonHazard) revertAfter(ctx context.Context) {
	timer := time.NewTimer(h.revertDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	h.mu.Lock()
	if !h.poisoned {
		h.mu.Unlock()
		return
	}
	h.snake.SetSpeed(h.savedSpeed)
	h.poisoned = false
	saved := h.savedSpeed
	h.mu.Unlock()

	log.Printf("HAZARD: speed restored to %.3f", saved)
	h.events.Emit(Event{Type: EventPoisonCured, Payload: SpeedPayload{Speed: saved}})
}

func (h *PoisonHazard) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

func (h *PoisonHazard) Poisoned() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.poisoned
}

// Occupies reports whether c is the active hazard cell.
func (h *PoisonHazard) Occupies(c domain.Cell) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active && h.cell.Equals(c)
}

func (h *PoisonHazard) State() domain.HazardState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return domain.HazardState{
		Cell:       h.cell,
		Active:     h.active,
		Poisoned:   h.poisoned,
		SavedSpeed: h.savedSpeed,
	}
}

func (h *PoisonHazard) isFoodCell(c domain.Cell) bool {
	if h.food == nil {
		return false
	}
	food := h.food.Food()
	return food.Valid && food.Cell.Equals(c)
}
