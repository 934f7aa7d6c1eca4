package engine

import (
	"context"
	"errors"
	"log"
	"sync"

	"snake/internal/domain"
)

type SpawnMode int

const (
	SpawnAsync SpawnMode = iota
	SpawnSync
)

type placement struct {
	cell domain.Cell
	err  error
}

type FoodSpawnerConfig struct {
	Field      *domain.Field
	Snake      *domain.Snake
	Sampler    *Sampler
	Lifecycle  *Lifecycle
	Events     *EventBus
	Mode       SpawnMode
	Revalidate bool
}

// FoodSpawner keeps one food item on the field. The slot is guarded by mu;
// pending is owned by the loop goroutine.
type FoodSpawner struct {
	field      *domain.Field
	snake      *domain.Snake
	sampler    *Sampler
	life       *Lifecycle
	events     *EventBus
	mode       SpawnMode
	revalidate bool

	// avoid is consulted by searches; set once before the session starts
	avoid CellFilter

	food domain.FoodItem
	mu   sync.Mutex

	pending chan placement
}

func NewFoodSpawner(cfg FoodSpawnerConfig) *FoodSpawner {
	return &FoodSpawner{
		field:      cfg.Field,
		snake:      cfg.Snake,
		sampler:    cfg.Sampler,
		life:       cfg.Lifecycle,
		events:     cfg.Events,
		mode:       cfg.Mode,
		revalidate: cfg.Revalidate,
		food:       domain.FoodItem{Cell: domain.OffGrid},
	}
}

// Avoid registers an extra filter, e.g. the active hazard cell.
func (f *FoodSpawner) Avoid(filter CellFilter) {
	f.avoid = filter
}

func (f *FoodSpawner) Mode() SpawnMode {
	return f.mode
}

// Spawn starts a new placement. In async mode at most one search runs.
func (f *FoodSpawner) Spawn() {
	if f.mode == SpawnSync {
		cell, err := f.search()
		f.publish(placement{cell: cell, err: err})
		return
	}

	if f.pending != nil {
		return
	}

	ch := make(chan placement, 1)
	launched := f.life.Go("food search", func(ctx context.Context) error {
		cell, err := f.search()
		ch <- placement{cell: cell, err: err}
		return nil
	})
	if launched {
		f.pending = ch
	}
}

// Poll collects a finished async search without blocking and publishes it.
// An empty slot with no search in flight starts a new one.
func (f *FoodSpawner) Poll() {
	if f.pending == nil {
		if !f.Food().Valid {
			f.Spawn()
		}
		return
	}

	select {
	case p := <-f.pending:
		f.pending = nil
		f.publish(p)
	default:
	}
}

func (f *FoodSpawner) publish(p placement) {
	if p.err != nil {
		if !errors.Is(p.err, ErrStopped) {
			log.Printf("FOOD: no placement this cycle: %v", p.err)
		}
		return
	}

	if f.revalidate && f.blocked(p.cell) {
		log.Printf("FOOD: stale placement %v discarded", p.cell)
		return
	}

	f.mu.Lock()
	f.food = domain.FoodItem{Cell: p.cell, Valid: true}
	f.mu.Unlock()

	f.events.Emit(Event{Type: EventFoodPlaced, Payload: CellPayload{Cell: p.cell}})
}

// TryConsume reports whether the head is on the food and, if so, clears the
// slot and starts the next placement.
func (f *FoodSpawner) TryConsume(head domain.Cell) bool {
	f.mu.Lock()
	hit := f.food.Valid && f.food.Cell.Equals(head)
	if hit {
		f.food = domain.FoodItem{Cell: domain.OffGrid}
	}
	f.mu.Unlock()

	if hit {
		f.Spawn()
	}
	return hit
}

func (f *FoodSpawner) Food() domain.FoodItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.food
}

// place overwrites the slot directly.
func (f *FoodSpawner) place(c domain.Cell) {
	f.mu.Lock()
	f.food = domain.FoodItem{Cell: c, Valid: true}
	f.mu.Unlock()
}

func (f *FoodSpawner) search() (domain.Cell, error) {
	return f.sampler.Find(f.life.Running, f.snake.OccupiesCell, f.avoid)
}

func (f *FoodSpawner) blocked(c domain.Cell) bool {
	if f.snake.OccupiesCell(c) {
		return true
	}
	return f.avoid != nil && f.avoid(c)
}
