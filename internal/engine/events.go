package engine

import (
	"log"

	"snake/internal/domain"
)

type EventType int

const (
	EventFoodEaten EventType = iota
	EventFoodPlaced
	EventHazardActivated
	EventHazardExpired
	EventHazardConsumed
	EventPoisoned
	EventPoisonCured
	EventSnakeDied
	EventQuit
)

func (t EventType) String() string {
	switch t {
	case EventFoodEaten:
		return "food-eaten"
	case EventFoodPlaced:
		return "food-placed"
	case EventHazardActivated:
		return "hazard-activated"
	case EventHazardExpired:
		return "hazard-expired"
	case EventHazardConsumed:
		return "hazard-consumed"
	case EventPoisoned:
		return "poisoned"
	case EventPoisonCured:
		return "poison-cured"
	case EventSnakeDied:
		return "snake-died"
	case EventQuit:
		return "quit"
	}
	return "unknown"
}

type Event struct {
	Type    EventType
	Payload interface{}
}

type ScorePayload struct {
	Score int
	Size  int
}

type CellPayload struct {
	Cell domain.Cell
}

type SpeedPayload struct {
	Speed float32
}

// EventBus fans game events out of the engine goroutines. Emit never blocks.
type EventBus struct {
	ch chan Event
}

func NewEventBus(size int) *EventBus {
	return &EventBus{ch: make(chan Event, size)}
}

func (b *EventBus) Emit(event Event) {
	if b == nil {
		return
	}
	select {
	case b.ch <- event:
	default:
		log.Printf("Event channel full, dropping %s", event.Type)
	}
}

func (b *EventBus) Events() <-chan Event {
	return b.ch
}
