package app

import (
	"log"

	"snake/internal/engine"
)

// LogListener writes game events to the standard logger.
type LogListener struct{}

func (LogListener) HandleEvent(event engine.Event) {
	switch p := event.Payload.(type) {
	case engine.ScorePayload:
		log.Printf("Event %s: score=%d size=%d", event.Type, p.Score, p.Size)
	case engine.CellPayload:
		log.Printf("Event %s: cell=(%d,%d)", event.Type, p.Cell.X, p.Cell.Y)
	case engine.SpeedPayload:
		log.Printf("Event %s: speed=%.3f", event.Type, p.Speed)
	default:
		log.Printf("Event %s", event.Type)
	}
}
