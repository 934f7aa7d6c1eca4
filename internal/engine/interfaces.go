package engine

import (
	"time"

	"snake/internal/domain"
)

type InputEventType int

const (
	InputNone InputEventType = iota
	InputDirection
	InputQuit
)

type InputEvent struct {
	Type      InputEventType
	Direction domain.Direction
}

// InputSource yields pending input without blocking.
type InputSource interface {
	Poll() (InputEvent, bool)
}

type Renderer interface {
	Render(snapshot domain.Snapshot)
	UpdateWindowTitle(score, fps int)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the monotonic wall clock.
var SystemClock Clock = systemClock{}
