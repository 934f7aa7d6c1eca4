package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"snake/internal/domain"
)

// InputState is the latched player intent between two ticks.
type InputState struct {
	NextDirection    domain.Direction
	DirectionChanged bool
	Quit             bool
}

// Controller bridges the input goroutine and the loop goroutine. The poller
// only writes InputState, the loop only reads and clears it.
type Controller struct {
	source InputSource
	idle   time.Duration

	state InputState
	mu    sync.Mutex
}

func NewController(source InputSource, idle time.Duration) *Controller {
	if idle <= 0 {
		idle = time.Millisecond
	}
	return &Controller{
		source: source,
		idle:   idle,
	}
}

// Run polls the input source until the context ends or quit is latched.
func (c *Controller) Run(ctx context.Context) error {
	if c.source == nil {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(c.idle)
	defer ticker.Stop()

	for {
		for {
			ev, ok := c.source.Poll()
			if !ok {
				break
			}
			if c.Push(ev) {
				log.Println("INPUT: quit requested")
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Push latches one event and reports whether quit is now set.
func (c *Controller) Push(ev InputEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Type {
	case InputQuit:
		c.state.Quit = true
	case InputDirection:
		if ev.Direction.Valid() {
			c.state.NextDirection = ev.Direction
			c.state.DirectionChanged = true
		}
	}
	return c.state.Quit
}

// Consume applies the latched intent to the snake. It returns false once quit
// has been requested.
func (c *Controller) Consume(snake *domain.Snake) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Quit {
		return false
	}

	if c.state.DirectionChanged {
		snake.RequestDirectionChange(c.state.NextDirection)
		c.state.DirectionChanged = false
	}
	return true
}

func (c *Controller) latched() InputState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
