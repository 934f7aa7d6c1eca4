package domain

import "sync"

type SnakeState int

const (
	SnakeStateAlive SnakeState = 0
	SnakeStateDead  SnakeState = 1
)

// Snake is the player's actor. The head moves continuously; the body is the
// trail of cells the head has left, oldest first.
//
// All methods are safe for concurrent use: spawner goroutines read occupancy
// and the poison revert task writes speed while the loop advances the snake.
type Snake struct {
	field *Field

	head      Position
	body      []Cell
	direction Direction
	speed     float32
	size      int
	state     SnakeState
	growing   bool

	mu sync.RWMutex
}

func NewSnake(field *Field, speed float32) *Snake {
	return &Snake{
		field:     field,
		head:      field.Center(),
		body:      make([]Cell, 0),
		direction: DirectionUp,
		speed:     speed,
		size:      1,
		state:     SnakeStateAlive,
	}
}

// Advance moves the head by one tick worth of speed. Crossing into a new cell
// commits the body and re-evaluates self collision.
func (s *Snake) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SnakeStateAlive {
		return
	}

	prev := s.head.Cell()
	s.moveHead()
	current := s.head.Cell()

	if !current.Equals(prev) {
		s.commitBody(prev, current)
	}
}

func (s *Snake) moveHead() {
	switch s.direction {
	case DirectionUp:
		s.head.Y -= s.speed
	case DirectionDown:
		s.head.Y += s.speed
	case DirectionLeft:
		s.head.X -= s.speed
	case DirectionRight:
		s.head.X += s.speed
	}
	s.head = s.field.Wrap(s.head)
}

func (s *Snake) commitBody(prev, current Cell) {
	s.body = append(s.body, prev)

	if s.growing {
		s.growing = false
		s.size++
	} else {
		// shift in place so the backing array stays at the snake's length
		n := copy(s.body, s.body[1:])
		s.body = s.body[:n]
	}

	for _, cell := range s.body {
		if cell.Equals(current) {
			s.state = SnakeStateDead
			return
		}
	}
}

// RequestDirectionChange turns the snake unless the turn reverses it into its
// own body. A single-segment snake may reverse freely.
func (s *Snake) RequestDirectionChange(dir Direction) bool {
	if !dir.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir.IsOpposite(s.direction) && s.size > 1 {
		return false
	}
	s.direction = dir
	return true
}

// Grow takes effect on the next cell boundary crossing.
func (s *Snake) Grow() {
	s.mu.Lock()
	s.growing = true
	s.mu.Unlock()
}

func (s *Snake) OccupiesCell(c Cell) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c.Equals(s.head.Cell()) {
		return true
	}
	for _, cell := range s.body {
		if cell.Equals(c) {
			return true
		}
	}
	return false
}

func (s *Snake) SetSpeed(speed float32) {
	s.mu.Lock()
	s.speed = speed
	s.mu.Unlock()
}

func (s *Snake) IncreaseSpeed(delta float32) {
	s.mu.Lock()
	s.speed += delta
	s.mu.Unlock()
}

func (s *Snake) Speed() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speed
}

func (s *Snake) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *Snake) Alive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == SnakeStateAlive
}

func (s *Snake) Head() Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.head
}

func (s *Snake) HeadCell() Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.head.Cell()
}

func (s *Snake) Direction() Direction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.direction
}

// Body returns a copy of the trailing segments, oldest first.
func (s *Snake) Body() []Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body := make([]Cell, len(s.body))
	copy(body, s.body)
	return body
}

// Cells returns the head cell followed by the body, newest first.
func (s *Snake) Cells() []Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cells := make([]Cell, 0, len(s.body)+1)
	cells = append(cells, s.head.Cell())
	for i := len(s.body) - 1; i >= 0; i-- {
		cells = append(cells, s.body[i])
	}
	return cells
}
