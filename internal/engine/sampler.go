package engine

import (
	"sync"

	"snake/internal/domain"

	"golang.org/x/exp/rand"
)

// CellFilter reports whether a cell is unavailable for placement.
type CellFilter func(c domain.Cell) bool

// Sampler picks free cells by rejection sampling. The random draws are
// bounded; after that a scan of the free cells decides.
type Sampler struct {
	field    *domain.Field
	maxDraws int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSampler(field *domain.Field, seed uint64) *Sampler {
	return &Sampler{
		field:    field,
		maxDraws: field.Area() * 4,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (s *Sampler) Find(running func() bool, blocked ...CellFilter) (domain.Cell, error) {
	for attempts := 0; attempts < s.maxDraws; attempts++ {
		if !running() {
			return domain.OffGrid, ErrStopped
		}

		c := s.draw()
		if !isBlocked(c, blocked) {
			return c, nil
		}
	}

	free := make([]domain.Cell, 0)
	for y := int32(0); y < s.field.Height; y++ {
		if !running() {
			return domain.OffGrid, ErrStopped
		}
		for x := int32(0); x < s.field.Width; x++ {
			c := domain.Cell{X: x, Y: y}
			if !isBlocked(c, blocked) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return domain.OffGrid, ErrNoPlacement
	}

	s.mu.Lock()
	idx := s.rng.Intn(len(free))
	s.mu.Unlock()
	return free[idx], nil
}

func (s *Sampler) draw() domain.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Cell{
		X: int32(s.rng.Intn(int(s.field.Width))),
		Y: int32(s.rng.Intn(int(s.field.Height))),
	}
}

func isBlocked(c domain.Cell, blocked []CellFilter) bool {
	for _, f := range blocked {
		if f != nil && f(c) {
			return true
		}
	}
	return false
}
