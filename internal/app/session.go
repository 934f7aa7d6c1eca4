package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"snake/internal/domain"
	"snake/internal/engine"

	"github.com/google/uuid"
)

// Listener receives game events on the session's forwarding goroutine.
type Listener interface {
	HandleEvent(event engine.Event)
}

type ListenerFunc func(event engine.Event)

func (f ListenerFunc) HandleEvent(event engine.Event) {
	f(event)
}

type Config struct {
	Settings  domain.GameSettings
	Tuning    domain.Tuning
	Renderer  engine.Renderer
	Input     engine.InputSource
	Clock     engine.Clock
	Seed      uint64
	Listeners []Listener
}

type Result struct {
	Score int
	Size  int
}

// Session owns one game: every store, every goroutine and their teardown.
type Session struct {
	id string

	field      *domain.Field
	snake      *domain.Snake
	life       *engine.Lifecycle
	events     *engine.EventBus
	controller *engine.Controller
	food       *engine.FoodSpawner
	hazard     *engine.PoisonHazard
	loop       *engine.Loop

	listeners []Listener

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopErr  error
	done     chan struct{}
}

func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if !cfg.Settings.Validate() {
		return nil, fmt.Errorf("invalid game settings: %+v", cfg.Settings)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	field := domain.NewField(cfg.Settings.GridWidth, cfg.Settings.GridHeight)
	snake := domain.NewSnake(field, cfg.Tuning.InitialSpeed)
	life := engine.NewLifecycle(ctx)
	events := engine.NewEventBus(100)

	mode := engine.SpawnAsync
	if !cfg.Tuning.AsyncFood {
		mode = engine.SpawnSync
	}

	food := engine.NewFoodSpawner(engine.FoodSpawnerConfig{
		Field:      field,
		Snake:      snake,
		Sampler:    engine.NewSampler(field, seed),
		Lifecycle:  life,
		Events:     events,
		Mode:       mode,
		Revalidate: cfg.Tuning.RevalidateFood,
	})

	hazard := engine.NewPoisonHazard(engine.PoisonHazardConfig{
		Field:       field,
		Snake:       snake,
		Sampler:     engine.NewSampler(field, seed+1),
		Lifecycle:   life,
		Events:      events,
		Food:        food,
		Interval:    cfg.Tuning.PoisonInterval,
		Duration:    cfg.Tuning.PoisonDuration,
		RevertDelay: cfg.Tuning.PoisonRevertDelay,
	})
	food.Avoid(hazard.Occupies)

	controller := engine.NewController(cfg.Input, cfg.Tuning.InputIdle)

	loop := engine.NewLoop(engine.LoopConfig{
		Settings:   cfg.Settings,
		Tuning:     cfg.Tuning,
		Field:      field,
		Snake:      snake,
		Controller: controller,
		Food:       food,
		Hazard:     hazard,
		Renderer:   cfg.Renderer,
		Events:     events,
		Clock:      cfg.Clock,
	})

	return &Session{
		id:         uuid.New().String(),
		field:      field,
		snake:      snake,
		life:       life,
		events:     events,
		controller: controller,
		food:       food,
		hazard:     hazard,
		loop:       loop,
		listeners:  cfg.Listeners,
		done:       make(chan struct{}),
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

// Run plays the session on the calling goroutine until it ends, then tears
// everything down.
func (s *Session) Run() (Result, error) {
	log.Printf("Session %s started", s.id)

	s.wg.Add(1)
	go s.forwardEvents()

	if !s.life.Go("input poller", s.controller.Run) {
		return s.result(), s.Stop()
	}

	loopErr := s.loop.Run(s.life.Context())
	stopErr := s.Stop()

	res := s.result()
	log.Printf("Session %s finished: score=%d size=%d", s.id, res.Score, res.Size)
	return res, errors.Join(loopErr, stopErr)
}

// Stop cancels the session and joins every goroutine it started.
func (s *Session) Stop() error {
	s.stopOnce.Do(func() {
		err := s.life.Stop()
		if err != nil && !errors.Is(err, context.Canceled) {
			s.stopErr = err
		}
		s.wg.Wait()
		close(s.done)
	})
	return s.stopErr
}

// Done is closed once the session has been fully torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Latest is the last rendered snapshot, nil before the first tick.
func (s *Session) Latest() *domain.Snapshot {
	return s.loop.Latest()
}

// Push injects an input event as if it came from the input source.
func (s *Session) Push(ev engine.InputEvent) {
	s.controller.Push(ev)
}

func (s *Session) result() Result {
	return Result{Score: s.loop.Score(), Size: s.loop.Size()}
}

func (s *Session) forwardEvents() {
	defer s.wg.Done()

	events := s.events.Events()
	for {
		select {
		case <-s.life.Done():
			// deliver what the final ticks emitted
			for {
				select {
				case event := <-events:
					s.dispatch(event)
				default:
					return
				}
			}
		case event := <-events:
			s.dispatch(event)
		}
	}
}

func (s *Session) dispatch(event engine.Event) {
	for _, l := range s.listeners {
		l.HandleEvent(event)
	}
}
