package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Lifecycle owns the running flag and the join set of every goroutine a
// session starts. Nothing may be launched once Stop has begun.
type Lifecycle struct {
	running atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	mu       sync.Mutex
	stopOnce sync.Once
	err      error
}

func NewLifecycle(parent context.Context) *Lifecycle {
	ctx, cancel := context.WithCancel(parent)
	group, groupCtx := errgroup.WithContext(ctx)

	l := &Lifecycle{
		ctx:    groupCtx,
		cancel: cancel,
		group:  group,
	}
	l.running.Store(true)
	return l
}

func (l *Lifecycle) Running() bool {
	return l.running.Load() && l.ctx.Err() == nil
}

func (l *Lifecycle) Context() context.Context {
	return l.ctx
}

func (l *Lifecycle) Done() <-chan struct{} {
	return l.ctx.Done()
}

// Go starts fn on a tracked goroutine. It reports false when the session is
// already stopping. A returned error or a panic cancels the whole session.
func (l *Lifecycle) Go(name string, fn func(ctx context.Context) error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running.Load() {
		return false
	}

	l.group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: panic: %v", name, r)
			}
		}()
		if err := fn(l.ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
	return true
}

// Stop clears the running flag, cancels the session context and joins every
// tracked goroutine. Safe to call more than once.
func (l *Lifecycle) Stop() error {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.running.Store(false)
		l.mu.Unlock()

		l.cancel()
		l.err = l.group.Wait()
	})
	return l.err
}
