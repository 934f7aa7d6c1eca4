package engine

import "errors"

var (
	ErrNoPlacement = errors.New("no free cell for placement")
	ErrStopped     = errors.New("session stopping")
)
