package domain

import "time"

type GameSettings struct {
	FramesPerSecond int
	ScreenWidth     int
	ScreenHeight    int
	GridWidth       int32
	GridHeight      int32
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		FramesPerSecond: 60,
		ScreenWidth:     640,
		ScreenHeight:    640,
		GridWidth:       32,
		GridHeight:      32,
	}
}

func (s GameSettings) Validate() bool {
	if s.FramesPerSecond < 1 || s.FramesPerSecond > 1000 {
		return false
	}
	if s.ScreenWidth < 1 || s.ScreenHeight < 1 {
		return false
	}
	if s.GridWidth < 1 || s.GridWidth > 1024 {
		return false
	}
	if s.GridHeight < 1 || s.GridHeight > 1024 {
		return false
	}
	return true
}

func (s GameSettings) MsPerFrame() int {
	if s.FramesPerSecond <= 0 {
		return 1000 / DefaultGameSettings().FramesPerSecond
	}
	return 1000 / s.FramesPerSecond
}

func (s GameSettings) FrameDuration() time.Duration {
	return time.Duration(s.MsPerFrame()) * time.Millisecond
}

// Tuning holds gameplay constants that are fixed for a session.
type Tuning struct {
	InitialSpeed   float32
	SpeedIncrement float32

	PoisonInterval    time.Duration
	PoisonDuration    time.Duration
	PoisonRevertDelay time.Duration

	InputIdle time.Duration

	AsyncFood      bool
	RevalidateFood bool
	EndOnDeath     bool
}

func DefaultTuning() Tuning {
	return Tuning{
		InitialSpeed:      0.1,
		SpeedIncrement:    0.02,
		PoisonInterval:    10 * time.Second,
		PoisonDuration:    5 * time.Second,
		PoisonRevertDelay: 3 * time.Second,
		InputIdle:         time.Millisecond,
		AsyncFood:         true,
		RevalidateFood:    true,
		EndOnDeath:        false,
	}
}
