package domain

// FoodItem is a food cell. Valid items never overlap the snake when published.
type FoodItem struct {
	Cell  Cell
	Valid bool
}

// HazardState is a point-in-time copy of the poison hazard.
type HazardState struct {
	Cell       Cell
	Active     bool
	Poisoned   bool
	SavedSpeed float32
}

// Snapshot is the read-only view handed to renderers and spectators.
type Snapshot struct {
	Tick       uint64
	GridWidth  int32
	GridHeight int32

	Head      Position
	HeadCell  Cell
	Body      []Cell
	Direction Direction
	Speed     float32
	Size      int
	Alive     bool

	Food      Cell
	FoodValid bool

	Poison       Cell
	PoisonActive bool
	Poisoned     bool

	Score int
	FPS   int
}
