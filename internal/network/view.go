package network

import "snake/internal/domain"

type CellView struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// SnapshotView is the JSON shape of /api/snapshot.
type SnapshotView struct {
	Tick      uint64     `json:"tick"`
	Width     int32      `json:"width"`
	Height    int32      `json:"height"`
	Head      CellView   `json:"head"`
	Body      []CellView `json:"body"`
	Direction string     `json:"direction"`
	Speed     float32    `json:"speed"`
	Size      int        `json:"size"`
	Alive     bool       `json:"alive"`
	Food      *CellView  `json:"food,omitempty"`
	Poison    *CellView  `json:"poison,omitempty"`
	Poisoned  bool       `json:"poisoned"`
	Score     int        `json:"score"`
	FPS       int        `json:"fps"`
}

func NewSnapshotView(s domain.Snapshot) SnapshotView {
	v := SnapshotView{
		Tick:      s.Tick,
		Width:     s.GridWidth,
		Height:    s.GridHeight,
		Head:      cellView(s.HeadCell),
		Body:      make([]CellView, 0, len(s.Body)),
		Direction: s.Direction.String(),
		Speed:     s.Speed,
		Size:      s.Size,
		Alive:     s.Alive,
		Poisoned:  s.Poisoned,
		Score:     s.Score,
		FPS:       s.FPS,
	}
	for _, c := range s.Body {
		v.Body = append(v.Body, cellView(c))
	}
	if s.FoodValid {
		food := cellView(s.Food)
		v.Food = &food
	}
	if s.PoisonActive {
		poison := cellView(s.Poison)
		v.Poison = &poison
	}
	return v
}

func cellView(c domain.Cell) CellView {
	return CellView{X: c.X, Y: c.Y}
}
