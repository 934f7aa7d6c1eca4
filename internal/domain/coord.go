package domain

// Cell is one discrete grid square.
type Cell struct {
	X int32
	Y int32
}

// OffGrid marks an item that is not currently on the field.
var OffGrid = Cell{X: -1, Y: -1}

func (c Cell) Add(other Cell) Cell {
	return Cell{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

func (c Cell) Equals(other Cell) bool {
	return c.X == other.X && c.Y == other.Y
}

// Position is a continuous point in grid units.
type Position struct {
	X float32
	Y float32
}

// Cell truncates the position to the cell it lies in.
func (p Position) Cell() Cell {
	return Cell{X: int32(p.X), Y: int32(p.Y)}
}
