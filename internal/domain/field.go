package domain

import "math"

type Field struct {
	Width  int32
	Height int32
}

func NewField(width, height int32) *Field {
	return &Field{
		Width:  width,
		Height: height,
	}
}

func (f *Field) Normalize(c Cell) Cell {
	x := c.X % f.Width
	if x < 0 {
		x += f.Width
	}
	y := c.Y % f.Height
	if y < 0 {
		y += f.Height
	}
	return Cell{X: x, Y: y}
}

func (f *Field) Move(c Cell, d Direction) Cell {
	return f.Normalize(c.Add(d.Delta()))
}

// Wrap folds a position back into [0, Width) x [0, Height).
func (f *Field) Wrap(p Position) Position {
	return Position{
		X: wrapAxis(p.X, float32(f.Width)),
		Y: wrapAxis(p.Y, float32(f.Height)),
	}
}

func (f *Field) Contains(c Cell) bool {
	return c.X >= 0 && c.X < f.Width && c.Y >= 0 && c.Y < f.Height
}

func (f *Field) Area() int {
	return int(f.Width) * int(f.Height)
}

func (f *Field) Center() Position {
	return Position{X: float32(f.Width) / 2, Y: float32(f.Height) / 2}
}

func wrapAxis(v, size float32) float32 {
	w := float32(math.Mod(float64(v), float64(size)))
	if w < 0 {
		w += size
	}
	// float rounding can land exactly on the upper bound
	if w >= size {
		w = 0
	}
	return w
}
