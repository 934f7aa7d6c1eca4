package components

import (
	"snake/internal/domain"
	"snake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FieldRenderer maps grid cells onto screen pixels.
type FieldRenderer struct {
	CellSize float32
	OffsetX  float32
	OffsetY  float32
	TopBar   int
}

func NewFieldRenderer() *FieldRenderer {
	return &FieldRenderer{
		CellSize: 20,
		TopBar:   24,
	}
}

// CalculateLayout fits the grid below the top bar, keeping cells square.
func (fr *FieldRenderer) CalculateLayout(screenWidth, screenHeight int, gridWidth, gridHeight int32) {
	if gridWidth <= 0 || gridHeight <= 0 {
		return
	}

	availableWidth := float32(screenWidth)
	availableHeight := float32(screenHeight - fr.TopBar)

	cellW := availableWidth / float32(gridWidth)
	cellH := availableHeight / float32(gridHeight)

	fr.CellSize = cellW
	if cellH < cellW {
		fr.CellSize = cellH
	}
	if fr.CellSize < 2 {
		fr.CellSize = 2
	}

	fieldWidth := fr.CellSize * float32(gridWidth)
	fieldHeight := fr.CellSize * float32(gridHeight)
	fr.OffsetX = (availableWidth - fieldWidth) / 2
	fr.OffsetY = float32(fr.TopBar) + (availableHeight-fieldHeight)/2
}

func (fr *FieldRenderer) DrawField(screen *ebiten.Image, gridWidth, gridHeight int32) {
	w := fr.CellSize * float32(gridWidth)
	h := fr.CellSize * float32(gridHeight)

	vector.DrawFilledRect(screen, fr.OffsetX, fr.OffsetY, w, h, types.ColorFieldBg, false)

	if fr.CellSize < 6 {
		return
	}
	for x := int32(0); x <= gridWidth; x++ {
		x1 := fr.OffsetX + float32(x)*fr.CellSize
		vector.StrokeLine(screen, x1, fr.OffsetY, x1, fr.OffsetY+h, 1, types.ColorGrid, false)
	}
	for y := int32(0); y <= gridHeight; y++ {
		y1 := fr.OffsetY + float32(y)*fr.CellSize
		vector.StrokeLine(screen, fr.OffsetX, y1, fr.OffsetX+w, y1, 1, types.ColorGrid, false)
	}
}

func (fr *FieldRenderer) DrawFood(screen *ebiten.Image, food domain.Cell) {
	fr.drawCell(screen, food, fr.CellSize/4, types.ColorFood)
}

func (fr *FieldRenderer) DrawPoison(screen *ebiten.Image, poison domain.Cell) {
	fr.drawCell(screen, poison, fr.CellSize/6, types.ColorPoison)
}

// DrawSnake paints the body first and the head on top.
func (fr *FieldRenderer) DrawSnake(screen *ebiten.Image, snapshot domain.Snapshot) {
	bodyColor, headColor := types.SnakeColors(snapshot.Alive, snapshot.Poisoned)

	for _, cell := range snapshot.Body {
		fr.drawCell(screen, cell, 1, bodyColor)
	}
	fr.drawCell(screen, snapshot.HeadCell, 1, headColor)
}

func (fr *FieldRenderer) drawCell(screen *ebiten.Image, cell domain.Cell, padding float32, c types.Color) {
	if cell == domain.OffGrid {
		return
	}
	x := fr.OffsetX + float32(cell.X)*fr.CellSize + padding
	y := fr.OffsetY + float32(cell.Y)*fr.CellSize + padding
	size := fr.CellSize - padding*2
	if size < 1 {
		size = 1
	}
	vector.DrawFilledRect(screen, x, y, size, size, c, false)
}
