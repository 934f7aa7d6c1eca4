package components

import (
	"fmt"

	"snake/internal/domain"
	"snake/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD is the status bar above the field.
type HUD struct {
	Height int
}

func NewHUD(height int) *HUD {
	return &HUD{Height: height}
}

func (h *HUD) Draw(screen *ebiten.Image, snapshot domain.Snapshot, width int) {
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(h.Height),
		types.Darken(types.ColorFieldBg, 0.8), false)
	vector.StrokeLine(screen, 0, float32(h.Height)-0.5, float32(width), float32(h.Height)-0.5, 1,
		types.Lighten(types.ColorGrid, 1.3), false)

	fonts := types.GetFonts()
	baseline := h.Height - 7

	line := fmt.Sprintf("Score: %d  Size: %d  Speed: %.2f", snapshot.Score, snapshot.Size, snapshot.Speed)
	text.Draw(screen, line, fonts.HUD, 8, baseline, types.ColorText)

	status, color := StatusLine(snapshot)
	if status != "" {
		bounds := text.BoundString(fonts.HUD, status)
		text.Draw(screen, status, fonts.HUD, width-bounds.Dx()-8, baseline, color)
	}
}

// DrawGameOver centers a banner over the field once the snake is dead.
func (h *HUD) DrawGameOver(screen *ebiten.Image, width, height int) {
	fonts := types.GetFonts()
	msg := "GAME OVER - press Esc to quit"
	bounds := text.BoundString(fonts.Banner, msg)
	text.Draw(screen, msg, fonts.Banner, (width-bounds.Dx())/2, height/2, types.ColorTextHighlight)
}

func StatusLine(snapshot domain.Snapshot) (string, types.Color) {
	switch {
	case !snapshot.Alive:
		return "DEAD", types.ColorError
	case snapshot.Poisoned:
		return "POISONED", types.ColorPoison
	case snapshot.PoisonActive:
		return "poison on field", types.ColorTextDim
	}
	return "", types.ColorText
}
