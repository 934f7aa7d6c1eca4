// Package terminal draws the game with tcell and reads keys from the same
// screen. Each grid cell is two columns wide so cells look square.
package terminal

import (
	"fmt"
	"sync"

	"snake/internal/domain"

	"github.com/gdamore/tcell/v2"
)

type CellKind int

const (
	KindEmpty CellKind = iota
	KindBody
	KindHead
	KindFood
	KindPoison
)

var (
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Glyph returns the two-column rendering of a cell kind.
func Glyph(kind CellKind, alive, poisoned bool) (rune, tcell.Style) {
	switch kind {
	case KindHead:
		if !alive {
			return 'X', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		}
		return '@', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case KindBody:
		if poisoned {
			return 'o', tcell.StyleDefault.Foreground(tcell.ColorPurple)
		}
		return 'o', tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case KindFood:
		return '*', tcell.StyleDefault.Foreground(tcell.ColorRed)
	case KindPoison:
		return '%', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	}
	return ' ', tcell.StyleDefault
}

// Classify lists the non-empty cells of a snapshot. The head is written last
// so it wins over a body cell on death.
func Classify(s domain.Snapshot) map[domain.Cell]CellKind {
	cells := make(map[domain.Cell]CellKind, len(s.Body)+3)
	if s.FoodValid {
		cells[s.Food] = KindFood
	}
	if s.PoisonActive {
		cells[s.Poison] = KindPoison
	}
	for _, c := range s.Body {
		cells[c] = KindBody
	}
	cells[s.HeadCell] = KindHead
	return cells
}

func StatusLine(s domain.Snapshot, fps int) string {
	line := fmt.Sprintf("Snake Score: %d FPS: %d  Size: %d  Speed: %.2f", s.Score, fps, s.Size, s.Speed)
	switch {
	case !s.Alive:
		line += "  DEAD (q to quit)"
	case s.Poisoned:
		line += "  POISONED"
	}
	return line
}

// Renderer implements the engine renderer on a tcell screen.
type Renderer struct {
	screen tcell.Screen

	fps int
	mu  sync.Mutex
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func (r *Renderer) Render(s domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Clear()
	drawString(r.screen, 0, 0, StatusLine(s, r.fps), styleStatus)

	const top = 1
	w, h := r.screen.Size()

	for y := int32(0); y < s.GridHeight; y++ {
		row := top + int(y)
		if row >= h {
			break
		}
		for x := int32(0); x < s.GridWidth; x++ {
			col := int(x) * 2
			if col+1 >= w {
				break
			}
			r.screen.SetContent(col, row, '.', nil, styleBorder)
		}
	}

	for cell, kind := range Classify(s) {
		if !fieldContains(s, cell) {
			continue
		}
		ch, style := Glyph(kind, s.Alive, s.Poisoned)
		col, row := int(cell.X)*2, top+int(cell.Y)
		if col+1 >= w || row >= h {
			continue
		}
		r.screen.SetContent(col, row, ch, nil, style)
		r.screen.SetContent(col+1, row, ' ', nil, style)
	}

	r.screen.Show()
}

func (r *Renderer) UpdateWindowTitle(score, fps int) {
	r.mu.Lock()
	r.fps = fps
	r.mu.Unlock()
}

func fieldContains(s domain.Snapshot, c domain.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.GridWidth && c.Y < s.GridHeight
}

func drawString(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
