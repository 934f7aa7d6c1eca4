package types

import "image/color"

type Color = color.RGBA

var (
	ColorBackground    = color.RGBA{30, 30, 30, 255}
	ColorFieldBg       = color.RGBA{40, 40, 45, 255}
	ColorGrid          = color.RGBA{60, 60, 65, 255}
	ColorFood          = color.RGBA{255, 80, 80, 255}
	ColorPoison        = color.RGBA{170, 60, 220, 255}
	ColorSnakeBody     = color.RGBA{100, 200, 100, 255}
	ColorSnakeHead     = color.RGBA{255, 255, 255, 255}
	ColorSnakePoisoned = color.RGBA{150, 120, 220, 255}
	ColorText          = color.RGBA{220, 220, 220, 255}
	ColorTextDim       = color.RGBA{150, 150, 150, 255}
	ColorTextHighlight = color.RGBA{255, 255, 100, 255}
	ColorError         = color.RGBA{255, 100, 100, 255}
)

// SnakeColors picks the body and head colors for the snake's current state.
func SnakeColors(alive, poisoned bool) (body, head color.RGBA) {
	body, head = ColorSnakeBody, ColorSnakeHead
	if poisoned {
		body = ColorSnakePoisoned
	}
	if !alive {
		body = Darken(body, 0.5)
		head = ColorError
	}
	return body, head
}

func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, float64(c.R)*factor)),
		G: uint8(min(255, float64(c.G)*factor)),
		B: uint8(min(255, float64(c.B)*factor)),
		A: c.A,
	}
}
