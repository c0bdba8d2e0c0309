package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var background = color.RGBA{R: 5, G: 5, B: 12, A: 255}

// screenSurface draws the particle field onto the frame being rendered.
type screenSurface struct {
	dst *ebiten.Image
}

func (s *screenSurface) Clear() {
	s.dst.Fill(background)
}

func (s *screenSurface) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, true)
}

func (s *screenSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	vector.StrokeLine(s.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}
