package particles

import "image/color"

// Surface is a 2D raster the field draws onto once per frame.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
}

type discard struct{}

func (discard) Clear() {}

func (discard) FillCircle(_, _, _ float64, _ color.Color) {}

func (discard) StrokeLine(_, _, _, _, _ float64, _ color.Color) {}

// Discard advances the field without drawing anything.
var Discard Surface = discard{}
