// Package term renders the particle field in a terminal with tcell.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// One terminal cell stands for this many field pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	discRune = '●'
	lineRune = '·'
)

type cell struct {
	r     rune
	color colorful.Color
	disc  bool
	alpha float64
}

// Surface rasterises field drawing calls into a grid of cells. Discs win over
// lines, and where lines cross the most opaque one is kept.
type Surface struct {
	cols, rows int
	cells      []cell
}

func NewSurface(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
}

func (s *Surface) Clear() {
	clear(s.cells)
}

func (s *Surface) at(cx, cy int) *cell {
	if cx < 0 || cy < 0 || cx >= s.cols || cy >= s.rows {
		return nil
	}
	return &s.cells[cy*s.cols+cx]
}

func cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (s *Surface) FillCircle(x, y, _ float64, c color.Color) {
	cl := s.at(cellOf(x, y))
	if cl == nil {
		return
	}
	col, _ := colorful.MakeColor(c)
	*cl = cell{r: discRune, color: col, disc: true, alpha: 1}
}

// StrokeLine walks the cells between the endpoints. The line colour is blended
// toward black by its alpha, since cells have no transparency.
func (s *Surface) StrokeLine(x1, y1, x2, y2, _ float64, c color.Color) {
	_, _, _, a := c.RGBA()
	alpha := float64(a) / 0xffff
	if alpha <= 0 {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	full := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	col := colorful.Color{}.BlendRgb(full, alpha)

	cx, cy := cellOf(x1, y1)
	ex, ey := cellOf(x2, y2)
	dx, dy := abs(ex-cx), -abs(ey-cy)
	sx, sy := sign(ex-cx), sign(ey-cy)
	e := dx + dy
	for {
		if cl := s.at(cx, cy); cl != nil && !cl.disc && alpha > cl.alpha {
			*cl = cell{r: lineRune, color: col, alpha: alpha}
		}
		if cx == ex && cy == ey {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			cx += sx
		}
		if e2 <= dx {
			e += dx
			cy += sy
		}
	}
}

// Flush copies the cells to the screen. Empty cells are cleared.
func (s *Surface) Flush(screen tcell.Screen) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	for cy := 0; cy < s.rows; cy++ {
		for cx := 0; cx < s.cols; cx++ {
			cl := s.cells[cy*s.cols+cx]
			if cl.r == 0 {
				screen.SetContent(cx, cy, ' ', nil, base)
				continue
			}
			r, g, b := cl.color.RGB255()
			style := base.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			screen.SetContent(cx, cy, cl.r, nil, style)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
