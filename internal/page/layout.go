package page

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/iburimskiy/tech-canvas/internal/config"
)

// Rect is an axis-aligned rectangle, in page or screen pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Text is a single line of text anchored at its top-left corner.
type Text struct {
	X, Y float64
	S    string
}

type CardBox struct {
	Rect Rect
	Card Card
}

type ImageBox struct {
	Rect  Rect
	Image Image
}

type SectionBox struct {
	ID     string
	Rect   Rect
	Title  Text
	Lines  []Text
	Cards  []CardBox
	Thesis []ImageBox
}

// Layout is the page arranged for one viewport width. Height is the full
// document height used to clamp scrolling.
type Layout struct {
	Width, Height float64
	Title         Text
	Typing        Text
	Sections      []SectionBox
}

// Arrange stacks the header and the sections vertically for the given width.
func Arrange(p *Page, width float64) *Layout {
	margin := float64(config.PageMargin)
	contentW := width - 2*margin
	if minW := float64(config.CharWidth * 10); contentW < minW {
		contentW = minW
	}
	maxChars := int(contentW / config.CharWidth)

	l := &Layout{
		Width:  width,
		Title:  Text{X: margin, Y: config.HeaderHeight/2 - config.LineHeight, S: p.Title},
		Typing: Text{X: margin, Y: config.HeaderHeight/2 + config.LineHeight/2},
	}

	y := float64(config.HeaderHeight)
	for _, s := range p.Sections {
		box := SectionBox{ID: s.ID, Title: Text{X: margin, Y: y, S: s.Title}}
		top := y
		y += 2 * config.LineHeight

		for _, para := range s.Body {
			for _, line := range Wrap(para, maxChars) {
				box.Lines = append(box.Lines, Text{X: margin, Y: y, S: line})
				y += config.LineHeight
			}
			y += config.LineHeight
		}

		rects, next := grid(len(s.Cards), margin, y, contentW, config.CardWidth, config.CardHeight)
		for i, r := range rects {
			box.Cards = append(box.Cards, CardBox{Rect: r, Card: s.Cards[i]})
		}
		y = next

		rects, next = grid(len(s.Thesis), margin, y, contentW, config.ThesisWidth, config.ThesisHeight)
		for i, r := range rects {
			box.Thesis = append(box.Thesis, ImageBox{Rect: r, Image: s.Thesis[i]})
		}
		y = next

		box.Rect = Rect{X: margin, Y: top, W: contentW, H: y - top}
		l.Sections = append(l.Sections, box)
		y += config.SectionGap
	}
	l.Height = y
	return l
}

// SectionY returns the top of the section with the given id.
func (l *Layout) SectionY(id string) (float64, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s.Rect.Y, true
		}
	}
	return 0, false
}

// MaxScroll is the largest scroll offset that still fills a viewport of height h.
func (l *Layout) MaxScroll(h float64) float64 {
	if l.Height <= h {
		return 0
	}
	return l.Height - h
}

func grid(n int, x, y, width, cellW, cellH float64) ([]Rect, float64) {
	if n == 0 {
		return nil, y
	}
	perRow := int((width + config.CardGap) / (cellW + config.CardGap))
	if perRow < 1 {
		perRow = 1
	}
	rects := make([]Rect, n)
	for i := range rects {
		col, row := i%perRow, i/perRow
		rects[i] = Rect{
			X: x + float64(col)*(cellW+config.CardGap),
			Y: y + float64(row)*(cellH+config.CardGap),
			W: cellW,
			H: cellH,
		}
	}
	rows := (n + perRow - 1) / perRow
	return rects, y + float64(rows)*(cellH+config.CardGap)
}

// Wrap breaks text into lines of at most maxChars columns, on spaces where
// possible. Words longer than a line are split.
func Wrap(text string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	ww := wordwrap.NewWriter(maxChars)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(text))
	_ = ww.Close()
	return strings.Split(wrap.String(ww.String(), maxChars), "\n")
}
