package widgets

import (
	"math"

	"github.com/iburimskiy/tech-canvas/internal/config"
	"github.com/iburimskiy/tech-canvas/internal/page"
)

// Bar is the transform of one line of the menu icon.
type Bar struct {
	DY      float64 // vertical translation, pixels
	Angle   float64 // rotation, radians
	Opacity float64
}

// barShift is how far the outer bars travel to meet the middle one.
const barShift = 9

// IconTarget is the resting transform of the three icon bars: a hamburger when
// closed, an X when open.
func IconTarget(active bool) [3]Bar {
	if !active {
		return [3]Bar{{Opacity: 1}, {Opacity: 1}, {Opacity: 1}}
	}
	return [3]Bar{
		{DY: barShift, Angle: math.Pi / 4, Opacity: 1},
		{Opacity: 0},
		{DY: -barShift, Angle: -math.Pi / 4, Opacity: 1},
	}
}

// Menu is the overlay menu and its toggle icon.
type Menu struct {
	items  []page.MenuItem
	active bool
	morph  springField
}

// NewMenu returns nil when there are no items to show.
func NewMenu(items []page.MenuItem) *Menu {
	if len(items) == 0 {
		return nil
	}
	return &Menu{
		items: append([]page.MenuItem(nil), items...),
		morph: newSpringField(1, 8, 0.8),
	}
}

func (m *Menu) Toggle() {
	m.active = !m.active
}

func (m *Menu) Close() {
	m.active = false
}

func (m *Menu) Active() bool {
	return m.active
}

func (m *Menu) Items() []page.MenuItem {
	return m.items
}

// Update moves the icon toward its target shape.
func (m *Menu) Update() {
	target := 0.0
	if m.active {
		target = 1
	}
	m.morph.step(0, target)
}

// Progress is 0 for the hamburger, 1 for the X.
func (m *Menu) Progress() float64 {
	return m.morph.value(0)
}

// Icon returns the bars interpolated at the current progress.
func (m *Menu) Icon() [3]Bar {
	t := m.Progress()
	from, to := IconTarget(false), IconTarget(true)
	var out [3]Bar
	for i := range out {
		out[i] = Bar{
			DY:      from[i].DY + (to[i].DY-from[i].DY)*t,
			Angle:   from[i].Angle + (to[i].Angle-from[i].Angle)*t,
			Opacity: from[i].Opacity + (to[i].Opacity-from[i].Opacity)*t,
		}
	}
	return out
}

// ToggleRect is the clickable icon area in the top-right corner of the screen.
func ToggleRect(screen page.Rect) page.Rect {
	return page.Rect{
		X: screen.X + screen.W - config.MenuIconMargin - config.MenuIconSize,
		Y: screen.Y + config.MenuIconMargin,
		W: config.MenuIconSize,
		H: config.MenuIconSize,
	}
}

// ItemRects lays the items out as a centred column.
func (m *Menu) ItemRects(screen page.Rect) []page.Rect {
	total := float64(len(m.items) * config.MenuItemHeight)
	top := screen.Y + (screen.H-total)/2
	rects := make([]page.Rect, len(m.items))
	for i := range rects {
		rects[i] = page.Rect{
			X: screen.X,
			Y: top + float64(i*config.MenuItemHeight),
			W: screen.W,
			H: config.MenuItemHeight,
		}
	}
	return rects
}

// ItemAt returns the item under (x, y) while the overlay is open.
func (m *Menu) ItemAt(x, y float64, screen page.Rect) (page.MenuItem, bool) {
	if !m.active {
		return page.MenuItem{}, false
	}
	for i, r := range m.ItemRects(screen) {
		if r.Contains(x, y) {
			return m.items[i], true
		}
	}
	return page.MenuItem{}, false
}
