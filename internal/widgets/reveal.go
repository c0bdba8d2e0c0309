package widgets

import "github.com/iburimskiy/tech-canvas/internal/page"

// revealSlide is how far below its place a hidden section starts, in pixels.
const revealSlide = 20

// Reveal marks sections visible the first time they enter the viewport. Visibility
// is never taken back.
type Reveal struct {
	targets []page.Rect
	visible []bool
	fade    springField
}

// NewReveal returns nil when there is nothing to observe.
func NewReveal(targets []page.Rect) *Reveal {
	if len(targets) == 0 {
		return nil
	}
	return &Reveal{
		targets: append([]page.Rect(nil), targets...),
		visible: make([]bool, len(targets)),
		fade:    newSpringField(len(targets), 5, 1),
	}
}

// Retarget swaps the observed rectangles after a relayout, keeping visibility.
func (r *Reveal) Retarget(targets []page.Rect) {
	r.targets = append(r.targets[:0], targets...)
	if len(r.visible) != len(targets) {
		visible := make([]bool, len(targets))
		copy(visible, r.visible)
		r.visible = visible
		r.fade.resize(len(targets))
	}
}

// Observe marks every target intersecting the viewport and returns the newly visible ones.
func (r *Reveal) Observe(viewport page.Rect) []int {
	var newly []int
	for i, t := range r.targets {
		if !r.visible[i] && t.Intersects(viewport) {
			r.visible[i] = true
			newly = append(newly, i)
		}
	}
	return newly
}

// Update eases visible sections in.
func (r *Reveal) Update() {
	for i, v := range r.visible {
		target := 0.0
		if v {
			target = 1
		}
		r.fade.step(i, target)
	}
}

func (r *Reveal) Visible(i int) bool {
	return r.visible[i]
}

func (r *Reveal) Opacity(i int) float64 {
	return r.fade.value(i)
}

// Offset is the vertical slide still left for section i.
func (r *Reveal) Offset(i int) float64 {
	return (1 - r.Opacity(i)) * revealSlide
}
