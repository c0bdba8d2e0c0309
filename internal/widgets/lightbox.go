package widgets

import "github.com/iburimskiy/tech-canvas/internal/page"

// Lightbox shows one enlarged image over the page. Any click on it closes it.
type Lightbox struct {
	image  page.Image
	active bool
	fade   springField
}

// NewLightbox returns nil when the page has no images to enlarge.
func NewLightbox(images []page.Image) *Lightbox {
	if len(images) == 0 {
		return nil
	}
	return &Lightbox{fade: newSpringField(1, 10, 1)}
}

func (l *Lightbox) Open(img page.Image) {
	l.image = img
	l.active = true
}

// Close hides the overlay. The last image stays loaded.
func (l *Lightbox) Close() {
	l.active = false
}

func (l *Lightbox) Active() bool {
	return l.active
}

func (l *Lightbox) Image() page.Image {
	return l.image
}

func (l *Lightbox) Update() {
	target := 0.0
	if l.active {
		target = 1
	}
	l.fade.step(0, target)
}

func (l *Lightbox) Opacity() float64 {
	return l.fade.value(0)
}
