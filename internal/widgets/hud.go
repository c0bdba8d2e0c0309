package widgets

import (
	"time"

	"github.com/iburimskiy/tech-canvas/internal/config"
	"github.com/iburimskiy/tech-canvas/internal/page"
)

// Slots is what the HUD panel shows, copied from a card when it opens.
type Slots struct {
	Title       string
	Date        string
	Description string
	Media       *page.Media
	Links       []page.Link
}

// Hit says what a click on the HUD landed on.
type Hit int

const (
	HitNone Hit = iota
	HitPanel
	HitClose
	HitBackdrop
	HitMedia
	HitLink
)

// HUDLayout places the panel parts on screen.
type HUDLayout struct {
	Panel       page.Rect
	Close       page.Rect
	Title       page.Text
	Date        page.Text
	Media       page.Rect
	Description []page.Text
	Links       []page.Rect
}

// HUD is the project detail panel. Closing it is two-phase: it turns inactive at
// once, and is hidden with its media dropped config.HUDCleanup later.
type HUD struct {
	slots     Slots
	displayed bool
	active    bool
	locked    bool

	pending   bool
	cleanupAt time.Time

	release func(page.Media)
	fade    springField
}

// NewHUD returns a hidden HUD. release, when set, is called with every media item
// the panel drops, so playback can be stopped.
func NewHUD(release func(page.Media)) *HUD {
	return &HUD{
		release: release,
		fade:    newSpringField(1, 10, 1),
	}
}

// Open fills the slots from c, shows the panel and locks page scrolling.
// A cleanup still pending from an earlier Close is cancelled.
func (h *HUD) Open(c page.Card) {
	media := page.CardMedia(c)
	if h.slots.Media != nil && (media == nil || *media != *h.slots.Media) {
		h.drop()
	}

	h.slots = Slots{
		Title:       c.Title,
		Date:        c.Date,
		Description: c.Description,
		Media:       media,
		Links:       append([]page.Link(nil), c.Links...),
	}
	h.pending = false
	h.displayed = true
	h.active = true
	h.locked = true
}

// Close deactivates the panel and unlocks scrolling; the panel stays displayed
// until the cleanup runs in Update.
func (h *HUD) Close(now time.Time) {
	if !h.active {
		return
	}
	h.active = false
	h.locked = false
	h.pending = true
	h.cleanupAt = now.Add(config.HUDCleanup)
}

// Update runs a due cleanup and eases the panel opacity.
func (h *HUD) Update(now time.Time) {
	if h.pending && !now.Before(h.cleanupAt) {
		h.pending = false
		h.displayed = false
		h.drop()
	}

	target := 0.0
	if h.active {
		target = 1
	}
	h.fade.step(0, target)
}

func (h *HUD) drop() {
	if h.slots.Media == nil {
		return
	}
	m := *h.slots.Media
	h.slots.Media = nil
	if h.release != nil {
		h.release(m)
	}
}

func (h *HUD) Displayed() bool    { return h.displayed }
func (h *HUD) Active() bool       { return h.active }
func (h *HUD) ScrollLocked() bool { return h.locked }
func (h *HUD) Slots() Slots       { return h.slots }
func (h *HUD) Opacity() float64   { return h.fade.value(0) }

// Layout centres the panel on screen and places its parts.
func (h *HUD) Layout(screen page.Rect) HUDLayout {
	const pad = 20

	w := min(float64(config.HUDWidth), screen.W-2*pad)
	ht := min(float64(config.HUDHeight), screen.H-2*pad)
	panel := page.Rect{X: screen.X + (screen.W-w)/2, Y: screen.Y + (screen.H-ht)/2, W: w, H: ht}

	l := HUDLayout{
		Panel: panel,
		Close: page.Rect{X: panel.X + panel.W - pad - config.LineHeight, Y: panel.Y + pad/2, W: config.LineHeight, H: config.LineHeight},
		Title: page.Text{X: panel.X + pad, Y: panel.Y + pad, S: h.slots.Title},
		Date:  page.Text{X: panel.X + pad, Y: panel.Y + pad + config.LineHeight, S: h.slots.Date},
	}

	y := panel.Y + pad + 3*config.LineHeight
	if h.slots.Media != nil {
		l.Media = page.Rect{X: panel.X + pad, Y: y, W: panel.W - 2*pad, H: config.HUDMediaHeight}
		y += config.HUDMediaHeight + config.LineHeight
	}

	maxChars := int((panel.W - 2*pad) / config.CharWidth)
	for _, line := range page.Wrap(h.slots.Description, maxChars) {
		l.Description = append(l.Description, page.Text{X: panel.X + pad, Y: y, S: line})
		y += config.LineHeight
	}
	y += config.LineHeight

	x := panel.X + pad
	for _, link := range h.slots.Links {
		w := float64((len([]rune(link.Label)) + 4) * config.CharWidth)
		l.Links = append(l.Links, page.Rect{X: x, Y: y, W: w, H: config.LineHeight})
		x += w + pad
	}
	return l
}

// Click handles a click while the panel is active. Clicking the backdrop or the
// close box closes the panel. For HitLink, index is the link clicked.
func (h *HUD) Click(x, y float64, screen page.Rect, now time.Time) (hit Hit, index int) {
	if !h.active {
		return HitNone, -1
	}
	l := h.Layout(screen)
	switch {
	case !l.Panel.Contains(x, y):
		h.Close(now)
		return HitBackdrop, -1
	case l.Close.Contains(x, y):
		h.Close(now)
		return HitClose, -1
	case h.slots.Media != nil && l.Media.Contains(x, y):
		return HitMedia, -1
	}
	for i, r := range l.Links {
		if r.Contains(x, y) {
			return HitLink, i
		}
	}
	return HitPanel, -1
}
