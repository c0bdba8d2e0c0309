package widgets

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/tech-canvas/internal/page"
)

var screen = page.Rect{W: 1024, H: 640}

func settle(update func(), frames int) {
	for i := 0; i < frames; i++ {
		update()
	}
}

func TestPresenceChecks(t *testing.T) {
	if NewReveal(nil) != nil {
		t.Error("Expected no reveal without sections")
	}
	if NewMenu(nil) != nil {
		t.Error("Expected no menu without items")
	}
	if NewLightbox(nil) != nil {
		t.Error("Expected no lightbox without images")
	}
	if NewTypewriter("", time.Now()) != nil {
		t.Error("Expected no typewriter without text")
	}
}

func TestRevealMarksIntersectingSections(t *testing.T) {
	r := NewReveal([]page.Rect{
		{Y: 100, W: 100, H: 100},
		{Y: 700, W: 100, H: 100},
		{Y: 1500, W: 100, H: 100},
	})

	newly := r.Observe(page.Rect{Y: 0, W: 1024, H: 640})
	if len(newly) != 1 || newly[0] != 0 {
		t.Fatalf("Expected only section 0 newly visible, got %v", newly)
	}
	if r.Visible(1) || r.Visible(2) {
		t.Error("Expected sections below the fold to stay hidden")
	}

	// scrolling down reveals section 1, section 0 stays visible
	newly = r.Observe(page.Rect{Y: 500, W: 1024, H: 640})
	if len(newly) != 1 || newly[0] != 1 {
		t.Fatalf("Expected section 1 newly visible, got %v", newly)
	}
	if !r.Visible(0) {
		t.Error("Expected visibility to be one-way")
	}

	if again := r.Observe(page.Rect{Y: 500, W: 1024, H: 640}); len(again) != 0 {
		t.Errorf("Expected no new sections on repeat, got %v", again)
	}
}

func TestRevealFadesIn(t *testing.T) {
	r := NewReveal([]page.Rect{{Y: 0, W: 10, H: 10}, {Y: 5000, W: 10, H: 10}})
	r.Observe(page.Rect{W: 100, H: 100})

	if r.Opacity(0) != 0 {
		t.Errorf("Expected fade to start at 0, got %v", r.Opacity(0))
	}
	r.Update()
	if r.Opacity(0) <= 0 {
		t.Error("Expected opacity to grow after one frame")
	}
	settle(r.Update, 300)

	if math.Abs(r.Opacity(0)-1) > 1e-3 {
		t.Errorf("Expected opacity near 1, got %v", r.Opacity(0))
	}
	if r.Offset(0) > 0.1 {
		t.Errorf("Expected slide offset near 0, got %v", r.Offset(0))
	}
	if r.Opacity(1) != 0 {
		t.Errorf("Expected hidden section to stay transparent, got %v", r.Opacity(1))
	}
	if r.Offset(1) != revealSlide {
		t.Errorf("Expected hidden section offset %v, got %v", float64(revealSlide), r.Offset(1))
	}
}

func TestRevealRetargetKeepsVisibility(t *testing.T) {
	r := NewReveal([]page.Rect{{Y: 0, W: 10, H: 10}})
	r.Observe(page.Rect{W: 100, H: 100})

	r.Retarget([]page.Rect{{Y: 0, W: 10, H: 10}, {Y: 900, W: 10, H: 10}})
	if !r.Visible(0) {
		t.Error("Expected section 0 to stay visible after retarget")
	}
	if r.Visible(1) {
		t.Error("Expected new section to start hidden")
	}
	r.Update()
}

func TestMenuToggle(t *testing.T) {
	m := NewMenu([]page.MenuItem{{Label: "About", Section: "about"}})

	m.Toggle()
	if !m.Active() {
		t.Fatal("Expected menu active after toggle")
	}
	settle(m.Update, 300)
	assertBars(t, m.Icon(), IconTarget(true))

	m.Toggle()
	if m.Active() {
		t.Fatal("Expected menu inactive after second toggle")
	}
	settle(m.Update, 300)
	assertBars(t, m.Icon(), IconTarget(false))
}

func TestIconTarget(t *testing.T) {
	open := IconTarget(true)
	if open[0].DY != 9 || math.Abs(open[0].Angle-math.Pi/4) > 1e-12 {
		t.Errorf("Expected top bar translate(0,9) rotate(45deg), got %+v", open[0])
	}
	if open[1].Opacity != 0 {
		t.Errorf("Expected middle bar hidden, got %+v", open[1])
	}
	if open[2].DY != -9 || math.Abs(open[2].Angle+math.Pi/4) > 1e-12 {
		t.Errorf("Expected bottom bar translate(0,-9) rotate(-45deg), got %+v", open[2])
	}

	for i, b := range IconTarget(false) {
		if b != (Bar{Opacity: 1}) {
			t.Errorf("Expected bar %d untransformed, got %+v", i, b)
		}
	}
}

func assertBars(t *testing.T, got, want [3]Bar) {
	t.Helper()
	for i := range want {
		if math.Abs(got[i].DY-want[i].DY) > 0.01 ||
			math.Abs(got[i].Angle-want[i].Angle) > 0.01 ||
			math.Abs(got[i].Opacity-want[i].Opacity) > 0.01 {
			t.Errorf("bar %d: Expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestMenuItemAt(t *testing.T) {
	m := NewMenu([]page.MenuItem{
		{Label: "About", Section: "about"},
		{Label: "Projects", Section: "projects"},
	})

	rects := m.ItemRects(screen)
	center := func(r page.Rect) (float64, float64) { return r.X + r.W/2, r.Y + r.H/2 }

	x, y := center(rects[1])
	if _, ok := m.ItemAt(x, y, screen); ok {
		t.Error("Expected no hit while the menu is closed")
	}

	m.Toggle()
	item, ok := m.ItemAt(x, y, screen)
	if !ok || item.Section != "projects" {
		t.Errorf("Expected projects item, got %+v (ok=%v)", item, ok)
	}
	if _, ok := m.ItemAt(x, 0, screen); ok {
		t.Error("Expected no hit above the items")
	}
}

func TestToggleRect(t *testing.T) {
	r := ToggleRect(screen)
	if r.X+r.W > screen.W || r.Y < 0 {
		t.Errorf("Expected toggle inside the screen, got %+v", r)
	}
	if r.X < screen.W/2 {
		t.Errorf("Expected toggle on the right, got %+v", r)
	}
}

func TestLightbox(t *testing.T) {
	l := NewLightbox([]page.Image{{Src: "a.png"}})
	img := page.Image{Src: "poster.png", Alt: "Poster"}

	l.Open(img)
	if !l.Active() || l.Image() != img {
		t.Fatalf("Expected active lightbox with %+v, got active=%v image=%+v", img, l.Active(), l.Image())
	}
	settle(l.Update, 200)
	if l.Opacity() < 0.99 {
		t.Errorf("Expected opaque lightbox, got %v", l.Opacity())
	}

	l.Close()
	if l.Active() {
		t.Error("Expected inactive lightbox after close")
	}
	if l.Image() != img {
		t.Error("Expected image to stay loaded after close")
	}
}

func TestTypewriterTiming(t *testing.T) {
	start := time.Unix(0, 0)
	tw := NewTypewriter("abc", start)

	steps := []struct {
		at       time.Duration
		expected string
	}{
		{0, ""},
		{499 * time.Millisecond, ""},
		{500 * time.Millisecond, "a"},
		{599 * time.Millisecond, "a"},
		{600 * time.Millisecond, "ab"},
		{700 * time.Millisecond, "abc"},
		{5 * time.Second, "abc"},
	}

	for _, s := range steps {
		tw.Update(start.Add(s.at))
		if got := tw.Text(); got != s.expected {
			t.Errorf("at %v: Expected %q, got %q", s.at, s.expected, got)
		}
	}
	if !tw.Done() {
		t.Error("Expected typewriter done")
	}
}

func TestTypewriterCatchesUp(t *testing.T) {
	start := time.Unix(0, 0)
	tw := NewTypewriter("héllo", start)

	typed := tw.Update(start.Add(800 * time.Millisecond))
	if string(typed) != "héll" {
		t.Errorf("Expected 4 runes typed in one late frame, got %q", string(typed))
	}
	if tw.Done() {
		t.Error("Expected one rune left")
	}
	if typed := tw.Update(start.Add(800 * time.Millisecond)); len(typed) != 0 {
		t.Errorf("Expected nothing new at the same instant, got %q", string(typed))
	}
}

func TestHUDOpenClose(t *testing.T) {
	var released []page.Media
	h := NewHUD(func(m page.Media) { released = append(released, m) })
	now := time.Unix(100, 0)

	card := page.Card{
		Title:       "Visualizer",
		Date:        "2024",
		Description: "Draws audio.",
		Media:       &page.Media{Kind: page.MediaAudio, Src: "demo.wav"},
		Links:       []page.Link{{Label: "Source", URL: "https://example.com"}},
	}
	h.Open(card)

	if !h.Displayed() || !h.Active() || !h.ScrollLocked() {
		t.Fatalf("Expected displayed, active and locked HUD, got %v %v %v", h.Displayed(), h.Active(), h.ScrollLocked())
	}
	s := h.Slots()
	if s.Title != "Visualizer" || s.Date != "2024" || s.Description != "Draws audio." || len(s.Links) != 1 {
		t.Errorf("Expected slots copied from card, got %+v", s)
	}
	if s.Media == nil || s.Media.Src != "demo.wav" {
		t.Fatalf("Expected media slot filled, got %+v", s.Media)
	}

	h.Close(now)
	if h.Active() || h.ScrollLocked() {
		t.Error("Expected inactive and unlocked HUD right after close")
	}
	if !h.Displayed() {
		t.Error("Expected HUD still displayed during the cleanup delay")
	}

	h.Update(now.Add(299 * time.Millisecond))
	if !h.Displayed() || len(released) != 0 {
		t.Error("Expected no cleanup before 300ms")
	}

	h.Update(now.Add(300 * time.Millisecond))
	if h.Displayed() {
		t.Error("Expected HUD hidden after 300ms")
	}
	if h.Slots().Media != nil {
		t.Error("Expected media slot cleared")
	}
	if len(released) != 1 || released[0].Src != "demo.wav" {
		t.Errorf("Expected demo.wav released once, got %+v", released)
	}
}

func TestHUDReopenCancelsCleanup(t *testing.T) {
	var released []page.Media
	h := NewHUD(func(m page.Media) { released = append(released, m) })
	now := time.Unix(100, 0)
	card := page.Card{Title: "a", Image: "a.png"}

	h.Open(card)
	h.Close(now)
	h.Open(card)
	h.Update(now.Add(time.Second))

	if !h.Displayed() || !h.Active() {
		t.Error("Expected reopened HUD to stay visible")
	}
	if len(released) != 0 {
		t.Errorf("Expected same media kept, got releases %+v", released)
	}

	h.Open(page.Card{Title: "b", Image: "b.png"})
	if len(released) != 1 || released[0].Src != "a.png" {
		t.Errorf("Expected a.png released when replaced, got %+v", released)
	}
}

func TestHUDClick(t *testing.T) {
	h := NewHUD(nil)
	now := time.Unix(0, 0)

	if hit, _ := h.Click(1, 1, screen, now); hit != HitNone {
		t.Errorf("Expected no hit on hidden HUD, got %v", hit)
	}

	h.Open(page.Card{
		Title: "a",
		Image: "a.png",
		Links: []page.Link{{Label: "One", URL: "u1"}, {Label: "Two", URL: "u2"}},
	})
	l := h.Layout(screen)

	if l.Panel.W > screen.W || l.Panel.H > screen.H {
		t.Fatalf("Expected panel inside the screen, got %+v", l.Panel)
	}
	if len(l.Links) != 2 {
		t.Fatalf("Expected 2 link rects, got %d", len(l.Links))
	}

	mx, my := l.Media.X+1, l.Media.Y+1
	if hit, _ := h.Click(mx, my, screen, now); hit != HitMedia {
		t.Errorf("Expected media hit, got %v", hit)
	}
	lx, ly := l.Links[1].X+1, l.Links[1].Y+1
	if hit, idx := h.Click(lx, ly, screen, now); hit != HitLink || idx != 1 {
		t.Errorf("Expected second link hit, got %v %d", hit, idx)
	}
	if hit, _ := h.Click(l.Panel.X+l.Panel.W/2, l.Panel.Y+l.Panel.H-2, screen, now); hit != HitPanel {
		t.Errorf("Expected plain panel hit, got %v", hit)
	}

	if hit, _ := h.Click(1, 1, screen, now); hit != HitBackdrop {
		t.Errorf("Expected backdrop hit, got %v", hit)
	}
	if h.Active() {
		t.Error("Expected backdrop click to close the HUD")
	}

	h.Open(page.Card{Title: "b"})
	if hit, _ := h.Click(l.Close.X+1, l.Close.Y+1, screen, now); hit != HitClose {
		t.Errorf("Expected close hit, got %v", hit)
	}
	if h.Active() {
		t.Error("Expected close box to close the HUD")
	}
}
