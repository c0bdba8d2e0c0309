// Package game runs the page in an ebiten window: the particle field behind the
// content, the menu, the project HUD and the image lightbox.
package game

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/tech-canvas/internal/config"
	"github.com/iburimskiy/tech-canvas/internal/links"
	"github.com/iburimskiy/tech-canvas/internal/page"
	"github.com/iburimskiy/tech-canvas/internal/particles"
	"github.com/iburimskiy/tech-canvas/internal/widgets"
)

// ErrMuted is shown when audio media is clicked without a working speaker.
var ErrMuted = errors.New("audio is disabled")

// Audio is the playback the game needs; *media.Player implements it.
type Audio interface {
	Play(path string) error
	TogglePause()
	StopPath(path string)
	Path() string
	Playing() bool
	Progress() (pos, length time.Duration)
	Levels() []float64
	Click()
}

type Options struct {
	Particles particles.Config
	Rand      *rand.Rand
	// Audio may be nil, in which case the page is silent.
	Audio Audio
}

type Game struct {
	content *page.Page
	layout  *page.Layout
	opts    Options

	field   *particles.Field
	surface *screenSurface
	width   int
	height  int
	scrollY float64

	reveal   *widgets.Reveal
	menu     *widgets.Menu
	lightbox *widgets.Lightbox
	hud      *widgets.HUD
	typer    *widgets.Typewriter

	audio  Audio
	levels []float64
	images *imageCache
	layer  *ebiten.Image

	colorPhase float64
	lastErr    error

	now      func() time.Time
	openLink func(string) error
}

// New builds the widgets the content asks for. The particle field is created on
// the first Layout call, once the window size is known.
func New(content *page.Page, opts Options) *Game {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{
		content:  content,
		opts:     opts,
		surface:  &screenSurface{},
		audio:    opts.Audio,
		images:   newImageCache(),
		now:      time.Now,
		openLink: links.Open,
	}
	g.menu = widgets.NewMenu(content.Menu)
	g.lightbox = widgets.NewLightbox(content.Thesis())
	if len(content.Cards()) > 0 {
		g.hud = widgets.NewHUD(g.release)
	}
	g.typer = widgets.NewTypewriter(content.Typing, g.now())
	return g
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	g.resize(w, h)
	return w, h
}

func (g *Game) resize(w, h int) {
	switch {
	case g.field == nil:
		g.field = particles.New(float64(w), float64(h), g.opts.Particles, g.opts.Rand)
	case w != g.width || h != g.height:
		g.field.Resize(float64(w), float64(h))
	default:
		return
	}

	relayout := g.layout == nil || w != g.width
	g.width, g.height = w, h
	if relayout {
		g.layout = page.Arrange(g.content, float64(w))
		targets := make([]page.Rect, len(g.layout.Sections))
		for i, s := range g.layout.Sections {
			targets[i] = s.Rect
		}
		if g.reveal == nil {
			g.reveal = widgets.NewReveal(targets)
		} else {
			g.reveal.Retarget(targets)
		}
	}
	g.scrollY = clamp(g.scrollY, 0, g.layout.MaxScroll(float64(h)))
}

func (g *Game) screen() page.Rect {
	return page.Rect{W: float64(g.width), H: float64(g.height)}
}

func (g *Game) Update() error {
	if g.layout == nil {
		return nil
	}
	now := g.now()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.closeTop(now) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.hud != nil && g.hud.Active() {
		g.toggleMedia()
	}

	_, wheel := ebiten.Wheel()
	dy := -wheel * config.ScrollStep
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		dy += config.ScrollStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		dy -= config.ScrollStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		dy += float64(g.height)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		dy -= float64(g.height)
	}
	g.scroll(dy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.click(float64(x), float64(y), now)
	}

	g.tick(now)
	return nil
}

// tick advances everything time driven by one frame.
func (g *Game) tick(now time.Time) {
	if g.reveal != nil {
		g.reveal.Observe(g.screen().Offset(0, g.scrollY))
		g.reveal.Update()
	}
	if g.menu != nil {
		g.menu.Update()
	}
	if g.lightbox != nil {
		g.lightbox.Update()
	}
	if g.hud != nil {
		g.hud.Update(now)
	}
	if g.typer != nil {
		for _, r := range g.typer.Update(now) {
			if r != ' ' && g.audio != nil {
				g.audio.Click()
			}
		}
	}
	if g.audio != nil && g.hud != nil && g.hud.Displayed() {
		g.levels = g.audio.Levels()
	}
	g.colorPhase += config.ColorShiftSpeed
}

// scroll moves the page by dy, unless the HUD holds the scroll lock.
func (g *Game) scroll(dy float64) {
	if dy == 0 || (g.hud != nil && g.hud.ScrollLocked()) {
		return
	}
	g.scrollY = clamp(g.scrollY+dy, 0, g.layout.MaxScroll(float64(g.height)))
}

// closeTop closes the topmost open overlay and reports whether there was one.
func (g *Game) closeTop(now time.Time) bool {
	switch {
	case g.lightbox != nil && g.lightbox.Active():
		g.lightbox.Close()
	case g.hud != nil && g.hud.Active():
		g.hud.Close(now)
	case g.menu != nil && g.menu.Active():
		g.menu.Close()
	default:
		return false
	}
	return true
}

// click routes a screen click to the topmost overlay that takes it.
func (g *Game) click(x, y float64, now time.Time) {
	screen := g.screen()
	switch {
	case g.lightbox != nil && g.lightbox.Active():
		g.lightbox.Close()
	case g.hud != nil && g.hud.Active():
		hit, i := g.hud.Click(x, y, screen, now)
		switch hit {
		case widgets.HitMedia:
			g.toggleMedia()
		case widgets.HitLink:
			g.follow(g.hud.Slots().Links[i])
		}
	case g.menu != nil && widgets.ToggleRect(screen).Contains(x, y):
		g.menu.Toggle()
	case g.menu != nil && g.menu.Active():
		if item, ok := g.menu.ItemAt(x, y, screen); ok {
			g.scrollTo(item.Section)
		}
		g.menu.Close()
	default:
		g.clickPage(x, y+g.scrollY)
	}
}

func (g *Game) clickPage(x, y float64) {
	for _, s := range g.layout.Sections {
		if !s.Rect.Contains(x, y) {
			continue
		}
		for _, c := range s.Cards {
			if c.Rect.Contains(x, y) && g.hud != nil {
				g.hud.Open(c.Card)
				return
			}
		}
		for _, img := range s.Thesis {
			if img.Rect.Contains(x, y) && g.lightbox != nil {
				g.lightbox.Open(img.Image)
				return
			}
		}
	}
}

func (g *Game) scrollTo(id string) {
	y, ok := g.layout.SectionY(id)
	if !ok {
		return
	}
	g.scrollY = clamp(y-config.PageMargin, 0, g.layout.MaxScroll(float64(g.height)))
}

// toggleMedia starts, pauses or resumes the audio shown in the HUD.
func (g *Game) toggleMedia() {
	m := g.hud.Slots().Media
	if m == nil || m.Kind != page.MediaAudio {
		return
	}
	if g.audio == nil {
		g.lastErr = ErrMuted
		return
	}
	if g.audio.Path() == m.Src {
		g.audio.TogglePause()
		return
	}
	if err := g.audio.Play(m.Src); err != nil {
		log.Printf("game: %v", err)
		g.lastErr = err
		return
	}
	g.lastErr = nil
}

// release stops playback of media the HUD has dropped.
func (g *Game) release(m page.Media) {
	if m.Kind == page.MediaAudio && g.audio != nil {
		g.audio.StopPath(m.Src)
	}
	g.levels = nil
}

func (g *Game) follow(l page.Link) {
	if err := g.openLink(l.URL); err != nil {
		log.Printf("game: %v", err)
		g.lastErr = err
	}
}
