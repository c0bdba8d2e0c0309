package game

import (
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/tech-canvas/internal/config"
	"github.com/iburimskiy/tech-canvas/internal/page"
	"github.com/iburimskiy/tech-canvas/internal/widgets"
)

var (
	panelColor  = color.RGBA{R: 10, G: 14, B: 28, A: 220}
	borderColor = color.RGBA{R: 0, G: 243, B: 255, A: 160}
)

func (g *Game) Draw(screen *ebiten.Image) {
	if g.field == nil {
		return
	}
	g.surface.dst = screen
	g.field.Step(g.surface)

	g.drawHeader(screen)
	g.drawSections(screen)
	g.drawMenu(screen)
	g.drawHUD(screen)
	g.drawLightbox(screen)

	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), 12, g.height-config.LineHeight-4)
	}
}

// offscreen returns a cleared screen-sized layer for drawing faded groups.
func (g *Game) offscreen() *ebiten.Image {
	if g.layer != nil {
		if b := g.layer.Bounds(); b.Dx() != g.width || b.Dy() != g.height {
			g.layer.Deallocate()
			g.layer = nil
		}
	}
	if g.layer == nil {
		g.layer = ebiten.NewImage(g.width, g.height)
	}
	g.layer.Clear()
	return g.layer
}

func composite(dst, layer *ebiten.Image, alpha, dy float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, dy)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(layer, op)
}

func printText(dst *ebiten.Image, t page.Text, dy float64) {
	ebitenutil.DebugPrintAt(dst, t.S, int(t.X), int(t.Y+dy))
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	dy := -g.scrollY
	printText(screen, g.layout.Title, dy)
	x, y := g.layout.Title.X, g.layout.Title.Y+dy+config.LineHeight-2
	w := float64(len([]rune(g.layout.Title.S)) * config.CharWidth)
	vector.StrokeLine(screen, float32(x), float32(y), float32(x+w), float32(y), 1, accent(g.colorPhase, 0, 0.8, 0.9, 255), true)

	if g.typer == nil {
		return
	}
	typing := g.layout.Typing
	typing.S = g.typer.Text()
	if !g.typer.Done() || int(g.colorPhase*2)%2 == 0 {
		typing.S += "_"
	}
	printText(screen, typing, dy)
}

func (g *Game) drawSections(screen *ebiten.Image) {
	view := g.screen().Offset(0, g.scrollY)
	for i, s := range g.layout.Sections {
		if !s.Rect.Intersects(view) {
			continue
		}
		alpha, slide := 1.0, 0.0
		if g.reveal != nil {
			alpha, slide = g.reveal.Opacity(i), g.reveal.Offset(i)
		}
		if alpha <= 0.01 {
			continue
		}
		layer := g.offscreen()
		g.drawSection(layer, s, -g.scrollY)
		composite(screen, layer, alpha, slide)
	}
}

func (g *Game) drawSection(dst *ebiten.Image, s page.SectionBox, dy float64) {
	printText(dst, s.Title, dy)
	ux, uy := s.Title.X, s.Title.Y+dy+config.LineHeight
	vector.StrokeLine(dst, float32(ux), float32(uy), float32(ux+60), float32(uy), 2, accent(g.colorPhase, 0.5, 0.8, 0.9, 255), true)

	for _, line := range s.Lines {
		printText(dst, line, dy)
	}

	for _, c := range s.Cards {
		r := c.Rect.Offset(0, dy)
		fillRect(dst, r, panelColor)
		strokeRect(dst, r, 1, borderColor)
		ebitenutil.DebugPrintAt(dst, truncate(c.Card.Title, r.W), int(r.X+10), int(r.Y+10))
		ebitenutil.DebugPrintAt(dst, c.Card.Date, int(r.X+10), int(r.Y+10+config.LineHeight))
		lines := page.Wrap(c.Card.Description, int((r.W-20)/config.CharWidth))
		for i := 0; i < len(lines) && i < 3; i++ {
			ebitenutil.DebugPrintAt(dst, lines[i], int(r.X+10), int(r.Y+10+float64(i+3)*config.LineHeight))
		}
	}

	for _, img := range s.Thesis {
		r := img.Rect.Offset(0, dy)
		g.drawPicture(dst, img.Image.Src, img.Image.Alt, r, 1)
		strokeRect(dst, r, 1, borderColor)
	}
}

// drawPicture fits the image at src into r, or draws a placeholder with alt when
// it cannot be loaded.
func (g *Game) drawPicture(dst *ebiten.Image, src, alt string, r page.Rect, alpha float64) {
	img := g.images.get(src)
	if img == nil {
		fillRect(dst, r, color.RGBA{R: 20, G: 24, B: 40, A: uint8(200 * alpha)})
		label := alt
		if label == "" {
			label = "image unavailable"
		}
		label = truncate(label, r.W-20)
		ebitenutil.DebugPrintAt(dst, label, int(r.X+(r.W-float64(len([]rune(label))*config.CharWidth))/2), int(r.Y+(r.H-config.LineHeight)/2))
		return
	}

	b := img.Bounds()
	scale := math.Min(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(r.X+(r.W-float64(b.Dx())*scale)/2, r.Y+(r.H-float64(b.Dy())*scale)/2)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	if g.menu == nil {
		return
	}
	s := g.screen()

	if p := g.menu.Progress(); p > 0.01 {
		fillRect(screen, s, color.RGBA{R: 0, G: 0, B: 0, A: uint8(clamp(p, 0, 1) * 215)})
		layer := g.offscreen()
		for i, r := range g.menu.ItemRects(s) {
			label := strings.ToUpper(g.menu.Items()[i].Label)
			x := r.X + (r.W-float64(len([]rune(label))*config.CharWidth))/2
			ebitenutil.DebugPrintAt(layer, label, int(x), int(r.Y+(r.H-config.LineHeight)/2))
			vector.StrokeLine(layer, float32(x), float32(r.Y+r.H-8), float32(r.X+r.W-x), float32(r.Y+r.H-8), 1, accent(g.colorPhase, float64(i)*0.1, 0.8, 0.9, 120), true)
		}
		composite(screen, layer, clamp(p, 0, 1), 0)
	}

	icon := widgets.ToggleRect(s)
	cx, cy := icon.X+icon.W/2, icon.Y+icon.H/2
	half := icon.W / 2
	for i, bar := range g.menu.Icon() {
		if bar.Opacity <= 0.01 {
			continue
		}
		by := cy + float64(i-1)*9 + bar.DY
		dx, dy := math.Cos(bar.Angle)*half, math.Sin(bar.Angle)*half
		c := color.RGBA{R: 255, G: 255, B: 255, A: uint8(clamp(bar.Opacity, 0, 1) * 255)}
		vector.StrokeLine(screen, float32(cx-dx), float32(by-dy), float32(cx+dx), float32(by+dy), 3, c, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	if g.hud == nil || !g.hud.Displayed() {
		return
	}
	alpha := clamp(g.hud.Opacity(), 0, 1)
	s := g.screen()
	l := g.hud.Layout(s)
	slots := g.hud.Slots()

	fillRect(screen, s, color.RGBA{R: 0, G: 0, B: 0, A: uint8(alpha * 180)})

	layer := g.offscreen()
	fillRect(layer, l.Panel, panelColor)
	strokeRect(layer, l.Panel, 2, accent(g.colorPhase, 0, 0.8, 0.9, 255))
	ebitenutil.DebugPrintAt(layer, "X", int(l.Close.X+4), int(l.Close.Y))
	printText(layer, l.Title, 0)
	printText(layer, l.Date, 0)

	if m := slots.Media; m != nil {
		switch m.Kind {
		case page.MediaImage:
			g.drawPicture(layer, m.Src, m.Alt, l.Media, 1)
		case page.MediaAudio:
			g.drawAudio(layer, m, l.Media)
		}
	}

	for _, t := range l.Description {
		printText(layer, t, 0)
	}
	for i, r := range l.Links {
		strokeRect(layer, r, 1, accent(g.colorPhase, 0.3, 0.8, 0.9, 200))
		ebitenutil.DebugPrintAt(layer, "[ "+slots.Links[i].Label+" ]", int(r.X), int(r.Y))
	}
	composite(screen, layer, alpha, 0)
}

// drawAudio draws band levels, a progress bar and the play state for audio media.
func (g *Game) drawAudio(dst *ebiten.Image, m *page.Media, r page.Rect) {
	fillRect(dst, r, color.RGBA{R: 20, G: 25, B: 35, A: 200})
	strokeRect(dst, r, 2, color.RGBA{R: 60, G: 70, B: 90, A: 255})

	current := g.audio != nil && g.audio.Path() == m.Src
	barH := r.H - 3*config.LineHeight
	if current && len(g.levels) > 0 {
		segment := r.W / float64(len(g.levels))
		for i, level := range g.levels {
			h := math.Max(2, level*(barH-10))
			freq := float64(i) / float64(len(g.levels))
			c := accent(g.colorPhase, freq*180, 0.8, 0.9, uint8(100+155*clamp(level, 0, 1)))
			x := r.X + float64(i)*segment
			vector.DrawFilledRect(dst, float32(x), float32(r.Y+barH-h), float32(segment-1), float32(h), c, false)
			if level > 0.3 {
				hl := color.RGBA{R: 255, G: 255, B: 255, A: uint8(100 * clamp(level, 0, 1))}
				vector.StrokeRect(dst, float32(x), float32(r.Y+barH-h), float32(segment-1), float32(h), 1, hl, false)
			}
		}
	}

	ty := r.Y + barH + 4
	if current {
		pos, length := g.audio.Progress()
		progress := 0.0
		if length > 0 {
			progress = clamp(float64(pos)/float64(length), 0, 1)
		}
		bar := page.Rect{X: r.X + 10, Y: ty, W: r.W - 20, H: 6}
		fillRect(dst, bar, color.RGBA{R: 25, G: 30, B: 40, A: 200})
		fillRect(dst, page.Rect{X: bar.X, Y: bar.Y, W: bar.W * progress, H: bar.H}, accent(g.colorPhase, progress*180, 0.8, 0.9, 180))
		vector.DrawFilledCircle(dst, float32(bar.X+bar.W*progress), float32(bar.Y+bar.H/2), 5, color.White, true)
	}
	status := g.audioStatus(m)

	label := m.Alt
	if label == "" {
		label = m.Src
	}
	ebitenutil.DebugPrintAt(dst, truncate(label, r.W-20), int(r.X+10), int(ty+config.LineHeight/2))
	ebitenutil.DebugPrintAt(dst, status, int(r.X+10), int(ty+config.LineHeight*3/2))
}

// audioStatus is the line under an audio player: the hint for an idle
// player, position and length with the next action for the current one.
func (g *Game) audioStatus(m *page.Media) string {
	if g.audio == nil {
		return "audio disabled"
	}
	if g.audio.Path() != m.Src {
		return "click to play"
	}
	pos, length := g.audio.Progress()
	action := "click to pause"
	if !g.audio.Playing() {
		action = "paused, click to resume"
	}
	return formatDuration(pos) + " / " + formatDuration(length) + "  " + action
}

func (g *Game) drawLightbox(screen *ebiten.Image) {
	if g.lightbox == nil {
		return
	}
	alpha := clamp(g.lightbox.Opacity(), 0, 1)
	if alpha <= 0.01 {
		return
	}
	s := g.screen()
	fillRect(screen, s, color.RGBA{R: 0, G: 0, B: 0, A: uint8(alpha * 230)})

	img := g.lightbox.Image()
	frame := page.Rect{X: s.W * 0.05, Y: s.H * 0.05, W: s.W * 0.9, H: s.H*0.9 - 2*config.LineHeight}
	g.drawPicture(screen, img.Src, img.Alt, frame, alpha)
	if img.Alt != "" {
		x := (s.W - float64(len([]rune(img.Alt))*config.CharWidth)) / 2
		ebitenutil.DebugPrintAt(screen, img.Alt, int(x), int(frame.Y+frame.H+config.LineHeight/2))
	}
}

func fillRect(dst *ebiten.Image, r page.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func strokeRect(dst *ebiten.Image, r page.Rect, width float32, c color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, c, false)
}

// truncate shortens s to fit width pixels of the debug font.
func truncate(s string, width float64) string {
	n := int(width / config.CharWidth)
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
