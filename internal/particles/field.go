package particles

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/tech-canvas/internal/config"
)

// Particle is a single point of the field. Its identity is its index in the field.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  color.RGBA
}

// Config holds the field parameters.
type Config struct {
	Count              int
	ConnectionDistance float64
	MaxSpeed           float64
	MinRadius          float64
	MaxRadius          float64
	LineWidth          float64
	LineGray           uint8
	Palette            []color.RGBA
}

// DefaultConfig returns the parameters of the page background.
func DefaultConfig() Config {
	palette, err := ParsePalette(config.ParticleColors)
	if err != nil {
		panic(err)
	}
	return Config{
		Count:              config.ParticleCount,
		ConnectionDistance: config.ConnectionDistance,
		MaxSpeed:           config.MaxSpeed,
		MinRadius:          config.MinRadius,
		MaxRadius:          config.MaxRadius,
		LineWidth:          config.LineWidth,
		LineGray:           config.LineGray,
		Palette:            palette,
	}
}

// ParsePalette converts "#rrggbb" strings into opaque colours.
func ParsePalette(hexes []string) ([]color.RGBA, error) {
	if len(hexes) == 0 {
		return nil, errors.New("empty palette")
	}
	out := make([]color.RGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette colour %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 0xff})
	}
	return out, nil
}

// Field is a fixed-size set of particles bouncing inside the surface bounds.
type Field struct {
	cfg           Config
	width, height float64
	particles     []Particle
}

// New sets the surface bounds and fills the field with cfg.Count random particles.
func New(width, height float64, cfg Config, rng *rand.Rand) *Field {
	f := &Field{
		cfg:       cfg,
		width:     width,
		height:    height,
		particles: make([]Particle, cfg.Count),
	}
	for i := range f.particles {
		f.particles[i] = Particle{
			X:      rng.Float64() * width,
			Y:      rng.Float64() * height,
			VX:     (rng.Float64() - 0.5) * 2 * cfg.MaxSpeed,
			VY:     (rng.Float64() - 0.5) * 2 * cfg.MaxSpeed,
			Radius: rng.Float64()*(cfg.MaxRadius-cfg.MinRadius) + cfg.MinRadius,
			Color:  cfg.Palette[rng.Intn(len(cfg.Palette))],
		}
	}
	return f
}

// Resize updates the bounds. Particles are left where they are; anything outside
// the new bounds is turned back by the regular reflection.
func (f *Field) Resize(width, height float64) {
	f.width = width
	f.height = height
}

// Bounds returns the current surface size.
func (f *Field) Bounds() (width, height float64) {
	return f.width, f.height
}

// Len returns the number of particles, constant for the life of the field.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the particles in field order.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Step advances one frame and draws it. Each particle is moved, reflected, drawn,
// then linked to every later particle; later particles have not moved yet.
func (f *Field) Step(s Surface) {
	s.Clear()

	for i := range f.particles {
		p := &f.particles[i]
		f.advance(p)
		s.FillCircle(p.X, p.Y, p.Radius, p.Color)

		for j := i + 1; j < len(f.particles); j++ {
			q := &f.particles[j]
			alpha, ok := f.Connect(*p, *q)
			if !ok {
				continue
			}
			s.StrokeLine(p.X, p.Y, q.X, q.Y, f.cfg.LineWidth, f.lineColor(alpha))
		}
	}
}

// Connect reports whether a and b are linked and the opacity of the link.
func (f *Field) Connect(a, b Particle) (alpha float64, ok bool) {
	dx := a.X - b.X
	dy := a.Y - b.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d >= f.cfg.ConnectionDistance {
		return 0, false
	}
	return 1 - d/f.cfg.ConnectionDistance, true
}

func (f *Field) advance(p *Particle) {
	p.X += p.VX
	p.Y += p.VY

	// the test runs after the move, so a particle may sit just outside for one frame
	if p.X < 0 || p.X > f.width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > f.height {
		p.VY = -p.VY
	}
}

func (f *Field) lineColor(alpha float64) color.NRGBA {
	g := f.cfg.LineGray
	return color.NRGBA{R: g, G: g, B: g, A: uint8(math.Round(alpha * 0xff))}
}
