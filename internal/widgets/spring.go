// Package widgets implements the page widgets as small state machines driven by
// clicks, the viewport and the clock. Drawing is left to the caller.
package widgets

import (
	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/tech-canvas/internal/config"
)

// springField eases a set of values toward their targets, one step per frame.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringField(n int, frequency, damping float64) springField {
	return springField{
		spring: harmonica.NewSpring(harmonica.FPS(config.SpringFPS), frequency, damping),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
	}
}

func (s *springField) resize(n int) {
	if len(s.pos) == n {
		return
	}
	pos := make([]float64, n)
	vel := make([]float64, n)
	copy(pos, s.pos)
	copy(vel, s.vel)
	s.pos, s.vel = pos, vel
}

func (s *springField) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}

func (s *springField) value(i int) float64 {
	return clamp01(s.pos[i])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
