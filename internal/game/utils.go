package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/crazy3lf/colorconv"
)

// accent returns the cycling chrome colour at the given phase, offset by shift turns.
func accent(phase, shift, s, v float64, alpha uint8) color.RGBA {
	hue := math.Mod((phase+shift)*360, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b, err := colorconv.HSVToRGB(hue, s, v)
	if err != nil {
		return color.RGBA{R: 0, G: 243, B: 255, A: alpha}
	}
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
