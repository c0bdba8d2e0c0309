package media

import "math"

// bandLevels splits samples into len(prev) bands and blends each band's
// compressed RMS into prev with the given smoothing.
func bandLevels(samples [][2]float64, prev []float64, smoothing float64) {
	bands := len(prev)
	if bands == 0 || len(samples) == 0 {
		return
	}

	size := max(1, len(samples)/bands)
	for i := 0; i < bands; i++ {
		start := i * size
		if start >= len(samples) {
			break
		}
		end := min(start+size, len(samples))

		var sumSquares float64
		for _, s := range samples[start:end] {
			mono := (s[0] + s[1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(end-start))
		mag := math.Pow(rms, 0.3)

		prev[i] = smoothing*prev[i] + (1-smoothing)*mag
	}
}

// decay eases every level toward silence, used while nothing plays.
func decay(levels []float64, smoothing float64) {
	for i := range levels {
		levels[i] *= smoothing
	}
}
