package media

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const clickFreq = 1760

// newClick returns a short square blip that fades out linearly over d.
func newClick(rate beep.SampleRate, d time.Duration) beep.Streamer {
	total := rate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			phase := math.Mod(float64(pos)*clickFreq/float64(rate), 1)
			v := 0.2
			if phase >= 0.5 {
				v = -0.2
			}
			v *= 1 - float64(pos)/float64(total)
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}
