package media

import (
	"sync"

	"github.com/faiface/beep"
)

// sampleTap passes a stream through and keeps the most recent samples in a ring,
// so the HUD can draw levels of what is playing.
type sampleTap struct {
	source beep.Streamer
	mu     sync.RWMutex
	ring   [][2]float64
	next   int
	filled int
}

func newSampleTap(src beep.Streamer, size int) *sampleTap {
	return &sampleTap{
		source: src,
		ring:   make([][2]float64, size),
	}
}

func (t *sampleTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.ring[t.next] = samples[i]
			t.next = (t.next + 1) % len(t.ring)
		}
		t.filled = min(t.filled+n, len(t.ring))
		t.mu.Unlock()
	}
	return n, ok
}

func (t *sampleTap) Err() error { return t.source.Err() }

// snapshot returns up to the last n samples, oldest first.
func (t *sampleTap) snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.filled)
	out := make([][2]float64, n)
	idx := t.next - n
	if idx < 0 {
		idx += len(t.ring)
	}
	for i := range out {
		out[i] = t.ring[idx]
		idx = (idx + 1) % len(t.ring)
	}
	return out
}
