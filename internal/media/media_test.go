package media

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/tech-canvas/internal/config"
)

// counter streams an increasing ramp on both channels.
type counter struct {
	next float64
	left int
}

func (c *counter) Stream(samples [][2]float64) (int, bool) {
	if c.left == 0 {
		return 0, false
	}
	n := min(len(samples), c.left)
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{c.next, c.next}
		c.next++
	}
	c.left -= n
	return n, true
}

func (c *counter) Err() error { return nil }

func TestSampleTapSnapshot(t *testing.T) {
	tap := newSampleTap(&counter{left: 10}, 4)
	buf := make([][2]float64, 3)

	if got := tap.snapshot(4); len(got) != 0 {
		t.Errorf("Expected empty snapshot before streaming, got %v", got)
	}

	tap.Stream(buf) // 0 1 2
	got := tap.snapshot(8)
	if len(got) != 3 || got[0][0] != 0 || got[2][0] != 2 {
		t.Errorf("Expected [0 1 2], got %v", got)
	}

	tap.Stream(buf) // 3 4 5, ring wraps
	got = tap.snapshot(4)
	want := []float64{2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i][0] != want[i] {
			t.Errorf("Expected sample %d = %v, got %v", i, want[i], got[i][0])
		}
	}

	got = tap.snapshot(2)
	if got[0][0] != 4 || got[1][0] != 5 {
		t.Errorf("Expected the 2 most recent samples [4 5], got %v", got)
	}
}

func TestSampleTapPassesThrough(t *testing.T) {
	tap := newSampleTap(&counter{left: 2}, 8)
	buf := make([][2]float64, 4)

	n, ok := tap.Stream(buf)
	if n != 2 || !ok {
		t.Errorf("Expected (2, true), got (%d, %v)", n, ok)
	}
	n, ok = tap.Stream(buf)
	if n != 0 || ok {
		t.Errorf("Expected drained source (0, false), got (%d, %v)", n, ok)
	}
	if tap.Err() != nil {
		t.Errorf("Expected nil error, got %v", tap.Err())
	}
}

func TestBandLevels(t *testing.T) {
	samples := make([][2]float64, 8)
	for i := 4; i < 8; i++ {
		samples[i] = [2]float64{1, 1}
	}
	levels := make([]float64, 2)

	bandLevels(samples, levels, 0.5)

	if levels[0] != 0 {
		t.Errorf("Expected silent band 0, got %v", levels[0])
	}
	if math.Abs(levels[1]-0.5) > 1e-9 {
		t.Errorf("Expected band 1 halfway to 1, got %v", levels[1])
	}

	bandLevels(samples, levels, 0.5)
	if math.Abs(levels[1]-0.75) > 1e-9 {
		t.Errorf("Expected smoothed band 1 = 0.75, got %v", levels[1])
	}

	decay(levels, 0.5)
	if math.Abs(levels[1]-0.375) > 1e-9 {
		t.Errorf("Expected decayed band 1 = 0.375, got %v", levels[1])
	}
}

func TestBandLevelsShortInput(t *testing.T) {
	levels := []float64{0.2, 0.2, 0.2, 0.2}
	bandLevels([][2]float64{{1, 1}}, levels, 0)

	if levels[0] != 1 {
		t.Errorf("Expected first band from the single sample, got %v", levels[0])
	}
	for i := 1; i < 4; i++ {
		if levels[i] != 0.2 {
			t.Errorf("Expected band %d untouched, got %v", i, levels[i])
		}
	}
	bandLevels(nil, levels, 0)
}

func TestClickLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	click := newClick(rate, 10*time.Millisecond)
	want := rate.N(10 * time.Millisecond)

	buf := make([][2]float64, 128)
	total := 0
	peak := 0.0
	for {
		n, ok := click.Stream(buf)
		if !ok {
			break
		}
		for _, s := range buf[:n] {
			peak = math.Max(peak, math.Abs(s[0]))
		}
		total += n
	}

	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
	if peak == 0 || peak > 0.2 {
		t.Errorf("Expected peak in (0, 0.2], got %v", peak)
	}
}

func TestDecodeErrors(t *testing.T) {
	_, _, _, err := decode("song.ogg")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}

	_, _, _, err = decode(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil || errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected open error, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.WAV")
	os.WriteFile(bad, []byte("not a wave file"), 0644)
	_, _, _, err = decode(bad)
	if err == nil {
		t.Error("Expected decode error for garbage wav")
	}
}

// writeTone encodes one second of stereo samples as a wav file.
func writeTone(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, &counter{left: 44100}, format); err != nil {
		t.Fatalf("Failed to encode %s: %v", name, err)
	}
	return path
}

// The speaker is never initialised here: Play only queues the track on the
// mixer, so control state can be checked without an audio device.
func TestPlayerLifecycle(t *testing.T) {
	p := &Player{rate: 44100, levels: make([]float64, config.LevelBands)}
	first := writeTone(t, "first.wav")
	second := writeTone(t, "second.wav")

	if p.Playing() {
		t.Error("Expected idle player not playing")
	}
	if err := p.Play(first); err != nil {
		t.Fatalf("Expected %s to play, got %v", first, err)
	}
	if p.Path() != first {
		t.Errorf("Expected path %s, got %s", first, p.Path())
	}
	if !p.Playing() {
		t.Error("Expected player playing after Play")
	}
	if pos, length := p.Progress(); pos != 0 || length != time.Second {
		t.Errorf("Expected 0s of 1s, got %v of %v", pos, length)
	}

	p.TogglePause()
	if p.Playing() {
		t.Error("Expected paused after first toggle")
	}
	p.TogglePause()
	if !p.Playing() {
		t.Error("Expected playing after second toggle")
	}

	ctrl := p.ctrl
	p.StopPath(second)
	if p.Path() != first || ctrl.Streamer == nil {
		t.Error("Expected StopPath for another track to keep playing")
	}

	if err := p.Play(second); err != nil {
		t.Fatalf("Expected %s to play, got %v", second, err)
	}
	if ctrl.Streamer != nil {
		t.Error("Expected the replaced track detached from the mixer")
	}
	if p.Path() != second || !p.Playing() {
		t.Errorf("Expected %s playing, got %q playing=%v", second, p.Path(), p.Playing())
	}

	ctrl = p.ctrl
	p.StopPath(second)
	if p.Path() != "" || p.Playing() {
		t.Error("Expected StopPath on the current track to stop it")
	}
	if ctrl.Streamer != nil {
		t.Error("Expected the stopped track detached from the mixer")
	}
	if pos, length := p.Progress(); pos != 0 || length != 0 {
		t.Errorf("Expected no progress after stop, got %v of %v", pos, length)
	}

	p.TogglePause()
	if p.Playing() {
		t.Error("Expected TogglePause without a track to do nothing")
	}
}

func TestPlayerRejectsUnsupported(t *testing.T) {
	p := &Player{rate: 44100, levels: make([]float64, config.LevelBands)}
	if err := p.Play("song.ogg"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}
	if p.Path() != "" || p.Playing() {
		t.Error("Expected nothing loaded after a failed Play")
	}
}
