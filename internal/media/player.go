// Package media plays the audio attached to project cards and the typing clicks.
package media

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/tech-canvas/internal/config"
)

// ErrUnsupported is returned for files that are not wav, mp3 or flac.
var ErrUnsupported = errors.New("unsupported audio file")

// Player owns the speaker and at most one playing track.
type Player struct {
	rate beep.SampleRate

	mu       sync.Mutex
	path     string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *sampleTap
	ended    bool

	levels []float64
}

// NewPlayer initialises the speaker at config.SampleRate.
func NewPlayer() (*Player, error) {
	rate := beep.SampleRate(config.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Player{
		rate:   rate,
		levels: make([]float64, config.LevelBands),
	}, nil
}

// Play stops the current track and starts the one at path.
func (p *Player) Play(path string) error {
	p.Stop()

	f, streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	var src beep.Streamer = streamer
	if format.SampleRate != p.rate {
		src = beep.Resample(4, format.SampleRate, p.rate, streamer)
	}
	tap := newSampleTap(src, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	p.mu.Lock()
	p.path = path
	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.ended = false
	p.mu.Unlock()

	log.Printf("media: playing %s (%d Hz)", path, format.SampleRate)
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.mu.Lock()
		if p.ctrl == ctrl {
			p.ended = true
		}
		p.mu.Unlock()
	})))
	return nil
}

// TogglePause pauses or resumes the current track.
func (p *Player) TogglePause() {
	speaker.Lock()
	defer speaker.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	p.ctrl.Paused = !p.ctrl.Paused
}

// Stop detaches the current track from the speaker and releases it. Other
// sounds, such as typing clicks, keep playing.
func (p *Player) Stop() {
	speaker.Lock()
	p.mu.Lock()
	if p.ctrl != nil {
		p.ctrl.Streamer = nil
	}
	streamer, file := p.streamer, p.file
	p.streamer, p.file, p.ctrl, p.tap = nil, nil, nil, nil
	p.path = ""
	p.mu.Unlock()
	speaker.Unlock()

	if streamer != nil {
		_ = streamer.Close()
	}
	if file != nil {
		_ = file.Close()
	}
}

// StopPath stops playback only if path is the current track.
func (p *Player) StopPath(path string) {
	p.mu.Lock()
	current := p.path
	p.mu.Unlock()
	if current != "" && current == path {
		p.Stop()
	}
}

// Path returns the current track, or "" when nothing is loaded.
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Playing reports whether a track is loaded, not paused and not finished.
func (p *Player) Playing() bool {
	speaker.Lock()
	defer speaker.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil && !p.ctrl.Paused && !p.ended
}

// Progress returns the position and length of the current track.
func (p *Player) Progress() (pos, length time.Duration) {
	speaker.Lock()
	defer speaker.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0, 0
	}
	return p.format.SampleRate.D(p.streamer.Position()), p.format.SampleRate.D(p.streamer.Len())
}

// Levels recomputes the band levels from the latest samples. The returned slice
// is reused between calls.
func (p *Player) Levels() []float64 {
	p.mu.Lock()
	tap, ended := p.tap, p.ended
	paused := p.ctrl != nil && p.ctrl.Paused
	p.mu.Unlock()

	if tap == nil || ended || paused {
		decay(p.levels, config.SmoothingFactor)
		return p.levels
	}
	bandLevels(tap.snapshot(2048), p.levels, config.SmoothingFactor)
	return p.levels
}

// Click plays a short key click.
func (p *Player) Click() {
	speaker.Play(&effects.Volume{
		Streamer: newClick(p.rate, config.ClickDuration),
		Base:     2,
		Volume:   config.ClickVolume,
	})
}

// Close stops playback and shuts the speaker down.
func (p *Player) Close() {
	p.Stop()
	speaker.Close()
}

func decode(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, fmt.Errorf("open audio: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, nil
}
