package term

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/tech-canvas/internal/particles"
)

const frameInterval = 16 * time.Millisecond

// Run animates a particle field on an initialised screen until a quit key
// (Esc, Ctrl-C, q) is pressed, the screen is finalised or ctx is done.
// The caller owns the screen and calls Fini.
func Run(ctx context.Context, screen tcell.Screen, cfg particles.Config, rng *rand.Rand) error {
	cols, rows := screen.Size()
	field := particles.New(float64(cols*CellWidth), float64(rows*CellHeight), cfg, rng)
	surface := NewSurface(cols, rows)
	log.Printf("term: %dx%d cells, %d particles", cols, rows, field.Len())

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return nil
				}
			case *tcell.EventResize:
				cols, rows = screen.Size()
				field.Resize(float64(cols*CellWidth), float64(rows*CellHeight))
				surface.Resize(cols, rows)
				screen.Sync()
			}

		case <-ticker.C:
			field.Step(surface)
			surface.Flush(screen)
			screen.Show()
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
