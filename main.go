package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/tech-canvas/internal/config"
	"github.com/iburimskiy/tech-canvas/internal/game"
	"github.com/iburimskiy/tech-canvas/internal/media"
	"github.com/iburimskiy/tech-canvas/internal/page"
	"github.com/iburimskiy/tech-canvas/internal/particles"
	"github.com/iburimskiy/tech-canvas/internal/term"
)

const (
	logDir      = "logs"
	logFileName = "tech-canvas.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging sends the standard logger to logs/tech-canvas.log when debug is
// set, rotating a file grown past maxLogSize. Otherwise logs are discarded.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("tech-canvas-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func pickContent() (string, error) {
	name, err := zenity.SelectFile(
		zenity.Title("Open page content"),
		zenity.FileFilters{{
			Name:     "Page content",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		return "", err
	}
	return name, nil
}

func loadContent(path string, pick bool) (*page.Page, error) {
	if pick {
		name, err := pickContent()
		switch {
		case errors.Is(err, zenity.ErrCanceled):
			log.Printf("content dialog cancelled, using built-in page")
		case err != nil:
			return nil, fmt.Errorf("pick content: %w", err)
		default:
			path = name
		}
	}
	if path == "" {
		return page.Default()
	}
	log.Printf("loading content from %s", path)
	return page.Load(path)
}

func runTerminal(cfg particles.Config, rng *rand.Rand) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return term.Run(ctx, screen, cfg, rng)
}

func runWindow(content *page.Page, cfg particles.Config, rng *rand.Rand, mute bool, width, height int) error {
	opts := game.Options{Particles: cfg, Rand: rng}
	if !mute {
		player, err := media.NewPlayer()
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
			opts.Audio = player
		}
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(content, opts)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses args, starts the selected front end and returns the exit code.
func run(args []string) int {
	fs := flag.NewFlagSet("tech-canvas", flag.ContinueOnError)
	contentPath := fs.String("content", "", "page content JSON file (default: built-in page)")
	pick := fs.Bool("pick", false, "choose the content file in a dialog")
	terminal := fs.Bool("terminal", false, "draw only the particle field in the terminal")
	mute := fs.Bool("mute", false, "disable audio")
	seed := fs.Int64("seed", 0, "particle seed (0: time based)")
	debug := fs.Bool("debug", false, "write logs to "+filepath.Join(logDir, logFileName))
	width := fs.Int("width", config.WindowWidth, "window width")
	height := fs.Int("height", config.WindowHeight, "window height")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if logFile := setupLogging(*debug); logFile != nil {
		defer logFile.Close()
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("seed %d", *seed)
	rng := rand.New(rand.NewSource(*seed))
	cfg := particles.DefaultConfig()

	var err error
	if *terminal {
		err = runTerminal(cfg, rng)
	} else {
		var content *page.Page
		content, err = loadContent(*contentPath, *pick)
		if err == nil {
			err = runWindow(content, cfg, rng, *mute, *width, *height)
		}
	}
	if err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "tech-canvas: %v\n", err)
		return 1
	}
	return 0
}
