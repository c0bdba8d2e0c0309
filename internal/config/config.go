package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "tech-canvas - wheel: scroll, click: open, Esc: close, Q: quit"

	// Particle field
	ParticleCount      = 100
	ConnectionDistance = 150.0
	MaxSpeed           = 0.25
	MinRadius          = 1.0
	MaxRadius          = 3.0
	LineWidth          = 0.5
	LineGray           = 100

	// Page layout, in pixels of the ebitenutil debug font
	CharWidth    = 6
	LineHeight   = 16
	PageMargin   = 40
	HeaderHeight = 220
	SectionGap   = 60
	CardWidth    = 220
	CardHeight   = 120
	CardGap      = 20
	ThesisWidth  = 200
	ThesisHeight = 140

	// Overlay chrome
	MenuIconSize   = 24
	MenuIconMargin = 20
	MenuItemHeight = 40
	HUDWidth       = 640
	HUDHeight      = 440
	HUDMediaHeight = 200
	ScrollStep     = 40

	// Audio
	SampleRate      = 44100
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	LevelBands      = 64
	ClickVolume     = -1.5
	ColorShiftSpeed = 0.01
)

// Widget timing
const (
	TypingDelay    = 500 * time.Millisecond
	TypingInterval = 100 * time.Millisecond
	HUDCleanup     = 300 * time.Millisecond
	ClickDuration  = 12 * time.Millisecond
	SpringFPS      = 60
)

// ParticleColors is the two-colour palette particles pick from.
var ParticleColors = []string{"#00f3ff", "#bc13fe"}
