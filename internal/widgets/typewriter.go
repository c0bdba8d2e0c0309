package widgets

import (
	"time"

	"github.com/iburimskiy/tech-canvas/internal/config"
)

// Typewriter reveals a text one character at a time: the first after
// config.TypingDelay, then one every config.TypingInterval.
type Typewriter struct {
	text  []rune
	typed int
	next  time.Time
}

// NewTypewriter returns nil for empty text.
func NewTypewriter(text string, start time.Time) *Typewriter {
	if text == "" {
		return nil
	}
	return &Typewriter{
		text: []rune(text),
		next: start.Add(config.TypingDelay),
	}
}

// Update types every character due by now and returns them. Late frames catch up.
func (t *Typewriter) Update(now time.Time) []rune {
	from := t.typed
	for t.typed < len(t.text) && !now.Before(t.next) {
		t.typed++
		t.next = t.next.Add(config.TypingInterval)
	}
	return t.text[from:t.typed]
}

func (t *Typewriter) Text() string {
	return string(t.text[:t.typed])
}

func (t *Typewriter) Done() bool {
	return t.typed == len(t.text)
}
