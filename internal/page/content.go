// Package page holds the content shown over the particle background and its layout.
package page

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed default.json
var defaultContent []byte

// ErrInvalid is wrapped by every content validation failure.
var ErrInvalid = errors.New("invalid page content")

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
)

type Media struct {
	Kind MediaKind `json:"kind"`
	Src  string    `json:"src"`
	Alt  string    `json:"alt,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Card is a project card; clicking it opens the HUD.
type Card struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Media       *Media `json:"media,omitempty"`
	// Image is the older single-picture card form, used when Media is unset.
	Image string `json:"image,omitempty"`
	Links []Link `json:"links,omitempty"`
}

type Section struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Body   []string `json:"body,omitempty"`
	Cards  []Card   `json:"cards,omitempty"`
	Thesis []Image  `json:"thesis,omitempty"`
}

type MenuItem struct {
	Label   string `json:"label"`
	Section string `json:"section"`
}

type Page struct {
	Title    string     `json:"title"`
	Typing   string     `json:"typing,omitempty"`
	Menu     []MenuItem `json:"menu,omitempty"`
	Sections []Section  `json:"sections"`
}

// Default returns the built-in content.
func Default() (*Page, error) {
	return decode(defaultContent, "")
}

// Load reads a content file. Relative media paths are resolved against its directory.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return decode(data, filepath.Dir(path))
}

func decode(data []byte, dir string) (*Page, error) {
	var p Page
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if dir != "" {
		p.resolve(dir)
	}
	return &p, nil
}

// Validate checks the references between menu, sections and cards.
func (p *Page) Validate() error {
	ids := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		if s.ID == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalid, i)
		}
		if ids[s.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalid, s.ID)
		}
		ids[s.ID] = true

		for j, c := range s.Cards {
			if c.Title == "" {
				return fmt.Errorf("%w: section %q card %d has no title", ErrInvalid, s.ID, j)
			}
			if c.Media != nil && c.Media.Kind != MediaImage && c.Media.Kind != MediaAudio {
				return fmt.Errorf("%w: card %q has unknown media kind %q", ErrInvalid, c.Title, c.Media.Kind)
			}
		}
	}
	for _, m := range p.Menu {
		if !ids[m.Section] {
			return fmt.Errorf("%w: menu item %q points to unknown section %q", ErrInvalid, m.Label, m.Section)
		}
	}
	return nil
}

// Cards returns every card in page order.
func (p *Page) Cards() []Card {
	var out []Card
	for _, s := range p.Sections {
		out = append(out, s.Cards...)
	}
	return out
}

// Thesis returns every thesis image in page order.
func (p *Page) Thesis() []Image {
	var out []Image
	for _, s := range p.Sections {
		out = append(out, s.Thesis...)
	}
	return out
}

// CardMedia returns the media shown for c in the HUD, if any.
func CardMedia(c Card) *Media {
	if c.Media != nil {
		m := *c.Media
		return &m
	}
	if c.Image != "" {
		return &Media{Kind: MediaImage, Src: c.Image, Alt: c.Title}
	}
	return nil
}

func (p *Page) resolve(dir string) {
	abs := func(src string) string {
		if src == "" || filepath.IsAbs(src) {
			return src
		}
		return filepath.Join(dir, src)
	}
	for i := range p.Sections {
		s := &p.Sections[i]
		for j := range s.Cards {
			c := &s.Cards[j]
			if c.Media != nil {
				c.Media.Src = abs(c.Media.Src)
			}
			c.Image = abs(c.Image)
		}
		for j := range s.Thesis {
			s.Thesis[j].Src = abs(s.Thesis[j].Src)
		}
	}
}
