package game

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// imageCache decodes page images once. Failed loads are remembered as nil so a
// missing file is only reported once.
type imageCache struct {
	images map[string]*ebiten.Image
}

func newImageCache() *imageCache {
	return &imageCache{images: map[string]*ebiten.Image{}}
}

func (c *imageCache) get(path string) *ebiten.Image {
	if img, ok := c.images[path]; ok {
		return img
	}
	img, err := loadImage(path)
	if err != nil {
		log.Printf("game: %v", err)
	}
	c.images[path] = img
	return img
}

func loadImage(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}
