package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Registry maps sprite texture keys to GPU images. A CPU copy can be kept
// alongside for the software mask path.
type Registry struct {
	images  map[string]*ebiten.Image
	sources map[string]image.Image
}

func NewRegistry() *Registry {
	return &Registry{
		images:  map[string]*ebiten.Image{},
		sources: map[string]image.Image{},
	}
}

// Register stores an image by key. src may be nil.
func (r *Registry) Register(key string, img *ebiten.Image, src image.Image) {
	if r == nil || key == "" || img == nil {
		return
	}
	r.images[key] = img
	if src != nil {
		r.sources[key] = src
	}
}

// Image returns a registered image by key.
func (r *Registry) Image(key string) *ebiten.Image {
	if r == nil || key == "" {
		return nil
	}
	return r.images[key]
}

// Source returns the CPU copy of a texture, if one was registered.
func (r *Registry) Source(key string) (image.Image, bool) {
	if r == nil {
		return nil, false
	}
	src, ok := r.sources[key]
	return src, ok
}
