package component

import (
	"image"

	"github.com/milk9111/zombieslice/mesh"
)

// Sprite points at a registered texture and the frame currently shown.
// Shape is a handle into the shared quad arena; it is never owned.
type Sprite struct {
	Texture string
	Frame   image.Rectangle
	Shape   mesh.ShapeID
	Opacity float64
}

var SpriteComponent = NewComponent[Sprite]()
