// Package mesh owns the immutable quad shapes shared by every sliceable
// instance and its pieces.
package mesh

import "errors"

var ErrArenaClosed = errors.New("mesh: arena closed")

// ShapeID is a lightweight handle into an Arena. The zero value is invalid.
type ShapeID uint32

func (id ShapeID) Valid() bool {
	return id != 0
}

// Vertex is one corner of a quad in local units, centred on the origin.
// U and V follow texture space with V pointing up.
type Vertex struct {
	X, Y float64
	U, V float64
}

// Shape is an immutable textured quad.
type Shape struct {
	Width    float64
	Height   float64
	Vertices [4]Vertex
	Indices  [6]uint16
}

type extent struct {
	w, h float64
}

// Arena hands out shared quad shapes. Shapes live until Close.
type Arena struct {
	shapes []Shape
	byExt  map[extent]ShapeID
	closed bool
}

func NewArena() *Arena {
	return &Arena{byExt: make(map[extent]ShapeID)}
}

// Quad returns the handle of a w×h quad, registering it on first use.
func (a *Arena) Quad(w, h float64) (ShapeID, error) {
	if a == nil || a.closed {
		return 0, ErrArenaClosed
	}
	if w <= 0 || h <= 0 {
		return 0, errors.New("mesh: quad extent must be positive")
	}
	key := extent{w, h}
	if id, ok := a.byExt[key]; ok {
		return id, nil
	}
	hw, hh := w/2, h/2
	a.shapes = append(a.shapes, Shape{
		Width:  w,
		Height: h,
		Vertices: [4]Vertex{
			{X: -hw, Y: -hh, U: 0, V: 0},
			{X: hw, Y: -hh, U: 1, V: 0},
			{X: hw, Y: hh, U: 1, V: 1},
			{X: -hw, Y: hh, U: 0, V: 1},
		},
		Indices: [6]uint16{0, 1, 2, 0, 2, 3},
	})
	id := ShapeID(len(a.shapes))
	a.byExt[key] = id
	return id, nil
}

// Shape returns the shape behind id.
func (a *Arena) Shape(id ShapeID) (*Shape, bool) {
	if a == nil || a.closed || !id.Valid() || int(id) > len(a.shapes) {
		return nil, false
	}
	return &a.shapes[id-1], true
}

// Len returns the number of registered shapes.
func (a *Arena) Len() int {
	if a == nil || a.closed {
		return 0
	}
	return len(a.shapes)
}

// Close tears the arena down; every handle becomes invalid.
func (a *Arena) Close() {
	if a == nil {
		return
	}
	a.shapes = nil
	a.byExt = nil
	a.closed = true
}
