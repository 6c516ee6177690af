package slicer

import (
	"image"

	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
	"github.com/milk9111/zombieslice/mesh"
)

// Surface describes a fresh sliceable quad.
type Surface struct {
	Texture   string
	Frame     image.Rectangle
	Shape     mesh.ShapeID
	Width     float64
	Height    float64
	Transform component.Transform
}

// SpawnSurface adds an Active sliceable entity with an all-visible mask.
func SpawnSurface(w *ecs.World, s Surface) ecs.Entity {
	if w == nil {
		return 0
	}
	e := w.CreateEntity()
	tr := s.Transform
	if tr.Scale == 0 {
		tr.Scale = 1
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &tr)
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Texture: s.Texture,
		Frame:   s.Frame,
		Shape:   s.Shape,
		Opacity: 1,
	})
	_ = ecs.Add(w, e, component.SliceableComponent.Kind(), &component.Sliceable{
		State:  component.SliceActive,
		Width:  s.Width,
		Height: s.Height,
	})
	_ = ecs.Add(w, e, component.SliceMaskComponent.Kind(), &component.SliceMask{})
	return e
}
