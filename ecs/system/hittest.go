package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
	"github.com/milk9111/zombieslice/gesture"
	"github.com/milk9111/zombieslice/view"
)

// HitTestSystem mirrors every active sliceable as a kinematic box in a
// chipmunk space, so pointer queries can find the surface under a screen
// point and its UV.
type HitTestSystem struct {
	Camera view.Camera

	space  *cp.Space
	bodies map[ecs.Entity]*hitBody
}

type hitBody struct {
	body   *cp.Body
	shape  *cp.Shape
	width  float64
	height float64
	z      float64
}

func NewHitTestSystem(cam view.Camera) *HitTestSystem {
	return &HitTestSystem{
		Camera: cam,
		space:  cp.NewSpace(),
		bodies: make(map[ecs.Entity]*hitBody),
	}
}

// Update adds, moves and removes boxes to match the world.
func (s *HitTestSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	seen := make(map[ecs.Entity]struct{}, len(s.bodies))
	for _, e := range w.Query(component.SliceableComponent.Kind(), component.TransformComponent.Kind()) {
		sl, _ := ecs.Get(w, e, component.SliceableComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if sl == nil || t == nil || sl.State != component.SliceActive {
			continue
		}
		seen[e] = struct{}{}

		scale := t.Scale
		if scale <= 0 {
			scale = 1
		}
		hw, hh := sl.Width*scale, sl.Height*scale

		hb, ok := s.bodies[e]
		if ok && (hb.width != hw || hb.height != hh) {
			s.remove(e)
			ok = false
		}
		if !ok {
			hb = &hitBody{body: s.space.AddBody(cp.NewKinematicBody()), width: hw, height: hh}
			hb.shape = s.space.AddShape(cp.NewBox(hb.body, hw, hh, 0))
			s.bodies[e] = hb
		}

		hb.z = t.Z
		hb.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		hb.body.SetAngle(t.Rotation)
		hb.shape.CacheBB()
	}

	for e := range s.bodies {
		if _, ok := seen[e]; !ok {
			s.remove(e)
		}
	}
}

func (s *HitTestSystem) remove(e ecs.Entity) {
	hb, ok := s.bodies[e]
	if !ok {
		return
	}
	s.space.RemoveShape(hb.shape)
	s.space.RemoveBody(hb.body)
	delete(s.bodies, e)
}

// Len returns the number of mirrored surfaces.
func (s *HitTestSystem) Len() int {
	return len(s.bodies)
}

// HitTest finds the nearest surface under an NDC point. The point is
// unprojected onto each surface's depth plane before the box test, and UV is
// the box-local position normalized to [0,1]².
func (s *HitTestSystem) HitTest(ndc cp.Vector) (gesture.Hit, bool) {
	if s == nil {
		return gesture.Hit{}, false
	}
	sx, sy := gesture.NDCToScreen(ndc, s.Camera.Width, s.Camera.Height)
	screen := cp.Vector{X: sx, Y: sy}

	var (
		best  gesture.Hit
		bestZ float64
		found bool
	)
	for e, hb := range s.bodies {
		if found && hb.z <= bestZ {
			continue
		}
		p := s.Camera.Unproject(screen, hb.z).XY()
		if hb.shape.PointQuery(p).Distance > 0 {
			continue
		}
		local := hb.body.WorldToLocal(p)
		best = gesture.Hit{
			Entity: e,
			UV: cp.Vector{
				X: local.X/hb.width + 0.5,
				Y: local.Y/hb.height + 0.5,
			},
		}
		bestZ = hb.z
		found = true
	}
	return best, found
}

// Func adapts HitTest to the resolver's callback type.
func (s *HitTestSystem) Func() gesture.HitTestFunc {
	return s.HitTest
}
