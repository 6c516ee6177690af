package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
	"github.com/milk9111/zombieslice/geom"
	"github.com/milk9111/zombieslice/gesture"
	"github.com/milk9111/zombieslice/view"
)

func addSurface(t *testing.T, w *ecs.World, tr component.Transform) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &tr); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.SliceableComponent.Kind(), &component.Sliceable{Width: 1, Height: 2}); err != nil {
		t.Fatalf("add sliceable: %v", err)
	}
	return e
}

func ndcOf(cam view.Camera, p geom.Vec3) cp.Vector {
	s, _, _ := cam.Project(p)
	return gesture.ScreenToNDC(s.X, s.Y, cam.Width, cam.Height)
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestHitTestUV(t *testing.T) {
	cam := view.NewCamera(1280, 720, 0.9)
	w := ecs.NewWorld()
	e := addSurface(t, w, component.Transform{X: 1, Y: 0, Z: -10, Scale: 1})

	s := NewHitTestSystem(cam)
	s.Update(w)
	if s.Len() != 1 {
		t.Fatalf("expected 1 body, got %d", s.Len())
	}

	cases := []struct {
		name   string
		point  geom.Vec3
		wantUV cp.Vector
	}{
		{"centre", geom.Vec3{X: 1, Z: -10}, cp.Vector{X: 0.5, Y: 0.5}},
		{"upper_right", geom.Vec3{X: 1.4, Y: 0.8, Z: -10}, cp.Vector{X: 0.9, Y: 0.9}},
		{"lower_left", geom.Vec3{X: 0.6, Y: -0.9, Z: -10}, cp.Vector{X: 0.1, Y: 0.05}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := s.HitTest(ndcOf(cam, c.point))
			if !ok {
				t.Fatalf("expected a hit")
			}
			if hit.Entity != e {
				t.Fatalf("entity = %v, want %v", hit.Entity, e)
			}
			if !near(hit.UV.X, c.wantUV.X) || !near(hit.UV.Y, c.wantUV.Y) {
				t.Fatalf("uv = %v, want %v", hit.UV, c.wantUV)
			}
		})
	}

	if _, ok := s.HitTest(ndcOf(cam, geom.Vec3{X: 3, Z: -10})); ok {
		t.Fatalf("point beside the surface should miss")
	}
}

func TestHitTestPrefersNearest(t *testing.T) {
	cam := view.NewCamera(1280, 720, 0.9)
	w := ecs.NewWorld()
	addSurface(t, w, component.Transform{Z: -12, Scale: 1})
	front := addSurface(t, w, component.Transform{Z: -6, Scale: 1})

	s := NewHitTestSystem(cam)
	s.Update(w)

	hit, ok := s.HitTest(cp.Vector{})
	if !ok || hit.Entity != front {
		t.Fatalf("hit = %v/%v, want front surface %v", hit.Entity, ok, front)
	}
}

func TestHitTestRotated(t *testing.T) {
	cam := view.NewCamera(1280, 720, 0.9)
	w := ecs.NewWorld()
	addSurface(t, w, component.Transform{Z: -8, Rotation: math.Pi / 2, Scale: 1})

	s := NewHitTestSystem(cam)
	s.Update(w)

	// Rotated a quarter turn, world +x runs along local -y.
	hit, ok := s.HitTest(ndcOf(cam, geom.Vec3{X: 0.4, Z: -8}))
	if !ok {
		t.Fatalf("expected a hit")
	}
	if !near(hit.UV.X, 0.5) || !near(hit.UV.Y, 0.3) {
		t.Fatalf("uv = %v, want (0.5, 0.3)", hit.UV)
	}
}

func TestHitTestTracksWorld(t *testing.T) {
	cam := view.NewCamera(1280, 720, 0.9)
	w := ecs.NewWorld()
	e := addSurface(t, w, component.Transform{Z: -10, Scale: 1})
	other := addSurface(t, w, component.Transform{X: 3, Z: -10, Scale: 1})

	s := NewHitTestSystem(cam)
	s.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.X = -2
	sl, _ := ecs.Get(w, other, component.SliceableComponent.Kind())
	sl.State = component.SliceSliced
	s.Update(w)

	if s.Len() != 1 {
		t.Fatalf("non-active surface should be dropped, have %d bodies", s.Len())
	}
	if _, ok := s.HitTest(ndcOf(cam, geom.Vec3{Z: -10})); ok {
		t.Fatalf("old position should miss after the move")
	}
	if hit, ok := s.HitTest(ndcOf(cam, geom.Vec3{X: -2, Z: -10})); !ok || hit.Entity != e {
		t.Fatalf("new position should hit")
	}

	ecs.DestroyEntity(w, e)
	s.Update(w)
	if s.Len() != 0 {
		t.Fatalf("destroyed surface should be dropped, have %d bodies", s.Len())
	}
}
