package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
)

func addPiece(t *testing.T, w *ecs.World, tr component.Transform, body component.Body) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &tr); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &body); err != nil {
		t.Fatalf("add body: %v", err)
	}
	return e
}

func testSettleParams() SettleParams {
	p := DefaultSettleParams()
	p.Gravity = 0.1
	p.FloorY = -1
	return p
}

func TestSettleAirborneIntegration(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(1.0 / 60)
	e := addPiece(t, w,
		component.Transform{Scale: 1},
		component.Body{Velocity: cp.Vector{X: 0.02, Y: 0.05}, RotationSpeed: 0.01},
	)

	s := NewSettleSystem(testSettleParams())
	s.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	if tr.X != 0.02 || tr.Y != 0.05 {
		t.Fatalf("position after one tick = (%v, %v), want (0.02, 0.05)", tr.X, tr.Y)
	}
	if tr.Rotation != 0.01 {
		t.Fatalf("rotation = %v, want 0.01", tr.Rotation)
	}
	if body.Phase != component.BodyAirborne {
		t.Fatalf("phase = %v, want airborne", body.Phase)
	}
	if got, want := body.Velocity.Y, 0.05-0.1; got != want {
		t.Fatalf("vy = %v, want %v", got, want)
	}
}

func TestSettleLandsOnFloor(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(1.0 / 60)
	e := addPiece(t, w,
		component.Transform{Scale: 1},
		component.Body{Velocity: cp.Vector{X: 0.5}, RotationSpeed: 0.3},
	)
	s := NewSettleSystem(testSettleParams())

	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	for i := 0; i < 100 && body.Phase == component.BodyAirborne; i++ {
		s.Update(w)
	}
	if body.Phase != component.BodyResting {
		t.Fatalf("phase = %v, want resting", body.Phase)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Y != -1 {
		t.Fatalf("y = %v, want clamped to floor", tr.Y)
	}
	if body.Velocity.Y != 0 {
		t.Fatalf("vy = %v, want 0", body.Velocity.Y)
	}

	prev := body.Velocity.X
	s.Update(w)
	if body.Velocity.X >= prev {
		t.Fatalf("vx should decay while resting: %v -> %v", prev, body.Velocity.X)
	}

	for i := 0; i < 500; i++ {
		s.Update(w)
	}
	if body.Velocity.X != 0 || body.RotationSpeed != 0 {
		t.Fatalf("resting motion should snap to zero, got vx=%v rot=%v", body.Velocity.X, body.RotationSpeed)
	}
	if tr.Y != -1 {
		t.Fatalf("resting piece left the floor: y=%v", tr.Y)
	}
}

func TestSettleDespawnAfterRest(t *testing.T) {
	cases := []struct {
		name   string
		ticks  int
		expect bool
	}{
		{"nine_seconds", 9, true},
		{"ten_seconds", 10, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.SetDeltaTime(1)
			e := addPiece(t, w,
				component.Transform{Y: -1, Scale: 1},
				component.Body{Phase: component.BodyResting},
			)
			other := addPiece(t, w,
				component.Transform{Y: -1, Scale: 1},
				component.Body{Phase: component.BodyResting},
			)

			s := NewSettleSystem(testSettleParams())
			for i := 0; i < c.ticks; i++ {
				s.Update(w)
			}
			if ecs.IsAlive(w, e) != c.expect || ecs.IsAlive(w, other) != c.expect {
				t.Fatalf("alive = %v/%v, want %v", ecs.IsAlive(w, e), ecs.IsAlive(w, other), c.expect)
			}
		})
	}
}

func TestSettleIgnoresBodiesWithoutTransform(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(1)
	e := ecs.CreateEntity(w)
	body := &component.Body{Phase: component.BodyResting}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), body); err != nil {
		t.Fatalf("add body: %v", err)
	}

	s := NewSettleSystem(testSettleParams())
	for i := 0; i < 20; i++ {
		s.Update(w)
	}
	if !ecs.IsAlive(w, e) {
		t.Fatalf("body without transform should be left alone")
	}
}
