package system

import (
	"math"

	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
)

// SettleParams drive free-falling sliced pieces. Gravity and velocities are
// per tick; DespawnAfter is seconds.
type SettleParams struct {
	Gravity      float64 `yaml:"gravity"`
	FloorY       float64 `yaml:"floor_y"`
	Damping      float64 `yaml:"damping"`
	SnapBelow    float64 `yaml:"snap_below"`
	DespawnAfter float64 `yaml:"despawn_after"`
}

func DefaultSettleParams() SettleParams {
	return SettleParams{
		Gravity:      0.004,
		FloorY:       -1.6,
		Damping:      0.95,
		SnapBelow:    0.001,
		DespawnAfter: 10,
	}
}

// SettleSystem drops pieces onto the floor, damps them while they rest, and
// destroys them once they have rested long enough.
type SettleSystem struct {
	Params SettleParams
}

func NewSettleSystem(p SettleParams) *SettleSystem {
	return &SettleSystem{Params: p}
}

func (s *SettleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	ecs.ForEach(w, component.BodyComponent.Kind(), func(e ecs.Entity, body *component.Body) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}

		switch body.Phase {
		case component.BodyAirborne:
			s.fall(t, body)
		case component.BodyResting:
			if s.rest(t, body, dt) {
				body.Phase = component.BodyDespawned
				ecs.DestroyEntity(w, e)
			}
		case component.BodyDespawned:
			ecs.DestroyEntity(w, e)
		}
	})
}

func (s *SettleSystem) fall(t *component.Transform, body *component.Body) {
	t.X += body.Velocity.X
	t.Y += body.Velocity.Y
	t.Rotation += body.RotationSpeed
	body.Velocity.Y -= s.Params.Gravity

	if t.Y <= s.Params.FloorY {
		t.Y = s.Params.FloorY
		body.Velocity.Y = 0
		body.Phase = component.BodyResting
		body.DespawnTimer = 0
	}
}

func (s *SettleSystem) rest(t *component.Transform, body *component.Body, dt float64) bool {
	t.X += body.Velocity.X
	t.Rotation += body.RotationSpeed

	body.Velocity.X *= s.Params.Damping
	body.RotationSpeed *= s.Params.Damping
	if math.Abs(body.Velocity.X) < s.Params.SnapBelow {
		body.Velocity.X = 0
	}
	if math.Abs(body.RotationSpeed) < s.Params.SnapBelow {
		body.RotationSpeed = 0
	}

	body.DespawnTimer += dt
	return body.DespawnTimer >= s.Params.DespawnAfter
}
