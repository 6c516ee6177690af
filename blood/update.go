package blood

import (
	"github.com/milk9111/zombieslice/common"
	"github.com/milk9111/zombieslice/geom"
)

// Update advances every live particle by one tick of dt seconds and
// recycles the ones whose time is up.
func (p *Pool) Update(dt float64) {
	for i := range p.slots {
		pt := &p.slots[i]
		if !pt.Active {
			continue
		}
		if done := p.step(pt, dt); done {
			p.release(i)
		}
	}
}

func (p *Pool) step(pt *Particle, dt float64) bool {
	switch pt.Phase {
	case PhasePuddle:
		pt.DespawnTimer += dt
		return pt.DespawnTimer >= p.Params.PuddleDespawn
	case PhaseStuck:
		pt.DespawnTimer += dt
		if pt.DespawnTimer < p.Params.WallDespawn {
			return false
		}
		if p.Params.WallFade <= 0 {
			return true
		}
		fade := (pt.DespawnTimer - p.Params.WallDespawn) / p.Params.WallFade
		pt.Opacity = p.Params.RestOpacity * (1 - common.Clamp(fade, 0, 1))
		return fade >= 1
	}

	pt.Life -= dt
	if pt.Life <= 0 {
		return true
	}

	pt.Position = pt.Position.Add(pt.Velocity)
	pt.Rotation += pt.RotationSpeed

	switch pt.Kind {
	case KindWall:
		pt.Velocity.Y -= p.Params.WallGravity
		if pt.Position.Z <= p.Params.WallZ {
			pt.Position.Z = p.Params.WallZ
			pt.Velocity = geom.Vec3{}
			pt.RotationSpeed = 0
			pt.Phase = PhaseStuck
			pt.Opacity = p.Params.RestOpacity
			pt.DespawnTimer = 0
			return false
		}
	default:
		pt.Velocity.Y -= p.Params.Gravity
		if pt.Position.Y <= p.Params.FloorY {
			pt.Position.Y = p.Params.FloorY
			pt.Velocity = geom.Vec3{}
			pt.RotationSpeed = 0
			pt.Phase = PhasePuddle
			pt.Opacity = p.Params.RestOpacity
			pt.DespawnTimer = 0
			return false
		}
	}

	pt.Opacity = p.Params.AirborneOpacity
	if pt.Life < p.Params.FadeBelow && p.Params.FadeBelow > 0 {
		pt.Opacity *= pt.Life / p.Params.FadeBelow
	}
	return false
}
