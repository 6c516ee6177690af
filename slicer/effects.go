package slicer

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/geom"
)

// Effect is a side effect of a slice that the host applies.
type Effect interface {
	effect()
}

// ScoreDelta adds Amount to the round score.
type ScoreDelta struct {
	Amount int
}

// PlaySound triggers a named sound.
type PlaySound struct {
	Name string
}

// SpawnParticles requests a blood burst at Origin. Direction and Normal are
// world-space unit vectors in the xy plane.
type SpawnParticles struct {
	Origin    geom.Vec3
	Direction cp.Vector
	Normal    cp.Vector
	Scale     float64
	Count     int
}

// Retire reports an entity that left the scene; per-instance resources the
// host keeps for it can be released. Shared shapes and textures stay.
type Retire struct {
	Entity ecs.Entity
}

func (ScoreDelta) effect()     {}
func (PlaySound) effect()      {}
func (SpawnParticles) effect() {}
func (Retire) effect()         {}
