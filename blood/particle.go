// Package blood runs the fixed pool of blood particles spawned by cuts.
package blood

import "github.com/milk9111/zombieslice/geom"

// Kind splits particles into the two trajectory families.
type Kind int

const (
	KindFloor Kind = iota
	KindWall
)

// Phase is where a particle is in its life.
type Phase int

const (
	PhaseAirborne Phase = iota
	// PhasePuddle is a floor-bound particle resting on the floor.
	PhasePuddle
	// PhaseStuck is a wall-bound particle splattered on the back wall.
	PhaseStuck
)

// Particle is one pool slot. Velocity is in world units per tick.
type Particle struct {
	Active        bool
	Kind          Kind
	Phase         Phase
	Variant       int
	Position      geom.Vec3
	Velocity      geom.Vec3
	Rotation      float64
	RotationSpeed float64
	Scale         float64
	// Life is the remaining airborne lifetime in seconds.
	Life         float64
	DespawnTimer float64
	Opacity      float64
}
