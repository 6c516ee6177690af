package component

import "github.com/jakecoffman/cp"

// BodyPhase is the settle state of a free body.
type BodyPhase int

const (
	BodyAirborne BodyPhase = iota
	BodyResting
	BodyDespawned
)

func (p BodyPhase) String() string {
	switch p {
	case BodyAirborne:
		return "airborne"
	case BodyResting:
		return "resting"
	case BodyDespawned:
		return "despawned"
	default:
		return "unknown"
	}
}

// Body is the free-fall state of a sliced piece. Velocity is in world units
// per tick; DespawnTimer counts seconds spent resting.
type Body struct {
	Velocity      cp.Vector
	RotationSpeed float64
	Phase         BodyPhase
	DespawnTimer  float64
}

var BodyComponent = NewComponent[Body]()
