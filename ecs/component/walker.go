package component

// Walker moves an entity toward the viewer at Speed world units per second.
type Walker struct {
	Speed float64
	// Bob is the phase of the walk cycle, in radians.
	Bob float64
}

var WalkerComponent = NewComponent[Walker]()
