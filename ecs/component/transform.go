package component

// Transform is a world transform. Z grows toward the viewer; Scale is uniform.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	Rotation float64
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()
