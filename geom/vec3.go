package geom

import "github.com/jakecoffman/cp"

// Vec3 is a world-space point or velocity.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Mult(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// XY drops the depth component.
func (v Vec3) XY() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
