// Package view holds the perspective camera shared by drawing and hit
// testing.
package view

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/geom"
)

// NearClip is the smallest depth in front of the eye that projects.
const NearClip = 0.1

// Camera looks down -Z from (0, EyeY, EyeZ) onto a Width×Height screen.
type Camera struct {
	Width  float64
	Height float64
	// FOV is the vertical field of view in radians.
	FOV  float64
	EyeY float64
	EyeZ float64
}

func NewCamera(w, h, fov float64) Camera {
	return Camera{Width: w, Height: h, FOV: fov}
}

// Aspect is width over height.
func (c Camera) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return c.Width / c.Height
}

// Focal is the distance in pixels from the eye to the image plane.
func (c Camera) Focal() float64 {
	return (c.Height / 2) / math.Tan(c.FOV/2)
}

// Project maps a world point to screen pixels (y down). k is the number of
// pixels per world unit at the point's depth.
func (c Camera) Project(p geom.Vec3) (screen cp.Vector, k float64, ok bool) {
	depth := c.EyeZ - p.Z
	if depth < NearClip {
		return cp.Vector{}, 0, false
	}
	k = c.Focal() / depth
	return cp.Vector{
		X: c.Width/2 + p.X*k,
		Y: c.Height/2 - (p.Y-c.EyeY)*k,
	}, k, true
}

// Unproject returns the world point on the plane at depth z that projects to
// the screen point.
func (c Camera) Unproject(screen cp.Vector, z float64) geom.Vec3 {
	depth := c.EyeZ - z
	inv := depth / c.Focal()
	return geom.Vec3{
		X: (screen.X - c.Width/2) * inv,
		Y: c.EyeY + (c.Height/2-screen.Y)*inv,
		Z: z,
	}
}
